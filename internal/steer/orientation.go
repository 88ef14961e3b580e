package steer

import (
	"math"

	"github.com/san-kum/steersim/internal/vec"
)

// AlignParams tunes the angular deceleration shared by the orientation behaviors.
type AlignParams struct {
	// AlignTolerance is the rotation (radians) at which the target counts as reached.
	AlignTolerance float64
	// DecelerationRadius is the rotation at which slowing down starts.
	DecelerationRadius float64
	// TimeToTarget is the time over which to reach the desired angular speed.
	TimeToTarget float64
}

func defaultAlign() AlignParams {
	return AlignParams{TimeToTarget: 0.1}
}

// ReachOrientation rotates the owner to the target's orientation along the
// shortest arc.
type ReachOrientation[V Vector[V]] struct {
	Base[V]
	AlignParams
	Target Location[V]
}

func NewReachOrientation[V Vector[V]](owner Steerable[V], target Location[V]) *ReachOrientation[V] {
	return &ReachOrientation[V]{Base: NewBase[V](owner), AlignParams: defaultAlign(), Target: target}
}

func (r *ReachOrientation[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return r.calculate(out, r)
}

func (r *ReachOrientation[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	return reachOrientation(r.Owner, r.ActualLimiter(), r.AlignParams, r.Target.Orientation(), out)
}

// Face turns the owner toward the target's position.
type Face[V Vector[V]] struct {
	Base[V]
	AlignParams
	Target Location[V]
}

func NewFace[V Vector[V]](owner Steerable[V], target Location[V]) *Face[V] {
	return &Face[V]{Base: NewBase[V](owner), AlignParams: defaultAlign(), Target: target}
}

func (f *Face[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return f.calculate(out, f)
}

func (f *Face[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	return face(f.Owner, f.ActualLimiter(), f.AlignParams, f.Target.Position(), out)
}

// LookWhereYouAreGoing turns the owner toward its direction of travel.
type LookWhereYouAreGoing[V Vector[V]] struct {
	Base[V]
	AlignParams
}

func NewLookWhereYouAreGoing[V Vector[V]](owner Steerable[V]) *LookWhereYouAreGoing[V] {
	return &LookWhereYouAreGoing[V]{Base: NewBase[V](owner), AlignParams: defaultAlign()}
}

func (l *LookWhereYouAreGoing[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return l.calculate(out, l)
}

func (l *LookWhereYouAreGoing[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	limiter := l.ActualLimiter()
	velocity := l.Owner.LinearVelocity()
	if velocity.Len2() < limiter.ZeroLinearSpeedThreshold() {
		return out.SetZero()
	}
	return reachOrientation(l.Owner, limiter, l.AlignParams, l.Owner.VectorToAngle(velocity), out)
}

func reachOrientation[V Vector[V]](owner Steerable[V], limiter Limiter, p AlignParams, target float64, out *Acceleration[V]) *Acceleration[V] {
	rotation := vec.WrapAngle(target - owner.Orientation())
	rotationSize := math.Abs(rotation)
	if rotationSize <= p.AlignTolerance {
		return out.SetZero()
	}

	targetRotation := limiter.MaxAngularSpeed()
	if rotationSize <= p.DecelerationRadius {
		targetRotation *= rotationSize / p.DecelerationRadius
	}
	targetRotation *= rotation / rotationSize

	out.Angular = (targetRotation - owner.AngularVelocity()) / p.TimeToTarget
	maxAcc := limiter.MaxAngularAcceleration()
	if a := math.Abs(out.Angular); a > maxAcc {
		out.Angular *= maxAcc / a
	}
	out.Linear.SetZero()
	return out
}

// face uses out.Linear as scratch before delegating to reachOrientation.
func face[V Vector[V]](owner Steerable[V], limiter Limiter, p AlignParams, target V, out *Acceleration[V]) *Acceleration[V] {
	toTarget := out.Linear.Set(target).Sub(owner.Position())
	if toTarget.Len2() < limiter.ZeroLinearSpeedThreshold() {
		return out.SetZero()
	}
	return reachOrientation(owner, limiter, p, owner.VectorToAngle(toTarget), out)
}
