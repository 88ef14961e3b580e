package steer

import "math"

// JumpDescriptor is the takeoff and landing pair of a jump.
type JumpDescriptor[V Vector[V]] struct {
	TakeoffPosition V
	LandingPosition V
	// Delta is LandingPosition - TakeoffPosition, refreshed when a jump is planned.
	Delta V
}

func NewJumpDescriptor[V Vector[V]](takeoff, landing V) *JumpDescriptor[V] {
	return &JumpDescriptor[V]{
		TakeoffPosition: takeoff.Clone(),
		LandingPosition: landing.Clone(),
		Delta:           landing.Clone().Sub(takeoff),
	}
}

// JumpCallback receives the events of a Jump. Both methods are called
// synchronously from CalculateSteering.
type JumpCallback interface {
	// ReportAchievability is called once per descriptor, before the run-up.
	ReportAchievability(achievable bool)
	// Takeoff is called once, when the owner reaches the takeoff state. The
	// host applies the vertical impulse and regains control after time.
	Takeoff(maxVerticalVelocity, time float64)
}

// Jump drives the owner through the run-up of a ballistic jump: it matches
// the planar velocity that will carry the owner to the landing point and fires
// Takeoff once the owner is at the takeoff position with that velocity. After
// takeoff, or when the jump cannot be made, it produces nothing until a new
// descriptor is set.
type Jump[V Vector[V]] struct {
	Base[V]

	Gravity V
	// GravityAxis is the component of Gravity (and of positions) that is vertical.
	GravityAxis int
	// MaxVerticalVelocity is the vertical takeoff speed.
	MaxVerticalVelocity float64

	TakeoffPositionTolerance float64
	TakeoffVelocityTolerance float64
	TimeToTarget             float64

	Callback JumpCallback

	descriptor   *JumpDescriptor[V]
	planned      bool
	achievable   bool
	airborneTime float64

	// targetVelocity is the only state of the synthetic run-up target.
	targetVelocity V
	planar         V
}

func NewJump[V Vector[V]](owner Steerable[V], descriptor *JumpDescriptor[V], gravity V, gravityAxis int, callback JumpCallback) *Jump[V] {
	return &Jump[V]{
		Base:                     NewBase[V](owner),
		Gravity:                  gravity,
		GravityAxis:              gravityAxis,
		TakeoffPositionTolerance: 0.1,
		TakeoffVelocityTolerance: 0.1,
		TimeToTarget:             0.1,
		Callback:                 callback,
		descriptor:               descriptor,
		targetVelocity:           owner.Position().Clone().SetZero(),
		planar:                   owner.Position().Clone().SetZero(),
	}
}

func (j *Jump[V]) Descriptor() *JumpDescriptor[V] { return j.descriptor }

// SetDescriptor starts a new jump; it is planned on the next evaluation.
func (j *Jump[V]) SetDescriptor(d *JumpDescriptor[V]) {
	j.descriptor = d
	j.planned = false
	j.achievable = false
}

// IsAchievable reports whether the jump is still pending and can be made.
func (j *Jump[V]) IsAchievable() bool { return j.achievable }

// AirborneTime is the flight time of the planned jump, or -1.
func (j *Jump[V]) AirborneTime() float64 { return j.airborneTime }

// TargetVelocity is the planar takeoff velocity of the planned jump.
func (j *Jump[V]) TargetVelocity() V { return j.targetVelocity }

func (j *Jump[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return j.calculate(out, j)
}

func (j *Jump[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	if j.descriptor == nil {
		return out.SetZero()
	}

	if !j.planned {
		j.plan()
		if j.Callback != nil {
			j.Callback.ReportAchievability(j.achievable)
		}
	}

	if !j.achievable {
		return out.SetZero()
	}

	owner := j.Owner
	if owner.Position().EpsilonEquals(j.descriptor.TakeoffPosition, j.TakeoffPositionTolerance) &&
		owner.LinearVelocity().EpsilonEquals(j.targetVelocity, j.TakeoffVelocityTolerance) {
		j.achievable = false
		if j.Callback != nil {
			j.Callback.Takeoff(j.MaxVerticalVelocity, j.airborneTime)
		}
		return out.SetZero()
	}

	return matchVelocity(owner, j.ActualLimiter(), j.TimeToTarget, j.targetVelocity, out)
}

func (j *Jump[V]) plan() {
	d := j.descriptor
	d.Delta.Set(d.LandingPosition).Sub(d.TakeoffPosition)
	j.airborneTime = j.CalculateAirborneTimeAndVelocity(j.targetVelocity, d, j.ActualLimiter().MaxLinearSpeed())
	j.achievable = j.airborneTime >= 0
	j.planned = true
}

// CalculateAirborneTimeAndVelocity solves v0·t + ½g·t² = Δvertical for the
// flight time t, trying the smaller positive root first. A root is accepted
// when the planar speed needed to cover the planar part of d.Delta in t does
// not exceed maxLinearSpeed; that velocity is then written to outVelocity.
// It returns -1, leaving outVelocity untouched, when neither root works.
func (j *Jump[V]) CalculateAirborneTimeAndVelocity(outVelocity V, d *JumpDescriptor[V], maxLinearSpeed float64) float64 {
	g := j.Gravity.Axis(j.GravityAxis)
	dv := d.Delta.Axis(j.GravityAxis)
	v0 := j.MaxVerticalVelocity

	if g == 0 {
		if v0 == 0 {
			return -1
		}
		t := dv / v0
		if t > 0 && j.checkAirborne(outVelocity, t, d, maxLinearSpeed) {
			return t
		}
		return -1
	}

	disc := v0*v0 + 2*g*dv
	if disc < 0 {
		return -1
	}
	sq := math.Sqrt(disc)
	t1, t2 := (-v0+sq)/g, (-v0-sq)/g
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	for _, t := range [2]float64{t1, t2} {
		if t > 0 && j.checkAirborne(outVelocity, t, d, maxLinearSpeed) {
			return t
		}
	}
	return -1
}

func (j *Jump[V]) checkAirborne(outVelocity V, t float64, d *JumpDescriptor[V], maxLinearSpeed float64) bool {
	j.planar.Set(d.Delta).SetAxis(j.GravityAxis, 0).Scale(1 / t)
	if j.planar.Len2() <= maxLinearSpeed*maxLinearSpeed {
		outVelocity.Set(j.planar)
		return true
	}
	return false
}
