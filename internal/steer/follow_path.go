package steer

// FollowPath moves the owner along a path, aiming PathOffset ahead of its
// projection (behind it when negative). With PredictionTime > 0 the owner's
// position is first extrapolated along its velocity.
//
// On an open path with ArriveEnabled the owner decelerates like Arrive once
// the target comes within DecelerationRadius of the end it is heading for.
type FollowPath[V Vector[V], P PathParam] struct {
	Base[V]
	ArriveParams

	Path           Path[V, P]
	PathOffset     float64
	PredictionTime float64
	ArriveEnabled  bool

	param     P
	target    V
	predicted V
}

func NewFollowPath[V Vector[V], P PathParam](owner Steerable[V], path Path[V, P], pathOffset, predictionTime float64) *FollowPath[V, P] {
	return &FollowPath[V, P]{
		Base:           NewBase[V](owner),
		ArriveParams:   ArriveParams{TimeToTarget: 0.1},
		Path:           path,
		PathOffset:     pathOffset,
		PredictionTime: predictionTime,
		ArriveEnabled:  true,
		param:          path.CreateParam(),
		target:         owner.Position().Clone().SetZero(),
		predicted:      owner.Position().Clone().SetZero(),
	}
}

// PathParam is this follower's cursor on Path.
func (f *FollowPath[V, P]) PathParam() P { return f.param }

// TargetPosition is the point computed by the last evaluation.
func (f *FollowPath[V, P]) TargetPosition() V { return f.target }

func (f *FollowPath[V, P]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return f.calculate(out, f)
}

func (f *FollowPath[V, P]) steer(out *Acceleration[V]) *Acceleration[V] {
	owner := f.Owner
	location := owner.Position()
	if f.PredictionTime > 0 {
		location = f.predicted.Set(owner.Position()).MulAdd(owner.LinearVelocity(), f.PredictionTime)
	}

	distance := f.Path.CalculateDistance(location, f.param)
	targetDistance := distance + f.PathOffset
	f.Path.CalculateTargetPosition(f.target, f.param, targetDistance)

	limiter := f.ActualLimiter()
	if f.ArriveEnabled && f.Path.IsOpen() {
		if f.PathOffset >= 0 {
			if targetDistance > f.Path.Length()-f.DecelerationRadius {
				return arrive(owner, limiter, f.ArriveParams, f.target, out)
			}
		} else if targetDistance < f.DecelerationRadius {
			return arrive(owner, limiter, f.ArriveParams, f.target, out)
		}
	}

	return seek(owner, limiter, f.target, out)
}

// NewLinePathFollower is NewFollowPath with the type parameters of a LinePath
// spelled out.
func NewLinePathFollower[V Vector[V]](owner Steerable[V], path *LinePath[V], pathOffset, predictionTime float64) *FollowPath[V, *LinePathParam[V]] {
	return NewFollowPath[V, *LinePathParam[V]](owner, path, pathOffset, predictionTime)
}
