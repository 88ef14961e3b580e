package steer

// ArriveParams tunes the linear deceleration shared by Arrive and FollowPath.
type ArriveParams struct {
	// ArrivalTolerance is the distance at which the target counts as reached.
	ArrivalTolerance float64
	// DecelerationRadius is the distance at which slowing down starts.
	DecelerationRadius float64
	// TimeToTarget is the time over which to reach the desired speed.
	TimeToTarget float64
}

// Arrive behaves like Seek but slows down inside DecelerationRadius and stops
// within ArrivalTolerance.
type Arrive[V Vector[V]] struct {
	Base[V]
	ArriveParams
	Target Location[V]
}

func NewArrive[V Vector[V]](owner Steerable[V], target Location[V]) *Arrive[V] {
	return &Arrive[V]{
		Base:         NewBase[V](owner),
		ArriveParams: ArriveParams{TimeToTarget: 0.1},
		Target:       target,
	}
}

func (a *Arrive[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return a.calculate(out, a)
}

func (a *Arrive[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	return arrive(a.Owner, a.ActualLimiter(), a.ArriveParams, a.Target.Position(), out)
}

func arrive[V Vector[V]](owner Steerable[V], limiter Limiter, p ArriveParams, target V, out *Acceleration[V]) *Acceleration[V] {
	toTarget := out.Linear.Set(target).Sub(owner.Position())
	distance := toTarget.Len()
	if distance <= p.ArrivalTolerance {
		return out.SetZero()
	}

	targetSpeed := limiter.MaxLinearSpeed()
	if distance <= p.DecelerationRadius {
		targetSpeed *= distance / p.DecelerationRadius
	}

	// toTarget becomes the desired velocity, then the acceleration toward it.
	toTarget.Scale(targetSpeed / distance).
		Sub(owner.LinearVelocity()).
		Scale(1 / p.TimeToTarget).
		Limit(limiter.MaxLinearAcceleration())

	out.Angular = 0
	return out
}

// MatchVelocity accelerates to match the target's velocity.
type MatchVelocity[V Vector[V]] struct {
	Base[V]
	Target       Steerable[V]
	TimeToTarget float64
}

func NewMatchVelocity[V Vector[V]](owner, target Steerable[V]) *MatchVelocity[V] {
	return &MatchVelocity[V]{Base: NewBase[V](owner), Target: target, TimeToTarget: 0.1}
}

func (m *MatchVelocity[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return m.calculate(out, m)
}

func (m *MatchVelocity[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	return matchVelocity(m.Owner, m.ActualLimiter(), m.TimeToTarget, m.Target.LinearVelocity(), out)
}

func matchVelocity[V Vector[V]](owner Steerable[V], limiter Limiter, timeToTarget float64, velocity V, out *Acceleration[V]) *Acceleration[V] {
	out.Linear.Set(velocity).
		Sub(owner.LinearVelocity()).
		Scale(1 / timeToTarget).
		Limit(limiter.MaxLinearAcceleration())
	out.Angular = 0
	return out
}
