package steer

import "math"

// Seek accelerates at full strength toward the target.
type Seek[V Vector[V]] struct {
	Base[V]
	Target Location[V]
}

func NewSeek[V Vector[V]](owner Steerable[V], target Location[V]) *Seek[V] {
	return &Seek[V]{Base: NewBase[V](owner), Target: target}
}

func (s *Seek[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return s.calculate(out, s)
}

func (s *Seek[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	return seek(s.Owner, s.ActualLimiter(), s.Target.Position(), out)
}

// Flee accelerates at full strength away from the target.
type Flee[V Vector[V]] struct {
	Base[V]
	Target Location[V]
}

func NewFlee[V Vector[V]](owner Steerable[V], target Location[V]) *Flee[V] {
	return &Flee[V]{Base: NewBase[V](owner), Target: target}
}

func (f *Flee[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return f.calculate(out, f)
}

func (f *Flee[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	out.Linear.Set(f.Owner.Position()).Sub(f.Target.Position()).Nor().Scale(f.ActualLimiter().MaxLinearAcceleration())
	out.Angular = 0
	return out
}

// Pursue seeks the position the target will reach if it keeps its velocity.
// The look-ahead is the time the owner needs to cover the current distance at
// its current speed, capped at MaxPredictionTime.
type Pursue[V Vector[V]] struct {
	Base[V]
	Target            Steerable[V]
	MaxPredictionTime float64
}

func NewPursue[V Vector[V]](owner, target Steerable[V], maxPredictionTime float64) *Pursue[V] {
	return &Pursue[V]{Base: NewBase[V](owner), Target: target, MaxPredictionTime: maxPredictionTime}
}

func (p *Pursue[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return p.calculate(out, p)
}

func (p *Pursue[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	return pursue(p.Owner, p.Target, p.MaxPredictionTime, p.ActualLimiter().MaxLinearAcceleration(), out)
}

// Evade flees from the predicted position of the target.
type Evade[V Vector[V]] struct {
	Base[V]
	Target            Steerable[V]
	MaxPredictionTime float64
}

func NewEvade[V Vector[V]](owner, target Steerable[V], maxPredictionTime float64) *Evade[V] {
	return &Evade[V]{Base: NewBase[V](owner), Target: target, MaxPredictionTime: maxPredictionTime}
}

func (e *Evade[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return e.calculate(out, e)
}

func (e *Evade[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	return pursue(e.Owner, e.Target, e.MaxPredictionTime, -e.ActualLimiter().MaxLinearAcceleration(), out)
}

func seek[V Vector[V]](owner Steerable[V], limiter Limiter, target V, out *Acceleration[V]) *Acceleration[V] {
	out.Linear.Set(target).Sub(owner.Position()).Nor().Scale(limiter.MaxLinearAcceleration())
	out.Angular = 0
	return out
}

func pursue[V Vector[V]](owner, target Steerable[V], maxPrediction, acceleration float64, out *Acceleration[V]) *Acceleration[V] {
	targetPos := target.Position()
	distance2 := out.Linear.Set(targetPos).Sub(owner.Position()).Len2()
	speed2 := owner.LinearVelocity().Len2()

	prediction := maxPrediction
	if speed2 > 0 {
		p2 := distance2 / speed2
		if p2 < maxPrediction*maxPrediction {
			prediction = math.Sqrt(p2)
		}
	}

	out.Linear.Set(targetPos).MulAdd(target.LinearVelocity(), prediction).Sub(owner.Position()).Nor().Scale(acceleration)
	out.Angular = 0
	return out
}
