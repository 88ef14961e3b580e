package steer

import "math"

// GroupBase is embedded by behaviors that act on the neighbors found by a
// Proximity.
type GroupBase[V Vector[V]] struct {
	Base[V]
	Proximity Proximity[V]
}

// CollisionAvoidance steers away from the neighbor the owner is going to hit
// first, assuming both keep their current velocity.
type CollisionAvoidance[V Vector[V]] struct {
	GroupBase[V]

	shortestTime       float64
	first              Steerable[V]
	firstMinSeparation float64
	firstDistance      float64
	firstRelPos        V
	firstRelVel        V
	relPos             V
	relVel             V
	report             ReportFunc[V]
}

func NewCollisionAvoidance[V Vector[V]](owner Steerable[V], proximity Proximity[V]) *CollisionAvoidance[V] {
	zero := func() V { return owner.Position().Clone().SetZero() }
	c := &CollisionAvoidance[V]{
		GroupBase:   GroupBase[V]{Base: NewBase[V](owner), Proximity: proximity},
		firstRelPos: zero(),
		firstRelVel: zero(),
		relPos:      zero(),
		relVel:      zero(),
	}
	c.report = c.reportNeighbor
	return c
}

func (c *CollisionAvoidance[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return c.calculate(out, c)
}

func (c *CollisionAvoidance[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	c.shortestTime = math.Inf(1)
	c.first = nil
	c.firstMinSeparation = 0
	c.firstDistance = 0

	n := c.Proximity.FindNeighbors(c.report)
	if n == 0 || c.first == nil {
		return out.SetZero()
	}

	owner := c.Owner
	// Already touching, or the closest approach is a direct hit: steer away
	// from where the neighbor is now.
	if c.firstMinSeparation <= 0 || c.firstDistance < owner.BoundingRadius()+c.first.BoundingRadius() {
		c.relPos.Set(c.first.Position()).Sub(owner.Position())
	} else {
		c.relPos.Set(c.firstRelPos).MulAdd(c.firstRelVel, c.shortestTime)
	}

	out.Linear.Set(c.relPos).Nor().Scale(-c.ActualLimiter().MaxLinearAcceleration())
	out.Angular = 0
	return out
}

func (c *CollisionAvoidance[V]) reportNeighbor(neighbor Steerable[V]) bool {
	owner := c.Owner
	c.relPos.Set(neighbor.Position()).Sub(owner.Position())
	c.relVel.Set(neighbor.LinearVelocity()).Sub(owner.LinearVelocity())

	relSpeed2 := c.relVel.Len2()
	if relSpeed2 == 0 {
		return false
	}

	dot := c.relPos.Dot(c.relVel)
	timeToCollision := -dot / relSpeed2
	if timeToCollision <= 0 || timeToCollision >= c.shortestTime {
		return false
	}

	distance2 := c.relPos.Len2()
	minSeparation := math.Sqrt(math.Max(0, distance2-dot*dot/relSpeed2))
	if minSeparation > owner.BoundingRadius()+neighbor.BoundingRadius() {
		return false
	}

	c.shortestTime = timeToCollision
	c.first = neighbor
	c.firstMinSeparation = minSeparation
	c.firstDistance = math.Sqrt(distance2)
	c.firstRelPos.Set(c.relPos)
	c.firstRelVel.Set(c.relVel)
	return true
}

// Separation pushes the owner away from every neighbor with a strength that
// decays with the inverse square of the distance.
type Separation[V Vector[V]] struct {
	GroupBase[V]
	DecayCoefficient float64

	toAgent V
	out     *Acceleration[V]
	report  ReportFunc[V]
}

func NewSeparation[V Vector[V]](owner Steerable[V], proximity Proximity[V]) *Separation[V] {
	s := &Separation[V]{
		GroupBase:        GroupBase[V]{Base: NewBase[V](owner), Proximity: proximity},
		DecayCoefficient: 1,
		toAgent:          owner.Position().Clone(),
	}
	s.report = s.reportNeighbor
	return s
}

func (s *Separation[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return s.calculate(out, s)
}

func (s *Separation[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	out.SetZero()
	s.out = out
	s.Proximity.FindNeighbors(s.report)
	s.out = nil
	return out
}

func (s *Separation[V]) reportNeighbor(neighbor Steerable[V]) bool {
	s.toAgent.Set(s.Owner.Position()).Sub(neighbor.Position())
	d2 := s.toAgent.Len2()
	if d2 == 0 {
		return true
	}

	maxAcc := s.ActualLimiter().MaxLinearAcceleration()
	strength := math.Min(s.DecayCoefficient/d2, maxAcc)
	s.out.Linear.MulAdd(s.toAgent, strength/math.Sqrt(d2))
	return true
}

// Cohesion seeks the center of mass of the neighbors.
type Cohesion[V Vector[V]] struct {
	GroupBase[V]

	sum    V
	report ReportFunc[V]
}

func NewCohesion[V Vector[V]](owner Steerable[V], proximity Proximity[V]) *Cohesion[V] {
	c := &Cohesion[V]{
		GroupBase: GroupBase[V]{Base: NewBase[V](owner), Proximity: proximity},
		sum:       owner.Position().Clone(),
	}
	c.report = func(n Steerable[V]) bool {
		c.sum.Add(n.Position())
		return true
	}
	return c
}

func (c *Cohesion[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return c.calculate(out, c)
}

func (c *Cohesion[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	c.sum.SetZero()
	n := c.Proximity.FindNeighbors(c.report)
	if n == 0 {
		return out.SetZero()
	}

	out.Linear.Set(c.sum).Scale(1 / float64(n)).Sub(c.Owner.Position()).Nor().Scale(c.ActualLimiter().MaxLinearAcceleration())
	out.Angular = 0
	return out
}

// Alignment matches the average velocity of the neighbors.
type Alignment[V Vector[V]] struct {
	GroupBase[V]

	sum    V
	report ReportFunc[V]
}

func NewAlignment[V Vector[V]](owner Steerable[V], proximity Proximity[V]) *Alignment[V] {
	a := &Alignment[V]{
		GroupBase: GroupBase[V]{Base: NewBase[V](owner), Proximity: proximity},
		sum:       owner.Position().Clone(),
	}
	a.report = func(n Steerable[V]) bool {
		a.sum.Add(n.LinearVelocity())
		return true
	}
	return a
}

func (a *Alignment[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return a.calculate(out, a)
}

func (a *Alignment[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	a.sum.SetZero()
	n := a.Proximity.FindNeighbors(a.report)
	if n == 0 {
		return out.SetZero()
	}

	out.Linear.Set(a.sum).Scale(1 / float64(n)).Sub(a.Owner.LinearVelocity()).Limit(a.ActualLimiter().MaxLinearAcceleration())
	out.Angular = 0
	return out
}
