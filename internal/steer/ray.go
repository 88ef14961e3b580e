package steer

import "math"

// Ray is a segment cast from Start to End.
type Ray[V Vector[V]] struct {
	Start, End V
}

// Collision is the point where a ray hit something and the surface normal there.
type Collision[V Vector[V]] struct {
	Point, Normal V
}

// RaycastCollisionDetector is implemented by the host against its own scene
// geometry.
type RaycastCollisionDetector[V Vector[V]] interface {
	// Collides reports whether ray hits anything.
	Collides(ray *Ray[V]) bool
	// FindCollision fills out with the nearest hit along ray.
	FindCollision(out *Collision[V], ray *Ray[V]) bool
}

// RayConfiguration recomputes a fixed set of rays from its owner's state.
// The returned slice is reused by the next call.
type RayConfiguration[V Vector[V]] interface {
	UpdateRays() []Ray[V]
}

type rayBase[V Vector[V]] struct {
	Owner Steerable[V]
	rays  []Ray[V]
}

func newRayBase[V Vector[V]](owner Steerable[V], n int) rayBase[V] {
	rays := make([]Ray[V], n)
	for i := range rays {
		rays[i] = Ray[V]{Start: owner.Position().Clone(), End: owner.Position().Clone()}
	}
	return rayBase[V]{Owner: owner, rays: rays}
}

// Rays returns the rays computed by the last update.
func (b *rayBase[V]) Rays() []Ray[V] { return b.rays }

// SingleRayConfiguration casts one ray of Length along the owner's velocity.
//
// A single ray misses obstacles beside the owner and tends to clip corners.
type SingleRayConfiguration[V Vector[V]] struct {
	rayBase[V]
	Length float64
}

func NewSingleRayConfiguration[V Vector[V]](owner Steerable[V], length float64) *SingleRayConfiguration[V] {
	return &SingleRayConfiguration[V]{rayBase: newRayBase(owner, 1), Length: length}
}

func (c *SingleRayConfiguration[V]) UpdateRays() []Ray[V] {
	r := &c.rays[0]
	r.Start.Set(c.Owner.Position())
	r.End.Set(c.Owner.LinearVelocity()).Nor().Scale(c.Length).Add(r.Start)
	return c.rays
}

// ParallelSideRayConfiguration casts two parallel rays of Length, each offset
// SideOffset to one side of the owner.
//
// In an acute corner the two rays can alternately hit the two walls, making
// the owner oscillate (the corner trap). The gap between the rays also lets
// thin obstacles through.
type ParallelSideRayConfiguration[V Vector[V]] struct {
	rayBase[V]
	Length     float64
	SideOffset float64
}

func NewParallelSideRayConfiguration[V Vector[V]](owner Steerable[V], length, sideOffset float64) *ParallelSideRayConfiguration[V] {
	return &ParallelSideRayConfiguration[V]{rayBase: newRayBase(owner, 2), Length: length, SideOffset: sideOffset}
}

func (c *ParallelSideRayConfiguration[V]) UpdateRays() []Ray[V] {
	owner := c.Owner
	velocityAngle := owner.VectorToAngle(owner.LinearVelocity())

	left, right := &c.rays[0], &c.rays[1]
	owner.AngleToVector(left.Start, velocityAngle-math.Pi/2).Scale(c.SideOffset).Add(owner.Position())
	left.End.Set(owner.LinearVelocity()).Nor().Scale(c.Length)

	owner.AngleToVector(right.Start, velocityAngle+math.Pi/2).Scale(c.SideOffset).Add(owner.Position())
	right.End.Set(left.End).Add(right.Start)
	left.End.Add(left.Start)
	return c.rays
}

// CentralRayWithWhiskersConfiguration casts a central ray of RayLength along
// the velocity plus two shorter whiskers at ±WhiskerAngle.
//
// Like the parallel configuration it is prone to the corner trap when both
// whiskers touch the walls of an acute corner.
type CentralRayWithWhiskersConfiguration[V Vector[V]] struct {
	rayBase[V]
	RayLength     float64
	WhiskerLength float64
	WhiskerAngle  float64
}

func NewCentralRayWithWhiskersConfiguration[V Vector[V]](owner Steerable[V], rayLength, whiskerLength, whiskerAngle float64) *CentralRayWithWhiskersConfiguration[V] {
	return &CentralRayWithWhiskersConfiguration[V]{
		rayBase:       newRayBase(owner, 3),
		RayLength:     rayLength,
		WhiskerLength: whiskerLength,
		WhiskerAngle:  whiskerAngle,
	}
}

func (c *CentralRayWithWhiskersConfiguration[V]) UpdateRays() []Ray[V] {
	owner := c.Owner
	pos := owner.Position()
	velocity := owner.LinearVelocity()
	velocityAngle := owner.VectorToAngle(velocity)

	c.rays[0].Start.Set(pos)
	c.rays[0].End.Set(velocity).Nor().Scale(c.RayLength).Add(pos)

	c.rays[1].Start.Set(pos)
	owner.AngleToVector(c.rays[1].End, velocityAngle-c.WhiskerAngle).Scale(c.WhiskerLength).Add(pos)

	c.rays[2].Start.Set(pos)
	owner.AngleToVector(c.rays[2].End, velocityAngle+c.WhiskerAngle).Scale(c.WhiskerLength).Add(pos)
	return c.rays
}

// RaycastObstacleAvoidance casts the rays of its configuration and, if any
// hits an obstacle, steers toward a point DistanceFromBoundary (plus the
// owner's radius) off the nearest hit along its normal. It produces nothing
// when no ray hits, so it is meant to sit above a cruising behavior in a
// PrioritySteering.
type RaycastObstacleAvoidance[V Vector[V]] struct {
	Base[V]
	Rays                 RayConfiguration[V]
	Detector             RaycastCollisionDetector[V]
	DistanceFromBoundary float64

	hit     *Collision[V]
	nearest *Collision[V]
}

func NewRaycastObstacleAvoidance[V Vector[V]](owner Steerable[V], rays RayConfiguration[V], detector RaycastCollisionDetector[V], distanceFromBoundary float64) *RaycastObstacleAvoidance[V] {
	zero := func() V { return owner.Position().Clone().SetZero() }
	return &RaycastObstacleAvoidance[V]{
		Base:                 NewBase[V](owner),
		Rays:                 rays,
		Detector:             detector,
		DistanceFromBoundary: distanceFromBoundary,
		hit:                  &Collision[V]{Point: zero(), Normal: zero()},
		nearest:              &Collision[V]{Point: zero(), Normal: zero()},
	}
}

func (r *RaycastObstacleAvoidance[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return r.calculate(out, r)
}

// NearestCollision is the hit chosen by the last evaluation, valid only when
// that evaluation produced a non-zero acceleration.
func (r *RaycastObstacleAvoidance[V]) NearestCollision() *Collision[V] { return r.nearest }

func (r *RaycastObstacleAvoidance[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	owner := r.Owner
	pos := owner.Position()
	best := math.Inf(1)

	rays := r.Rays.UpdateRays()
	for i := range rays {
		if !r.Detector.FindCollision(r.hit, &rays[i]) {
			continue
		}
		if d2 := pos.Dst2(r.hit.Point); d2 < best {
			best = d2
			r.hit, r.nearest = r.nearest, r.hit
		}
	}

	if math.IsInf(best, 1) {
		return out.SetZero()
	}

	out.Linear.Set(r.nearest.Point).
		MulAdd(r.nearest.Normal, owner.BoundingRadius()+r.DistanceFromBoundary).
		Sub(pos).
		Nor().
		Scale(r.ActualLimiter().MaxLinearAcceleration())
	out.Angular = 0
	return out
}
