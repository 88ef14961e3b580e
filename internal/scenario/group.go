package scenario

import (
	"math"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/metrics"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// flockFieldOfView is the cone boids see their flockmates in.
const flockFieldOfView = 1.5 * math.Pi

// buildFlock gives every boid a blend of separation from everyone nearby,
// cohesion and alignment with the flockmates in view, and a slight wander.
func buildFlock(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	for i := 0; i < p.count(); i++ {
		a := p.agent(agentName("boid", i), p.scatter(), p.rng.Float64()*2*math.Pi)
		a.Vel.SetAngle(a.Heading).Scale(math.Max(cfg.Agents.Speed, 1))
	}

	agents := p.world.Steerables()
	radius := cfg.Behavior.NeighborRadius
	for i, a := range p.world.Agents {
		near := steer.NewRadiusProximity[*vec.Vec2](a, agents, radius, p.clock())
		view := steer.NewFieldOfViewProximity[*vec.Vec2](a, agents, radius, flockFieldOfView, p.clock())

		wander := steer.NewWander[*vec.Vec2](a, p.clock(), p.rng)
		wander.FaceEnabled = false
		wander.WanderOffset = cfg.Behavior.WanderOffset
		wander.WanderRadius = cfg.Behavior.WanderRadius
		wander.WanderRate = cfg.Behavior.WanderRate
		wander.WanderOrientation = float64(i)

		blend := steer.NewBlendedSteering[*vec.Vec2](a)
		blend.Add(steer.NewSeparation[*vec.Vec2](a, near), cfg.Behavior.SeparationWeight)
		blend.Add(steer.NewCohesion[*vec.Vec2](a, view), cfg.Behavior.CohesionWeight)
		blend.Add(steer.NewAlignment[*vec.Vec2](a, view), cfg.Behavior.AlignmentWeight)
		blend.Add(wander, 0.3)
		a.Behavior = blend
	}

	p.sim.AddMetric(metrics.NewMinSeparation[*vec.Vec2]())
	return p.run(), nil
}

// buildCrowd puts the agents on a ring around the start point, each
// arriving at the opposite side. Collision avoidance takes priority over the
// arrival whenever a collision is predicted.
func buildCrowd(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	n := max(p.count(), 2)
	center := point2(cfg.Agents.Start)
	spots := ring(center, math.Max(cfg.Agents.Spread, 1), n)

	for i, pos := range spots {
		goal := spots[(i+n/2)%n]
		p.agent(agentName("walker", i), pos.Clone(), headingTo(pos, goal))
	}

	agents := p.world.Steerables()
	for i, a := range p.world.Agents {
		goal := steer.NewStatic(spots[(i+n/2)%n].Clone(), 0)

		arrive := steer.NewArrive[*vec.Vec2](a, goal)
		arrive.ArriveParams = arriveParams(cfg)

		prox := steer.NewRadiusProximity[*vec.Vec2](a, agents, cfg.Behavior.NeighborRadius, p.clock())
		priority := steer.NewPrioritySteering[*vec.Vec2](a, 0.001)
		priority.Add(steer.NewCollisionAvoidance[*vec.Vec2](a, prox))
		priority.Add(arrive)
		a.Behavior = priority
	}

	p.sim.AddMetric(metrics.NewMinSeparation[*vec.Vec2]())
	return p.run(), nil
}
