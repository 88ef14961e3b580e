package scenario

import (
	"math"
	"math/rand"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/metrics"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

func buildSeek(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	target := steer.NewStatic(point2(cfg.Agents.Target), 0)
	for i := 0; i < p.count(); i++ {
		pos := p.scatter()
		a := p.agent(agentName("seeker", i), pos, headingTo(pos, target.Pos))
		a.Behavior = steer.NewSeek[*vec.Vec2](a, target)
	}
	return p.run(), nil
}

// buildArrive lets the agents steer their own facing toward the target while
// they decelerate onto it.
func buildArrive(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	target := steer.NewStatic(point2(cfg.Agents.Target), 0)
	for i := 0; i < p.count(); i++ {
		a := p.agent(agentName("arriver", i), p.scatter(), 0)
		a.IndependentFacing = true

		arrive := steer.NewArrive[*vec.Vec2](a, target)
		arrive.ArriveParams = arriveParams(cfg)

		blend := steer.NewBlendedSteering[*vec.Vec2](a)
		blend.Add(arrive, 1)
		blend.Add(steer.NewFace[*vec.Vec2](a, target), 1)
		a.Behavior = blend
	}
	return p.run(), nil
}

func buildWander(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	for i := 0; i < p.count(); i++ {
		a := p.agent(agentName("wanderer", i), p.scatter(), p.rng.Float64()*2*math.Pi)
		a.IndependentFacing = true

		w := steer.NewWander[*vec.Vec2](a, p.clock(), rand.New(rand.NewSource(cfg.Seed+int64(i))))
		w.WanderOffset = cfg.Behavior.WanderOffset
		w.WanderRadius = cfg.Behavior.WanderRadius
		w.WanderRate = cfg.Behavior.WanderRate
		a.Behavior = w
	}
	return p.run(), nil
}

// buildPursue places the hunter at the start and the prey at the target. The
// prey flees with the hunter's predicted position in mind; the hunter steers
// at the prey's predicted position and looks where it is going.
func buildPursue(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	start, target := point2(cfg.Agents.Start), point2(cfg.Agents.Target)
	hunter := p.agent("hunter", start, headingTo(start, target))
	prey := p.agent("prey", target, headingTo(start, target))
	prey.SetMaxLinearSpeed(cfg.Limits.MaxLinearSpeed * 0.8)

	hunter.IndependentFacing = true
	chase := steer.NewBlendedSteering[*vec.Vec2](hunter)
	chase.Add(steer.NewPursue[*vec.Vec2](hunter, prey, cfg.Behavior.MaxPredictionTime), 1)
	chase.Add(steer.NewLookWhereYouAreGoing[*vec.Vec2](hunter), 1)
	hunter.Behavior = chase

	prey.Behavior = steer.NewEvade[*vec.Vec2](prey, hunter, cfg.Behavior.MaxPredictionTime)

	p.sim.AddMetric(metrics.NewMinSeparation[*vec.Vec2]())
	return p.run(), nil
}

// defaultPath is used when the config has no waypoints.
var defaultPath = []config.Point{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 0, Y: 10}}

func buildFollowPath(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	points := cfg.Path.Waypoints
	if len(points) == 0 {
		points = defaultPath
	}
	waypoints := make([]*vec.Vec2, len(points))
	for i, pt := range points {
		waypoints[i] = point2(pt)
	}
	path, err := steer.NewLinePath(waypoints, cfg.Path.Open)
	if err != nil {
		return nil, err
	}

	for i := 0; i < p.count(); i++ {
		a := p.agent(agentName("follower", i), p.scatter(), 0)
		follow := steer.NewLinePathFollower[*vec.Vec2](a, path, cfg.Behavior.PathOffset, cfg.Behavior.PredictionTime)
		follow.ArriveParams = arriveParams(cfg)
		a.Behavior = follow
	}

	p.sim.AddMetric(metrics.NewPathDeviation(path))

	run := p.run()
	run.Path = points
	run.ClosedPath = !cfg.Path.Open
	return run, nil
}
