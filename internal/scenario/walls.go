package scenario

import (
	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/geom"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// defaultWalls is a slanted wall across the way from the default start to
// the default target, inside a closed arena.
var defaultWalls = append(
	[]geom.Wall{geom.NewWall(1, 8, 8, 3)},
	geom.Box(-5, -5, 15, 15)...,
)

// buildWalls drives the agents toward the target with ray-based obstacle
// avoidance taking priority over the arrival.
func buildWalls(cfg *config.Config, l log.Log) (*Run, error) {
	p, err := newPlanar(cfg, l)
	if err != nil {
		return nil, err
	}

	walls := defaultWalls
	if len(cfg.Walls) > 0 {
		walls = make([]geom.Wall, len(cfg.Walls))
		for i, w := range cfg.Walls {
			walls[i] = geom.NewWall(w.From.X, w.From.Y, w.To.X, w.To.Y)
		}
	}
	detector := geom.NewWalls(walls...)

	run := p.run()
	run.Walls = walls

	target := steer.NewStatic(point2(cfg.Agents.Target), 0)
	for i := 0; i < p.count(); i++ {
		pos := p.scatter()
		a := p.agent(agentName("explorer", i), pos, headingTo(pos, target.Pos))
		if a.Vel.IsZero() {
			// rays are cast along the velocity
			a.Vel.SetAngle(a.Heading)
		}

		rays := newRays(cfg.Behavior, a)
		run.Rays = append(run.Rays, rays)

		arrive := steer.NewArrive[*vec.Vec2](a, target)
		arrive.ArriveParams = arriveParams(cfg)

		priority := steer.NewPrioritySteering[*vec.Vec2](a, 0.001)
		priority.Add(steer.NewRaycastObstacleAvoidance[*vec.Vec2](a, rays, detector, cfg.Behavior.DistanceFromBoundary))
		priority.Add(arrive)
		a.Behavior = priority
	}
	return run, nil
}

func newRays(b config.BehaviorConfig, owner steer.Steerable[*vec.Vec2]) steer.RayConfiguration[*vec.Vec2] {
	switch b.Rays {
	case "single":
		return steer.NewSingleRayConfiguration[*vec.Vec2](owner, b.RayLength)
	case "parallel":
		return steer.NewParallelSideRayConfiguration[*vec.Vec2](owner, b.RayLength, b.SideOffset)
	default:
		return steer.NewCentralRayWithWhiskersConfiguration[*vec.Vec2](owner, b.RayLength, b.WhiskerLength, b.WhiskerAngle)
	}
}
