// Package scenario builds named, configured simulations out of the steering
// behaviors.
package scenario

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/geom"
	"github.com/san-kum/steersim/internal/integrators"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/metrics"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// Run is a built scenario. Runner drives it; the rest describes the scene
// for the viewers. Planar is set for 2D scenarios and Spatial for 3D ones.
type Run struct {
	Name   string
	Config *config.Config
	Runner sim.Runner

	Planar  *sim.Simulator[*vec.Vec2]
	Spatial *sim.Simulator[*vec.Vec3]

	Walls      []geom.Wall
	Path       []config.Point
	ClosedPath bool
	// Rays are the ray configurations of the avoiding agents.
	Rays []steer.RayConfiguration[*vec.Vec2]
}

// SimConfig is the host loop config derived from the scenario config.
func (r *Run) SimConfig() sim.Config {
	return sim.Config{
		Dt:            r.Config.Dt,
		Duration:      r.Config.Duration,
		Seed:          r.Config.Seed,
		ValidateState: true,
		RecordEvery:   r.Config.RecordEvery,
	}
}

func (r *Run) Execute(ctx context.Context) (*sim.Result, error) {
	return r.Runner.Run(ctx, r.SimConfig())
}

// Metrics is the current value of every metric of the run.
func (r *Run) Metrics() map[string]float64 {
	if r.Planar != nil {
		return r.Planar.Metrics()
	}
	return r.Spatial.Metrics()
}

// planar is the shared setup of the 2D scenarios.
type planar struct {
	cfg   *config.Config
	rng   *rand.Rand
	world *sim.World[*vec.Vec2]
	sim   *sim.Simulator[*vec.Vec2]
}

func newPlanar(cfg *config.Config, l log.Log) (*planar, error) {
	integrator, err := integrators.New[*vec.Vec2](cfg.Integrator)
	if err != nil {
		return nil, err
	}

	world := sim.NewWorld(vec.New2(0, 0))
	s := sim.New(world, integrator)
	s.SetLogger(l)
	s.AddMetric(metrics.NewControlEffort[*vec.Vec2]())
	s.AddMetric(metrics.NewSpeedCompliance[*vec.Vec2](1e-6))

	return &planar{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
		world: world,
		sim:   s,
	}, nil
}

func (p *planar) limiter() *steer.FullLimiter {
	l := p.cfg.Limits
	return steer.NewFullLimiter(l.MaxLinearAcceleration, l.MaxLinearSpeed, l.MaxAngularAcceleration, l.MaxAngularSpeed)
}

// agent adds an agent at pos moving at the configured initial speed toward
// heading.
func (p *planar) agent(name string, pos *vec.Vec2, heading float64) *sim.Agent[*vec.Vec2] {
	a := sim.NewAgent(name, pos, p.cfg.Agents.Radius, p.limiter())
	a.Heading = heading
	a.Vel.SetAngle(heading).Scale(p.cfg.Agents.Speed)
	p.world.Add(a)
	return a
}

// scatter returns the next spawn point: the configured start for a
// single agent, otherwise a uniform point in the spread square around it.
func (p *planar) scatter() *vec.Vec2 {
	start := point2(p.cfg.Agents.Start)
	if p.cfg.Agents.Count <= 1 {
		return start
	}
	s := p.cfg.Agents.Spread
	return start.Add(vec.New2((p.rng.Float64()-0.5)*s, (p.rng.Float64()-0.5)*s))
}

func (p *planar) count() int {
	return max(p.cfg.Agents.Count, 1)
}

func (p *planar) run() *Run {
	return &Run{Runner: p.sim, Planar: p.sim}
}

func (p *planar) clock() steer.Timepiece { return &p.world.ManualTimepiece }

func point2(pt config.Point) *vec.Vec2 { return vec.New2(pt.X, pt.Y) }
func point3(pt config.Point) *vec.Vec3 { return vec.New3(pt.X, pt.Y, pt.Z) }

func agentName(prefix string, i int) string { return fmt.Sprintf("%s%d", prefix, i) }

// headingTo is the orientation facing from one point to another.
func headingTo(from, to *vec.Vec2) float64 {
	return to.Clone().Sub(from).Angle()
}

func arriveParams(cfg *config.Config) steer.ArriveParams {
	return steer.ArriveParams{
		ArrivalTolerance:   cfg.Behavior.ArrivalTolerance,
		DecelerationRadius: cfg.Behavior.DecelerationRadius,
		TimeToTarget:       cfg.Behavior.TimeToTarget,
	}
}

// ring returns n points evenly spaced on a circle.
func ring(center *vec.Vec2, radius float64, n int) []*vec.Vec2 {
	out := make([]*vec.Vec2, n)
	for i := range out {
		a := 2 * math.Pi * float64(i) / float64(n)
		out[i] = vec.New2(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	return out
}
