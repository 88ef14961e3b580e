package scenario

import (
	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/integrators"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/metrics"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// verticalAxis is Y in the 3D scenarios.
const verticalAxis = 1

// jumper is the host side of a Jump: it launches the agent on takeoff, lands
// it when the reported airborne time is over and then hands it to an
// arrival at the landing point. When the jump cannot be made the agent
// stops at the takeoff point instead.
type jumper struct {
	agent   *sim.Agent[*vec.Vec3]
	world   *sim.World[*vec.Vec3]
	jump    *steer.Jump[*vec.Vec3]
	params  steer.ArriveParams
	log     log.Log
	landAt  float64
	landed  bool
	reports int
}

func (j *jumper) ReportAchievability(achievable bool) {
	j.reports++
	j.log.Info("jump planned",
		log.Bool("achievable", achievable),
		log.Float64("airborne_time", j.jump.AirborneTime()))
	if !achievable {
		j.settle(j.jump.Descriptor().TakeoffPosition)
	}
}

func (j *jumper) Takeoff(maxVerticalVelocity, t float64) {
	a := j.agent
	a.Airborne = true
	a.Vel.SetAxis(verticalAxis, maxVerticalVelocity)
	j.landAt = j.world.Time() + t
	j.log.Info("takeoff",
		log.Float64("time", j.world.Time()),
		log.Float64("vertical_velocity", maxVerticalVelocity),
		log.Float64("airborne_time", t))
}

// OnStep lands the agent once its airborne time has elapsed.
func (j *jumper) OnStep(w *sim.World[*vec.Vec3], t float64) {
	a := j.agent
	if !a.Airborne || t < j.landAt-1e-9 {
		return
	}

	landing := j.jump.Descriptor().LandingPosition
	a.Airborne = false
	a.Pos.SetAxis(verticalAxis, landing.Axis(verticalAxis))
	a.Vel.SetAxis(verticalAxis, 0)
	j.landed = true
	j.log.Info("landed",
		log.Float64("time", t),
		log.String("position", a.Pos.String()),
		log.Float64("miss", a.Pos.Dst(landing)))

	j.settle(landing)
}

func (j *jumper) settle(at *vec.Vec3) {
	arrive := steer.NewArrive[*vec.Vec3](j.agent, steer.NewStatic(at.Clone(), 0))
	arrive.ArriveParams = j.params
	j.agent.Behavior = arrive
}

func buildJump(cfg *config.Config, l log.Log) (*Run, error) {
	integrator, err := integrators.New[*vec.Vec3](cfg.Integrator)
	if err != nil {
		return nil, err
	}

	gravity := vec.New3(0, 0, 0).SetAxis(verticalAxis, cfg.Jump.Gravity)
	world := sim.NewWorld(gravity)
	s := sim.New(world, integrator)
	s.SetLogger(l)
	s.AddMetric(metrics.NewControlEffort[*vec.Vec3]())
	s.AddMetric(metrics.NewSpeedCompliance[*vec.Vec3](1e-6))

	lim := cfg.Limits
	start := point3(cfg.Agents.Start)
	a := sim.NewAgent("jumper", start, cfg.Agents.Radius,
		steer.NewFullLimiter(lim.MaxLinearAcceleration, lim.MaxLinearSpeed, lim.MaxAngularAcceleration, lim.MaxAngularSpeed))
	world.Add(a)

	descriptor := steer.NewJumpDescriptor(point3(cfg.Jump.Takeoff), point3(cfg.Jump.Landing))
	j := &jumper{agent: a, world: world, params: arriveParams(cfg), log: l}

	jump := steer.NewJump[*vec.Vec3](a, descriptor, gravity.Clone(), verticalAxis, j)
	jump.MaxVerticalVelocity = cfg.Jump.MaxVerticalVelocity
	jump.TakeoffPositionTolerance = cfg.Jump.PositionTolerance
	jump.TakeoffVelocityTolerance = cfg.Jump.VelocityTolerance
	jump.TimeToTarget = cfg.Behavior.TimeToTarget
	j.jump = jump
	a.Behavior = jump

	s.AddObserver(j)
	return &Run{Runner: s, Spatial: s}, nil
}
