package sim

import (
	"math"

	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// Agent is the host's steerable body. The simulator evaluates Behavior into
// the agent's own steering buffer and the integrator applies it.
type Agent[V steer.Vector[V]] struct {
	*steer.FullLimiter

	Name     string
	Pos, Vel V
	Heading  float64
	Spin     float64
	Radius   float64
	Behavior steer.Behavior[V]

	// IndependentFacing keeps Heading under the control of angular steering.
	// Otherwise it is snapped to the direction of travel after every tick.
	IndependentFacing bool
	// Airborne agents fall under World.Gravity, are not steered and are not
	// speed limited.
	Airborne bool

	tagged   bool
	steering *steer.Acceleration[V]
}

func NewAgent[V steer.Vector[V]](name string, pos V, radius float64, limiter *steer.FullLimiter) *Agent[V] {
	return &Agent[V]{
		FullLimiter: limiter,
		Name:        name,
		Pos:         pos,
		Vel:         pos.Clone().SetZero(),
		Radius:      radius,
		steering:    steer.NewAcceleration(pos.Clone()),
	}
}

func (a *Agent[V]) Position() V                          { return a.Pos }
func (a *Agent[V]) Orientation() float64                 { return a.Heading }
func (a *Agent[V]) SetOrientation(o float64)             { a.Heading = o }
func (a *Agent[V]) VectorToAngle(v V) float64            { return v.Angle() }
func (a *Agent[V]) AngleToVector(out V, angle float64) V { return out.SetAngle(angle) }
func (a *Agent[V]) LinearVelocity() V                    { return a.Vel }
func (a *Agent[V]) AngularVelocity() float64             { return a.Spin }
func (a *Agent[V]) BoundingRadius() float64              { return a.Radius }
func (a *Agent[V]) IsTagged() bool                       { return a.tagged }
func (a *Agent[V]) SetTagged(tagged bool)                { a.tagged = tagged }

// Steering is the acceleration computed for the current tick.
func (a *Agent[V]) Steering() *steer.Acceleration[V] { return a.steering }

func (a *Agent[V]) State() AgentState {
	s := AgentState{
		Orientation:     a.Heading,
		AngularVelocity: a.Spin,
		Linear:          a.steering.Linear.Len(),
		Angular:         a.steering.Angular,
		Tagged:          a.tagged,
		Airborne:        a.Airborne,
	}
	for i := 0; i < a.Pos.Dim() && i < 3; i++ {
		s.Position[i] = a.Pos.Axis(i)
		s.Velocity[i] = a.Vel.Axis(i)
	}
	return s
}

func (a *Agent[V]) faceVelocity() {
	if a.Vel.Len2() > a.ZeroLinearSpeedThreshold() {
		a.Heading = a.Vel.Angle()
		a.Spin = 0
	}
}

func (a *Agent[V]) valid() bool {
	if isBad(a.Heading) || isBad(a.Spin) {
		return false
	}
	for i := 0; i < a.Pos.Dim(); i++ {
		if isBad(a.Pos.Axis(i)) || isBad(a.Vel.Axis(i)) {
			return false
		}
	}
	return true
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

var (
	_ steer.Steerable[*vec.Vec2] = (*Agent[*vec.Vec2])(nil)
	_ steer.Steerable[*vec.Vec3] = (*Agent[*vec.Vec3])(nil)
)
