package steer

import (
	"math"
	"testing"

	"github.com/san-kum/steersim/internal/vec"
)

type testAgent[V Vector[V]] struct {
	*FullLimiter
	pos, vel        V
	orientation     float64
	angularVelocity float64
	radius          float64
	tagged          bool
	positionReads   int
}

func (a *testAgent[V]) Position() V {
	a.positionReads++
	return a.pos
}

func (a *testAgent[V]) Orientation() float64                 { return a.orientation }
func (a *testAgent[V]) SetOrientation(o float64)             { a.orientation = o }
func (a *testAgent[V]) VectorToAngle(v V) float64            { return v.Angle() }
func (a *testAgent[V]) AngleToVector(out V, angle float64) V { return out.SetAngle(angle) }
func (a *testAgent[V]) LinearVelocity() V                    { return a.vel }
func (a *testAgent[V]) AngularVelocity() float64             { return a.angularVelocity }
func (a *testAgent[V]) BoundingRadius() float64              { return a.radius }
func (a *testAgent[V]) IsTagged() bool                       { return a.tagged }
func (a *testAgent[V]) SetTagged(tagged bool)                { a.tagged = tagged }

func newAgent(x, y float64) *testAgent[*vec.Vec2] {
	return &testAgent[*vec.Vec2]{
		FullLimiter: NewFullLimiter(10, 5, 10, 5),
		pos:         vec.New2(x, y),
		vel:         vec.New2(0, 0),
		radius:      0.5,
	}
}

func newAgent3(x, y, z float64) *testAgent[*vec.Vec3] {
	return &testAgent[*vec.Vec3]{
		FullLimiter: NewFullLimiter(10, 5, 10, 5),
		pos:         vec.New3(x, y, z),
		vel:         vec.New3(0, 0, 0),
		radius:      0.5,
	}
}

func newOut() *Acceleration[*vec.Vec2] {
	return NewAcceleration(vec.New2(0, 0))
}

func point(x, y float64) *Static[*vec.Vec2] {
	return NewStatic(vec.New2(x, y), 0)
}

// constant emits a fixed acceleration.
type constant struct {
	Base[*vec.Vec2]
	linear  vec.Vec2
	angular float64
}

func newConstant(owner Steerable[*vec.Vec2], x, y, angular float64) *constant {
	return &constant{Base: NewBase[*vec.Vec2](owner), linear: vec.Vec2{X: x, Y: y}, angular: angular}
}

func (c *constant) CalculateSteering(out *Acceleration[*vec.Vec2]) *Acceleration[*vec.Vec2] {
	return c.calculate(out, c)
}

func (c *constant) steer(out *Acceleration[*vec.Vec2]) *Acceleration[*vec.Vec2] {
	out.Linear.Set(&c.linear)
	out.Angular = c.angular
	return out
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertVec(t *testing.T, name string, got *vec.Vec2, x, y float64) {
	t.Helper()
	if !near(got.X, x, 1e-6) || !near(got.Y, y, 1e-6) {
		t.Errorf("%s = %v, want (%.4f, %.4f)", name, got, x, y)
	}
}
