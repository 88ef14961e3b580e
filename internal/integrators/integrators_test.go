package integrators

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

func newAgent() *sim.Agent[*vec.Vec2] {
	return sim.NewAgent("a", vec.New2(0, 0), 0.5, steer.NewFullLimiter(100, 10, 100, 2))
}

func push(x, y, angular float64) *steer.Acceleration[*vec.Vec2] {
	acc := steer.NewAcceleration(vec.New2(0, 0))
	acc.Linear.Set(vec.New2(x, y))
	acc.Angular = angular
	return acc
}

func TestStep_ConstantAcceleration(t *testing.T) {
	tests := []struct {
		name  string
		integ sim.Integrator[*vec.Vec2]
		wantX float64
	}{
		// x after one tick of dt=1 under a=2 starting from v=1.
		{"euler", NewEuler[*vec.Vec2](), 1},
		{"semi_implicit", NewSemiImplicitEuler[*vec.Vec2](), 3},
		{"verlet", NewVerlet[*vec.Vec2](), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAgent()
			a.Vel.Set(vec.New2(1, 0))
			tt.integ.Step(a, push(2, 0, 0), 1)

			if math.Abs(a.Pos.X-tt.wantX) > 1e-12 {
				t.Errorf("x = %v, want %v", a.Pos.X, tt.wantX)
			}
			if a.Vel.X != 3 || a.Vel.Y != 0 {
				t.Errorf("velocity = %v, want (3, 0)", a.Vel)
			}
		})
	}
}

func TestStep_ClampsSpeeds(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			integ, err := New[*vec.Vec2](name)
			if err != nil {
				t.Fatal(err)
			}
			a := newAgent()
			for i := 0; i < 100; i++ {
				integ.Step(a, push(30, 40, 50), 0.1)
			}
			if s := a.Vel.Len(); math.Abs(s-a.MaxLinearSpeed()) > 1e-9 {
				t.Errorf("speed = %v, want %v", s, a.MaxLinearSpeed())
			}
			if a.Spin != a.MaxAngularSpeed() {
				t.Errorf("spin = %v, want %v", a.Spin, a.MaxAngularSpeed())
			}
			if a.Heading < -math.Pi || a.Heading > math.Pi {
				t.Errorf("heading %v not wrapped", a.Heading)
			}
		})
	}
}

func TestStep_AirborneNotClamped(t *testing.T) {
	a := newAgent()
	a.Airborne = true
	a.Vel.Set(vec.New2(0, 20))

	NewSemiImplicitEuler[*vec.Vec2]().Step(a, push(0, -10, 0), 0.1)
	if a.Vel.Y != 19 {
		t.Errorf("airborne velocity = %v, want 19", a.Vel.Y)
	}
}

func TestStep_Vec3(t *testing.T) {
	a := sim.NewAgent("b", vec.New3(0, 0, 0), 0.5, steer.NewFullLimiter(10, 10, 1, 1))
	acc := steer.NewAcceleration(vec.New3(0, 0, 0))
	acc.Linear.Set(vec.New3(0, 0, 4))

	NewVerlet[*vec.Vec3]().Step(a, acc, 0.5)
	if !a.Pos.EpsilonEquals(vec.New3(0, 0, 0.5), 1e-12) || !a.Vel.EpsilonEquals(vec.New3(0, 0, 2), 1e-12) {
		t.Errorf("pos %v vel %v", a.Pos, a.Vel)
	}
}

func TestNew_Unknown(t *testing.T) {
	if _, err := New[*vec.Vec2]("rk4"); !errors.Is(err, ErrUnknownIntegrator) {
		t.Errorf("err = %v", err)
	}
}
