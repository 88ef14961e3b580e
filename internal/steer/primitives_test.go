package steer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/steersim/internal/vec"
)

func TestSeekAndFlee(t *testing.T) {
	owner := newAgent(1, 1)
	out := newOut()

	NewSeek[*vec.Vec2](owner, point(4, 5)).CalculateSteering(out)
	assertVec(t, "seek", out.Linear, 6, 8)
	if out.Angular != 0 {
		t.Errorf("seek angular = %v", out.Angular)
	}

	NewFlee[*vec.Vec2](owner, point(4, 5)).CalculateSteering(out)
	assertVec(t, "flee", out.Linear, -6, -8)
}

func TestSeek3D(t *testing.T) {
	owner := newAgent3(0, 0, 0)
	out := NewAcceleration(vec.New3(0, 0, 0))
	NewSeek[*vec.Vec3](owner, NewStatic(vec.New3(0, 0, 2), 0)).CalculateSteering(out)
	if !out.Linear.EpsilonEquals(vec.New3(0, 0, 10), 1e-9) {
		t.Errorf("3D seek = %v", out.Linear)
	}
}

func TestDisabledBehaviorZeroes(t *testing.T) {
	owner := newAgent(0, 0)
	seek := NewSeek[*vec.Vec2](owner, point(4, 0))
	seek.SetEnabled(false)

	out := newOut()
	out.Linear.Set(vec.New2(1, 1))
	out.Angular = 3
	seek.CalculateSteering(out)
	if !out.IsZero() {
		t.Errorf("disabled behavior produced %v %v", out.Linear, out.Angular)
	}
}

func TestArrive_SpeedProfile(t *testing.T) {
	const (
		maxSpeed  = 4.0
		tolerance = 0.5
		radius    = 10.0
	)

	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"far outside radius", 50, maxSpeed},
		{"just outside radius", 10.5, maxSpeed},
		{"at radius", 10, maxSpeed},
		{"half radius", 5, maxSpeed * 0.5},
		{"near tolerance", 1, maxSpeed * 0.1},
		{"at tolerance", tolerance, 0},
		{"inside tolerance", 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := newAgent(0, 0)
			owner.FullLimiter = NewFullLimiter(1e9, maxSpeed, 1, 1)

			arrive := NewArrive[*vec.Vec2](owner, point(tt.distance, 0))
			arrive.ArrivalTolerance = tolerance
			arrive.DecelerationRadius = radius
			arrive.TimeToTarget = 1

			out := newOut()
			arrive.CalculateSteering(out)

			// With zero velocity and unit time-to-target the acceleration
			// equals the desired velocity.
			if !near(out.Linear.Len(), tt.want, 1e-9) {
				t.Errorf("speed = %v, want %v", out.Linear.Len(), tt.want)
			}
			if tt.want == 0 && !out.IsZero() {
				t.Errorf("expected exact zero, got %v", out.Linear)
			}
		})
	}
}

func TestArrive_CapsAcceleration(t *testing.T) {
	owner := newAgent(0, 0)
	owner.vel.Set(vec.New2(-5, 0))

	arrive := NewArrive[*vec.Vec2](owner, point(100, 0))
	out := newOut()
	arrive.CalculateSteering(out)

	if !near(out.Linear.Len(), owner.MaxLinearAcceleration(), 1e-9) {
		t.Errorf("acceleration %v not capped at %v", out.Linear.Len(), owner.MaxLinearAcceleration())
	}
	if out.Linear.X <= 0 {
		t.Errorf("expected acceleration toward target, got %v", out.Linear)
	}
}

func TestReachOrientation_ShortestArc(t *testing.T) {
	owner := newAgent(0, 0)
	owner.FullLimiter = NewFullLimiter(1, 1, 100, 2*math.Pi)

	target := NewStatic(vec.New2(0, 0), math.Pi+0.1)
	r := NewReachOrientation[*vec.Vec2](owner, target)
	r.AlignTolerance = 0
	r.DecelerationRadius = 2 * math.Pi
	r.TimeToTarget = 1

	out := newOut()
	r.CalculateSteering(out)

	// Inside the deceleration radius the desired angular speed equals the
	// rotation itself.
	if !near(out.Angular, -math.Pi+0.1, 1e-9) {
		t.Errorf("rotation = %v, want %v", out.Angular, -math.Pi+0.1)
	}
	if !out.Linear.IsZero() {
		t.Errorf("linear = %v, want zero", out.Linear)
	}
}

func TestReachOrientation_ToleranceAndCap(t *testing.T) {
	owner := newAgent(0, 0)
	owner.orientation = 1

	r := NewReachOrientation[*vec.Vec2](owner, NewStatic(vec.New2(0, 0), 1.05))
	r.AlignTolerance = 0.1
	out := newOut()
	r.CalculateSteering(out)
	if !out.IsZero() {
		t.Errorf("inside tolerance should be zero, got %v", out.Angular)
	}

	r.Target = NewStatic(vec.New2(0, 0), 3)
	r.CalculateSteering(out)
	if !near(out.Angular, owner.MaxAngularAcceleration(), 1e-9) {
		t.Errorf("angular = %v, want cap %v", out.Angular, owner.MaxAngularAcceleration())
	}
}

func TestFace(t *testing.T) {
	owner := newAgent(0, 0)
	out := newOut()

	f := NewFace[*vec.Vec2](owner, point(-1, 0))
	f.CalculateSteering(out)
	// -X is orientation +π/2, so the owner turns counter-clockwise.
	if out.Angular <= 0 {
		t.Errorf("expected positive angular, got %v", out.Angular)
	}

	f.Target = point(0.01, 0.01)
	f.CalculateSteering(out)
	if !out.IsZero() {
		t.Errorf("degenerate direction should give zero, got %v %v", out.Linear, out.Angular)
	}
	if math.IsNaN(out.Angular) {
		t.Error("NaN angular")
	}
}

func TestLookWhereYouAreGoing(t *testing.T) {
	owner := newAgent(0, 0)
	l := NewLookWhereYouAreGoing[*vec.Vec2](owner)
	out := newOut()

	l.CalculateSteering(out)
	if !out.IsZero() {
		t.Errorf("stationary owner should give zero, got %v", out.Angular)
	}

	owner.vel.Set(vec.New2(1, 0))
	l.CalculateSteering(out)
	// +X is orientation -π/2.
	if out.Angular >= 0 {
		t.Errorf("expected negative angular, got %v", out.Angular)
	}
}

func TestMatchVelocity(t *testing.T) {
	owner := newAgent(0, 0)
	owner.vel.Set(vec.New2(1, 0))
	target := newAgent(5, 5)
	target.vel.Set(vec.New2(1, 0.5))

	m := NewMatchVelocity[*vec.Vec2](owner, target)
	m.TimeToTarget = 1
	out := newOut()
	m.CalculateSteering(out)
	assertVec(t, "match", out.Linear, 0, 0.5)

	target.vel.Set(vec.New2(100, 0))
	m.CalculateSteering(out)
	if !near(out.Linear.Len(), owner.MaxLinearAcceleration(), 1e-9) {
		t.Errorf("match velocity not capped: %v", out.Linear.Len())
	}
}

func TestPursueLeadsTarget(t *testing.T) {
	owner := newAgent(0, 0)
	owner.vel.Set(vec.New2(1, 0))
	target := newAgent(10, 0)
	target.vel.Set(vec.New2(0, 1))

	out := newOut()
	NewPursue[*vec.Vec2](owner, target, 2).CalculateSteering(out)
	// Prediction is capped at 2s: aim at (10, 2).
	dir := vec.New2(10, 2).Nor().Scale(owner.MaxLinearAcceleration())
	assertVec(t, "pursue", out.Linear, dir.X, dir.Y)

	NewEvade[*vec.Vec2](owner, target, 2).CalculateSteering(out)
	assertVec(t, "evade", out.Linear, -dir.X, -dir.Y)
}

func TestWander(t *testing.T) {
	clock := &ManualTimepiece{Delta: 0}
	owner := newAgent(0, 0)

	w := NewWander[*vec.Vec2](owner, clock, rand.New(rand.NewSource(7)))
	w.WanderOffset = 2
	w.WanderRadius = 1
	w.WanderRate = 1
	w.FaceEnabled = false

	out := newOut()
	w.CalculateSteering(out)

	// dt = 0 keeps the wander orientation at 0: target straight ahead.
	assertVec(t, "center", w.WanderCenter(), 0, 2)
	assertVec(t, "target", w.WanderTarget(), 0, 3)
	assertVec(t, "seek", out.Linear, 0, owner.MaxLinearAcceleration())
	if out.Angular != 0 {
		t.Errorf("angular = %v", out.Angular)
	}

	clock.Advance(0.5)
	for i := 0; i < 20; i++ {
		before := w.WanderOrientation
		w.CalculateSteering(out)
		if step := math.Abs(w.WanderOrientation - before); step >= 0.5 {
			t.Fatalf("random walk step %v exceeds rate*dt", step)
		}
	}
}

func TestWander_FaceEnabled(t *testing.T) {
	clock := &ManualTimepiece{Delta: 0.1}
	owner := newAgent(0, 0)
	owner.orientation = 0.3

	w := NewWander[*vec.Vec2](owner, clock, rand.New(rand.NewSource(3)))
	w.WanderOffset = 3
	w.WanderRadius = 2
	w.WanderRate = math.Pi
	w.WanderOrientation = 1

	out := newOut()
	w.CalculateSteering(out)

	facing := vec.New2(0, 0).SetAngle(owner.orientation).Scale(owner.MaxLinearAcceleration())
	assertVec(t, "linear along facing", out.Linear, facing.X, facing.Y)
	if out.Angular <= 0 {
		t.Errorf("expected turn toward the target, got %v", out.Angular)
	}
}

func TestWander_Deterministic(t *testing.T) {
	run := func() float64 {
		clock := &ManualTimepiece{Delta: 0.016}
		w := NewWander[*vec.Vec2](newAgent(0, 0), clock, rand.New(rand.NewSource(42)))
		w.WanderRate = 2
		out := newOut()
		for i := 0; i < 100; i++ {
			w.CalculateSteering(out)
		}
		return w.WanderOrientation
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed and clock gave %v and %v", a, b)
	}
}
