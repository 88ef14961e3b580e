package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

func agent(name string, x, y float64) *sim.Agent[*vec.Vec2] {
	return sim.NewAgent(name, vec.New2(x, y), 0.5, steer.NewFullLimiter(10, 5, 10, 5))
}

func world(agents ...*sim.Agent[*vec.Vec2]) *sim.World[*vec.Vec2] {
	return sim.NewWorld(vec.New2(0, 0), agents...)
}

func TestControlEffort(t *testing.T) {
	a, b := agent("a", 0, 0), agent("b", 5, 0)
	a.Steering().Linear.Set(vec.New2(3, 4))
	a.Steering().Angular = 2
	b.Steering().Linear.Set(vec.New2(0, 1))
	w := world(a, b)

	m := NewControlEffort[*vec.Vec2]()
	m.Observe(w, 0)
	if got := m.Value(); math.Abs(got-3) > 1e-9 {
		t.Errorf("expected mean effort 3, got %f", got)
	}

	m.Reset()
	m.IncludeAngular = true
	m.Observe(w, 0)
	if got := m.Value(); math.Abs(got-4) > 1e-9 {
		t.Errorf("expected mean effort 4 with angular, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero effort after reset")
	}
}

func TestControlEffort_SkipsAirborne(t *testing.T) {
	a := agent("a", 0, 0)
	a.Airborne = true
	a.Steering().Linear.Set(vec.New2(0, -10))

	m := NewControlEffort[*vec.Vec2]()
	m.Observe(world(a), 0)
	if m.Value() != 0 {
		t.Errorf("expected airborne agents to be ignored, got %f", m.Value())
	}
}

func TestSpeedCompliance(t *testing.T) {
	tests := []struct {
		name     string
		speeds   []float64
		expected float64
	}{
		{"all under", []float64{1, 4.9}, 1.0},
		{"within tolerance", []float64{5.001}, 1.0},
		{"one over", []float64{6, 1, 2, 3}, 0.75},
		{"all over", []float64{9, 7}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSpeedCompliance[*vec.Vec2](0.01)
			for _, s := range tt.speeds {
				a := agent("a", 0, 0)
				a.Vel.Set(vec.New2(s, 0))
				m.Observe(world(a), 0)
			}
			if got := m.Value(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestSpeedCompliance_EmptyIsCompliant(t *testing.T) {
	m := NewSpeedCompliance[*vec.Vec2](0)
	if m.Value() != 1.0 {
		t.Errorf("expected 1.0 without samples, got %f", m.Value())
	}
}

func TestMinSeparation(t *testing.T) {
	a, b, c := agent("a", 0, 0), agent("b", 4, 0), agent("c", 0, 10)
	w := world(a, b, c)

	m := NewMinSeparation[*vec.Vec2]()
	m.Observe(w, 0)
	if got := m.Value(); math.Abs(got-3) > 1e-9 {
		t.Errorf("expected separation 3, got %f", got)
	}

	b.Pos.Set(vec.New2(0.5, 0))
	m.Observe(w, 0.1)
	if got := m.Value(); math.Abs(got+0.5) > 1e-9 {
		t.Errorf("expected overlap -0.5, got %f", got)
	}

	b.Pos.Set(vec.New2(20, 0))
	m.Observe(w, 0.2)
	if got := m.Value(); math.Abs(got+0.5) > 1e-9 {
		t.Errorf("minimum should stick, got %f", got)
	}

	m.Reset()
	if !math.IsInf(m.Value(), 1) {
		t.Errorf("expected +Inf after reset, got %f", m.Value())
	}
}

func TestPathDeviation(t *testing.T) {
	path, err := steer.NewLinePath([]*vec.Vec2{vec.New2(0, 0), vec.New2(10, 0), vec.New2(10, 10)}, true)
	if err != nil {
		t.Fatal(err)
	}

	on := agent("on", 5, 0)
	off := agent("off", 5, 2)
	corner := agent("corner", 12, 5)
	w := world(on, off, corner)

	m := NewPathDeviation(path)
	m.Observe(w, 0)
	if got := m.Value(); math.Abs(got-4.0/3) > 1e-9 {
		t.Errorf("expected mean deviation 4/3, got %f", got)
	}

	only := NewPathDeviation(path, "off")
	only.Observe(w, 0)
	if got := only.Value(); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected deviation 2 for the named agent, got %f", got)
	}
}
