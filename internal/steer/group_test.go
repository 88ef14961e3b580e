package steer

import (
	"math"
	"testing"

	"github.com/san-kum/steersim/internal/vec"
)

func TestCollisionAvoidance(t *testing.T) {
	tests := []struct {
		name         string
		neighborPos  *vec.Vec2
		neighborVel  *vec.Vec2
		wantX, wantY float64
	}{
		{"head on", vec.New2(10, 0), vec.New2(-1, 0), -10, 0},
		{"glancing", vec.New2(10, 0.8), vec.New2(-1, 0), 0, -10},
		{"miss", vec.New2(10, 3), vec.New2(-1, 0), 0, 0},
		{"diverging", vec.New2(10, 0), vec.New2(2, 0), 0, 0},
		{"same velocity", vec.New2(0.5, 0), vec.New2(1, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := newAgent(0, 0)
			owner.vel.Set(vec.New2(1, 0))
			other := newAgent(0, 0)
			other.pos.Set(tt.neighborPos)
			other.vel.Set(tt.neighborVel)

			c := NewCollisionAvoidance[*vec.Vec2](owner, NewInfiniteProximity[*vec.Vec2](owner, agents(owner, other)))
			out := newOut()
			c.CalculateSteering(out)
			assertVec(t, "avoid", out.Linear, tt.wantX, tt.wantY)
			if out.Angular != 0 {
				t.Errorf("angular = %v", out.Angular)
			}
		})
	}
}

func TestCollisionAvoidance_EarliestWins(t *testing.T) {
	owner := newAgent(0, 0)
	owner.vel.Set(vec.New2(0, 1))

	late := newAgent(0, 20)
	late.vel.Set(vec.New2(0, -1))
	soon := newAgent(0.5, 6)
	soon.vel.Set(vec.New2(0, -1))

	c := NewCollisionAvoidance[*vec.Vec2](owner, NewInfiniteProximity[*vec.Vec2](owner, agents(owner, late, soon)))
	out := newOut()
	c.CalculateSteering(out)

	// soon is hit at t=3 from (0.5, 0): flee toward -X.
	assertVec(t, "avoid", out.Linear, -10, 0)
}

func TestSeparation(t *testing.T) {
	owner := newAgent(0, 0)
	right := newAgent(2, 0)

	s := NewSeparation[*vec.Vec2](owner, NewInfiniteProximity[*vec.Vec2](owner, agents(owner, right)))
	out := newOut()
	s.CalculateSteering(out)
	assertVec(t, "one neighbor", out.Linear, -0.25, 0)

	s.Proximity = NewInfiniteProximity[*vec.Vec2](owner, agents(owner, right, newAgent(-2, 0)))
	s.CalculateSteering(out)
	assertVec(t, "balanced", out.Linear, 0, 0)

	s.Proximity = NewInfiniteProximity[*vec.Vec2](owner, agents(owner, newAgent(0, 0)))
	s.CalculateSteering(out)
	if !out.IsZero() || math.IsNaN(out.Linear.X) {
		t.Errorf("coincident neighbor = %v", out.Linear)
	}
}

func TestSeparation_StrengthCapped(t *testing.T) {
	owner := newAgent(0, 0)
	s := NewSeparation[*vec.Vec2](owner, NewInfiniteProximity[*vec.Vec2](owner, agents(owner, newAgent(0, 0.01))))
	s.DecayCoefficient = 100

	out := newOut()
	s.CalculateSteering(out)
	assertVec(t, "capped", out.Linear, 0, -owner.MaxLinearAcceleration())
}

func TestCohesionAndAlignment(t *testing.T) {
	owner := newAgent(0, 0)
	a, b := newAgent(2, 0), newAgent(0, 2)
	a.vel.Set(vec.New2(2, 0))
	b.vel.Set(vec.New2(0, 2))
	prox := NewInfiniteProximity[*vec.Vec2](owner, agents(owner, a, b))

	out := newOut()
	NewCohesion[*vec.Vec2](owner, prox).CalculateSteering(out)
	d := 10 / math.Sqrt2
	assertVec(t, "cohesion", out.Linear, d, d)

	NewAlignment[*vec.Vec2](owner, prox).CalculateSteering(out)
	assertVec(t, "alignment", out.Linear, 1, 1)

	alone := NewInfiniteProximity[*vec.Vec2](owner, agents(owner))
	NewCohesion[*vec.Vec2](owner, alone).CalculateSteering(out)
	if !out.IsZero() {
		t.Errorf("cohesion without neighbors = %v", out.Linear)
	}
	NewAlignment[*vec.Vec2](owner, alone).CalculateSteering(out)
	if !out.IsZero() {
		t.Errorf("alignment without neighbors = %v", out.Linear)
	}
}
