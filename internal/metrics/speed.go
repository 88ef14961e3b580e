package metrics

import (
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
)

// SpeedCompliance is the fraction of agent samples whose speed stays within
// the agent's MaxLinearSpeed plus tolerance. Airborne agents are not counted.
type SpeedCompliance[V steer.Vector[V]] struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewSpeedCompliance[V steer.Vector[V]](tolerance float64) *SpeedCompliance[V] {
	return &SpeedCompliance[V]{
		name:      "speed_compliance",
		tolerance: tolerance,
	}
}

func (s *SpeedCompliance[V]) Name() string {
	return s.name
}

func (s *SpeedCompliance[V]) Observe(w *sim.World[V], t float64) {
	for _, a := range w.Agents {
		if a.Airborne {
			continue
		}
		s.samples++
		if a.Vel.Len() > a.MaxLinearSpeed()+s.tolerance {
			s.violations++
		}
	}
}

func (s *SpeedCompliance[V]) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *SpeedCompliance[V]) Reset() {
	s.violations = 0
	s.samples = 0
}
