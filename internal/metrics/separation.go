package metrics

import (
	"math"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
)

// MinSeparation tracks the smallest surface distance between any two agents
// seen during the run. Overlapping agents give a negative value. With fewer
// than two agents the value stays at +Inf.
type MinSeparation[V steer.Vector[V]] struct {
	name string
	min  float64
}

func NewMinSeparation[V steer.Vector[V]]() *MinSeparation[V] {
	return &MinSeparation[V]{name: "min_separation", min: math.Inf(1)}
}

func (m *MinSeparation[V]) Name() string { return m.name }

func (m *MinSeparation[V]) Observe(w *sim.World[V], t float64) {
	agents := w.Agents
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			a, b := agents[i], agents[j]
			d := a.Pos.Dst(b.Pos) - a.Radius - b.Radius
			if d < m.min {
				m.min = d
			}
		}
	}
}

func (m *MinSeparation[V]) Value() float64 { return m.min }
func (m *MinSeparation[V]) Reset()         { m.min = math.Inf(1) }
