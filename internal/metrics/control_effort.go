package metrics

import (
	"math"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
)

// ControlEffort is the mean magnitude of the linear steering output over
// every grounded agent and tick. Angular output is added when
// IncludeAngular is set.
type ControlEffort[V steer.Vector[V]] struct {
	IncludeAngular bool

	name    string
	sum     float64
	samples int
}

func NewControlEffort[V steer.Vector[V]]() *ControlEffort[V] {
	return &ControlEffort[V]{
		name: "control_effort",
	}
}

func (c *ControlEffort[V]) Name() string {
	return c.name
}

func (c *ControlEffort[V]) Observe(w *sim.World[V], t float64) {
	for _, a := range w.Agents {
		if a.Airborne {
			continue
		}
		acc := a.Steering()
		c.sum += acc.Linear.Len()
		if c.IncludeAngular {
			c.sum += math.Abs(acc.Angular)
		}
		c.samples++
	}
}

func (c *ControlEffort[V]) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort[V]) Reset() {
	c.sum = 0
	c.samples = 0
}
