package integrators

import (
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// Verlet is velocity Verlet under the acceleration held constant for the
// tick: the position moves with the mean of the old and new velocity.
type Verlet[V steer.Vector[V]] struct {
	prev  V
	ready bool
}

func NewVerlet[V steer.Vector[V]]() *Verlet[V] {
	return &Verlet[V]{}
}

func (v *Verlet[V]) Step(a *sim.Agent[V], acc *steer.Acceleration[V], dt float64) {
	v.ensureScratch(a.Vel)
	v.prev.Set(a.Vel)
	prevSpin := a.Spin

	a.Vel.MulAdd(acc.Linear, dt)
	a.Spin += acc.Angular * dt
	clamp(a)

	// The new velocity is the clamped one.
	a.Pos.MulAdd(v.prev, 0.5*dt).MulAdd(a.Vel, 0.5*dt)
	a.Heading = vec.WrapAngle(a.Heading + 0.5*(prevSpin+a.Spin)*dt)
}

func (v *Verlet[V]) ensureScratch(like V) {
	if !v.ready {
		v.prev = like.Clone()
		v.ready = true
	}
}
