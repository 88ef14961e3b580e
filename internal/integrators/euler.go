package integrators

import (
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// Euler moves with the old velocity, then updates the velocity.
type Euler[V steer.Vector[V]] struct{}

func NewEuler[V steer.Vector[V]]() *Euler[V] {
	return &Euler[V]{}
}

func (e *Euler[V]) Step(a *sim.Agent[V], acc *steer.Acceleration[V], dt float64) {
	a.Pos.MulAdd(a.Vel, dt)
	a.Heading = vec.WrapAngle(a.Heading + a.Spin*dt)

	a.Vel.MulAdd(acc.Linear, dt)
	a.Spin += acc.Angular * dt
	clamp(a)
}

// SemiImplicitEuler updates the velocity first and moves with the new one.
type SemiImplicitEuler[V steer.Vector[V]] struct{}

func NewSemiImplicitEuler[V steer.Vector[V]]() *SemiImplicitEuler[V] {
	return &SemiImplicitEuler[V]{}
}

func (e *SemiImplicitEuler[V]) Step(a *sim.Agent[V], acc *steer.Acceleration[V], dt float64) {
	a.Vel.MulAdd(acc.Linear, dt)
	a.Spin += acc.Angular * dt
	clamp(a)

	a.Pos.MulAdd(a.Vel, dt)
	a.Heading = vec.WrapAngle(a.Heading + a.Spin*dt)
}
