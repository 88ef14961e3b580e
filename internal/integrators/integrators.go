package integrators

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
)

var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

// Names lists the integrators accepted by New.
func Names() []string {
	names := []string{"euler", "semi_implicit", "verlet"}
	sort.Strings(names)
	return names
}

func New[V steer.Vector[V]](name string) (sim.Integrator[V], error) {
	switch name {
	case "euler":
		return NewEuler[V](), nil
	case "semi_implicit", "":
		return NewSemiImplicitEuler[V](), nil
	case "verlet":
		return NewVerlet[V](), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
}

// clamp caps the agent's speeds to its limiter unless it is airborne.
func clamp[V steer.Vector[V]](a *sim.Agent[V]) {
	if a.Airborne {
		return
	}
	a.Vel.Limit(a.MaxLinearSpeed())
	if maxSpin := a.MaxAngularSpeed(); math.Abs(a.Spin) > maxSpin {
		a.Spin = math.Copysign(maxSpin, a.Spin)
	}
}
