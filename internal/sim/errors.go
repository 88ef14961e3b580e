package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState indicates an agent with a NaN or Inf component.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrInvalidConfig indicates a non-positive time step or duration.
	ErrInvalidConfig = errors.New("sim: invalid config")
)

// SimulationError wraps an error with the tick and agent it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	Agent   string
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f) agent %q: %v", e.Step, e.Time, e.Agent, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
