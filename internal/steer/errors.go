package steer

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewWaypoints is returned when a path is built from fewer than two points.
	ErrTooFewWaypoints = errors.New("steer: path needs at least two waypoints")

	// ErrUnsupported marks a query for a capability a partial limiter does not declare.
	ErrUnsupported = errors.New("steer: unsupported limiter capability")
)

// UnsupportedError is raised (by panic) when a behavior queries a limiter for a
// cap it does not provide. It always indicates a misconfigured behavior tree.
type UnsupportedError struct {
	Limiter string
	Method  string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("steer: %s does not support %s", e.Limiter, e.Method)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// Evaluate runs b and converts an unsupported-limiter panic into an error.
// Any other panic is re-raised.
func Evaluate[V Vector[V]](b Behavior[V], out *Acceleration[V]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ue, ok := r.(*UnsupportedError); ok {
				out.SetZero()
				err = ue
				return
			}
			panic(r)
		}
	}()
	b.CalculateSteering(out)
	return nil
}
