package steer

import "github.com/san-kum/steersim/internal/vec"

// Vector is the constraint every behavior is generic over.
type Vector[V any] interface {
	vec.Vector[V]
}

// Location is anything with a position and an orientation.
type Location[V Vector[V]] interface {
	Position() V
	Orientation() float64
	SetOrientation(orientation float64)

	// VectorToAngle returns the orientation a vector points at.
	VectorToAngle(v V) float64
	// AngleToVector writes the unit vector for angle into out and returns it.
	AngleToVector(out V, angle float64) V
}

// Steerable is an agent that can be driven by steering behaviors.
// Its own caps act as the default [Limiter] of every behavior it owns.
type Steerable[V Vector[V]] interface {
	Location[V]
	Limiter

	LinearVelocity() V
	AngularVelocity() float64
	BoundingRadius() float64

	// IsTagged and SetTagged expose the scratch flag proximities use to mark
	// the neighbors they accepted this tick.
	IsTagged() bool
	SetTagged(tagged bool)
}

// Static is a fixed location, typically used as a target.
type Static[V Vector[V]] struct {
	Pos   V
	Angle float64
}

func NewStatic[V Vector[V]](pos V, orientation float64) *Static[V] {
	return &Static[V]{Pos: pos, Angle: orientation}
}

func (s *Static[V]) Position() V                      { return s.Pos }
func (s *Static[V]) Orientation() float64             { return s.Angle }
func (s *Static[V]) SetOrientation(o float64)         { s.Angle = o }
func (s *Static[V]) VectorToAngle(v V) float64        { return v.Angle() }
func (s *Static[V]) AngleToVector(out V, a float64) V { return out.SetAngle(a) }
