package vec

import "math"

// Vector is the arithmetic contract behind every steering computation.
// T is the implementing pointer type, e.g. *Vec2.
type Vector[T any] interface {
	Clone() T
	Len() float64
	Len2() float64
	Set(v T) T
	Sub(v T) T
	Add(v T) T
	Nor() T
	Dot(v T) float64
	Scale(s float64) T
	Dst(v T) float64
	Dst2(v T) float64
	IsZero() bool
	EpsilonEquals(v T, epsilon float64) bool
	MulAdd(v T, s float64) T
	SetZero() T
	Limit(limit float64) T

	// Angle converts the vector to an orientation in radians.
	Angle() float64
	// SetAngle overwrites the receiver with the unit vector for angle.
	SetAngle(angle float64) T

	Dim() int
	Axis(i int) float64
	SetAxis(i int, value float64) T
}

// WrapAngle maps an angle to the range [-π, π].
func WrapAngle(a float64) float64 {
	if a >= 0 {
		r := math.Mod(a, 2*math.Pi)
		if r > math.Pi {
			r -= 2 * math.Pi
		}
		return r
	}
	r := math.Mod(-a, 2*math.Pi)
	if r > math.Pi {
		r -= 2 * math.Pi
	}
	return -r
}

func limitScale(len2, limit float64) float64 {
	limit2 := limit * limit
	if len2 > limit2 {
		return math.Sqrt(limit2 / len2)
	}
	return 1
}
