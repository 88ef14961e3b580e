package vec

import (
	"fmt"
	"math"
)

var _ Vector[*Vec3] = (*Vec3)(nil)

// Vec3 is a spatial vector with +Y up.
type Vec3 struct {
	X, Y, Z float64
}

func New3(x, y, z float64) *Vec3 {
	return &Vec3{X: x, Y: y, Z: z}
}

func (v *Vec3) Clone() *Vec3 { return &Vec3{X: v.X, Y: v.Y, Z: v.Z} }

func (v *Vec3) Len() float64  { return math.Sqrt(v.Len2()) }
func (v *Vec3) Len2() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

func (v *Vec3) Set(o *Vec3) *Vec3 {
	v.X, v.Y, v.Z = o.X, o.Y, o.Z
	return v
}

func (v *Vec3) Sub(o *Vec3) *Vec3 {
	v.X -= o.X
	v.Y -= o.Y
	v.Z -= o.Z
	return v
}

func (v *Vec3) Add(o *Vec3) *Vec3 {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
	return v
}

// Nor normalizes in place. The zero vector is left unchanged.
func (v *Vec3) Nor() *Vec3 {
	// One sqrt, three multiplies
	l := v.Len()
	if l != 0 {
		inv := 1 / l
		v.X *= inv
		v.Y *= inv
		v.Z *= inv
	}
	return v
}

func (v *Vec3) Dot(o *Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v *Vec3) Scale(s float64) *Vec3 {
	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

func (v *Vec3) Dst(o *Vec3) float64 { return math.Sqrt(v.Dst2(o)) }

func (v *Vec3) Dst2(o *Vec3) float64 {
	dx, dy, dz := o.X-v.X, o.Y-v.Y, o.Z-v.Z
	return dx*dx + dy*dy + dz*dz
}

func (v *Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

func (v *Vec3) EpsilonEquals(o *Vec3, epsilon float64) bool {
	return math.Abs(o.X-v.X) <= epsilon &&
		math.Abs(o.Y-v.Y) <= epsilon &&
		math.Abs(o.Z-v.Z) <= epsilon
}

func (v *Vec3) MulAdd(o *Vec3, s float64) *Vec3 {
	v.X += o.X * s
	v.Y += o.Y * s
	v.Z += o.Z * s
	return v
}

func (v *Vec3) SetZero() *Vec3 {
	v.X, v.Y, v.Z = 0, 0, 0
	return v
}

func (v *Vec3) Limit(limit float64) *Vec3 {
	return v.Scale(limitScale(v.Len2(), limit))
}

// Angle ignores the vertical component.
func (v *Vec3) Angle() float64 { return math.Atan2(-v.X, v.Z) }

// SetAngle writes a horizontal unit vector; Y is cleared.
func (v *Vec3) SetAngle(angle float64) *Vec3 {
	v.X = -math.Sin(angle)
	v.Y = 0
	v.Z = math.Cos(angle)
	return v
}

func (v *Vec3) Dim() int { return 3 }

func (v *Vec3) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	panic(fmt.Sprintf("vec: axis %d out of range for Vec3", i))
}

func (v *Vec3) SetAxis(i int, value float64) *Vec3 {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		panic(fmt.Sprintf("vec: axis %d out of range for Vec3", i))
	}
	return v
}

func (v *Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
