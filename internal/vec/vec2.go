package vec

import (
	"fmt"
	"math"
)

var _ Vector[*Vec2] = (*Vec2)(nil)

type Vec2 struct {
	X, Y float64
}

func New2(x, y float64) *Vec2 {
	return &Vec2{X: x, Y: y}
}

func (v *Vec2) Clone() *Vec2 { return &Vec2{X: v.X, Y: v.Y} }

func (v *Vec2) Len() float64  { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v *Vec2) Len2() float64 { return v.X*v.X + v.Y*v.Y }

func (v *Vec2) Set(o *Vec2) *Vec2 {
	v.X, v.Y = o.X, o.Y
	return v
}

func (v *Vec2) Sub(o *Vec2) *Vec2 {
	v.X -= o.X
	v.Y -= o.Y
	return v
}

func (v *Vec2) Add(o *Vec2) *Vec2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

// Nor normalizes in place. The zero vector is left unchanged.
func (v *Vec2) Nor() *Vec2 {
	l := v.Len()
	if l != 0 {
		v.X /= l
		v.Y /= l
	}
	return v
}

func (v *Vec2) Dot(o *Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v *Vec2) Scale(s float64) *Vec2 {
	v.X *= s
	v.Y *= s
	return v
}

func (v *Vec2) Dst(o *Vec2) float64 { return math.Sqrt(v.Dst2(o)) }

func (v *Vec2) Dst2(o *Vec2) float64 {
	dx, dy := o.X-v.X, o.Y-v.Y
	return dx*dx + dy*dy
}

func (v *Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

func (v *Vec2) EpsilonEquals(o *Vec2, epsilon float64) bool {
	return math.Abs(o.X-v.X) <= epsilon && math.Abs(o.Y-v.Y) <= epsilon
}

// MulAdd adds o scaled by s to the receiver.
func (v *Vec2) MulAdd(o *Vec2, s float64) *Vec2 {
	v.X += o.X * s
	v.Y += o.Y * s
	return v
}

func (v *Vec2) SetZero() *Vec2 {
	v.X, v.Y = 0, 0
	return v
}

// Limit shrinks the vector to length limit. Shorter vectors are unchanged.
func (v *Vec2) Limit(limit float64) *Vec2 {
	return v.Scale(limitScale(v.Len2(), limit))
}

func (v *Vec2) Angle() float64 { return math.Atan2(-v.X, v.Y) }

func (v *Vec2) SetAngle(angle float64) *Vec2 {
	v.X = -math.Sin(angle)
	v.Y = math.Cos(angle)
	return v
}

func (v *Vec2) Dim() int { return 2 }

func (v *Vec2) Axis(i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	panic(fmt.Sprintf("vec: axis %d out of range for Vec2", i))
}

func (v *Vec2) SetAxis(i int, value float64) *Vec2 {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		panic(fmt.Sprintf("vec: axis %d out of range for Vec2", i))
	}
	return v
}

func (v *Vec2) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X, v.Y)
}
