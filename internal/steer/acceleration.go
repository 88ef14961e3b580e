package steer

// Acceleration is the output of a steering behavior for one tick.
// Callers allocate it once and pass it to every evaluation; an all-zero value
// means the behavior requests nothing.
type Acceleration[V Vector[V]] struct {
	Linear  V
	Angular float64
}

// NewAcceleration wraps linear, which becomes owned by the returned value.
func NewAcceleration[V Vector[V]](linear V) *Acceleration[V] {
	return &Acceleration[V]{Linear: linear.SetZero()}
}

func (a *Acceleration[V]) IsZero() bool {
	return a.Angular == 0 && a.Linear.IsZero()
}

func (a *Acceleration[V]) SetZero() *Acceleration[V] {
	a.Linear.SetZero()
	a.Angular = 0
	return a
}

func (a *Acceleration[V]) Set(o *Acceleration[V]) *Acceleration[V] {
	a.Linear.Set(o.Linear)
	a.Angular = o.Angular
	return a
}

func (a *Acceleration[V]) Add(o *Acceleration[V]) *Acceleration[V] {
	a.Linear.Add(o.Linear)
	a.Angular += o.Angular
	return a
}

// MulAdd adds o scaled by s.
func (a *Acceleration[V]) MulAdd(o *Acceleration[V], s float64) *Acceleration[V] {
	a.Linear.MulAdd(o.Linear, s)
	a.Angular += o.Angular * s
	return a
}

func (a *Acceleration[V]) Scale(s float64) *Acceleration[V] {
	a.Linear.Scale(s)
	a.Angular *= s
	return a
}

// Len2 is the squared magnitude over both components.
func (a *Acceleration[V]) Len2() float64 {
	return a.Linear.Len2() + a.Angular*a.Angular
}
