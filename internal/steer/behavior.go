package steer

// Behavior computes a steering acceleration for its owner.
type Behavior[V Vector[V]] interface {
	// CalculateSteering writes this tick's acceleration into out and returns
	// it. A disabled behavior zeroes out.
	CalculateSteering(out *Acceleration[V]) *Acceleration[V]

	IsEnabled() bool
	SetEnabled(enabled bool)
}

type steerer[V Vector[V]] interface {
	steer(out *Acceleration[V]) *Acceleration[V]
}

// Base carries the state shared by every behavior. Limiter overrides the
// owner's own caps when set.
type Base[V Vector[V]] struct {
	Owner   Steerable[V]
	Limiter Limiter
	Enabled bool
}

func NewBase[V Vector[V]](owner Steerable[V]) Base[V] {
	return Base[V]{Owner: owner, Enabled: true}
}

func (b *Base[V]) IsEnabled() bool         { return b.Enabled }
func (b *Base[V]) SetEnabled(enabled bool) { b.Enabled = enabled }

// ActualLimiter is the override limiter if present, otherwise the owner.
func (b *Base[V]) ActualLimiter() Limiter {
	if b.Limiter != nil {
		return b.Limiter
	}
	return b.Owner
}

func (b *Base[V]) calculate(out *Acceleration[V], s steerer[V]) *Acceleration[V] {
	if !b.Enabled {
		return out.SetZero()
	}
	return s.steer(out)
}

// Timepiece is the host-owned clock. DeltaTime is the length of the current
// tick and FrameID increases by one every tick.
type Timepiece interface {
	DeltaTime() float64
	FrameID() uint64
}

// ManualTimepiece is a Timepiece advanced explicitly by the caller.
type ManualTimepiece struct {
	Delta float64
	Frame uint64
}

func (m *ManualTimepiece) DeltaTime() float64 { return m.Delta }
func (m *ManualTimepiece) FrameID() uint64    { return m.Frame }

// Advance starts a new frame lasting dt.
func (m *ManualTimepiece) Advance(dt float64) {
	m.Delta = dt
	m.Frame++
}
