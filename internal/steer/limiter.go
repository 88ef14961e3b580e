package steer

import "math"

// DefaultZeroLinearSpeedThreshold is the squared speed below which an agent is
// considered stationary.
const DefaultZeroLinearSpeedThreshold = 0.001

// Limiter supplies the speed and acceleration caps a behavior must respect.
type Limiter interface {
	ZeroLinearSpeedThreshold() float64
	SetZeroLinearSpeedThreshold(value float64)

	MaxLinearSpeed() float64
	SetMaxLinearSpeed(speed float64)
	MaxLinearAcceleration() float64
	SetMaxLinearAcceleration(acceleration float64)

	MaxAngularSpeed() float64
	SetMaxAngularSpeed(speed float64)
	MaxAngularAcceleration() float64
	SetMaxAngularAcceleration(acceleration float64)
}

// NullLimiter reports no limit at all. Its setters are unsupported.
type NullLimiter struct{}

// NeutralLimiter disables truncation, e.g. for a BlendedSteering whose children
// already respect their own limits.
var NeutralLimiter Limiter = NullLimiter{}

func (NullLimiter) ZeroLinearSpeedThreshold() float64 { return DefaultZeroLinearSpeedThreshold }
func (NullLimiter) SetZeroLinearSpeedThreshold(float64) {
	panic(&UnsupportedError{Limiter: "NullLimiter", Method: "SetZeroLinearSpeedThreshold"})
}
func (NullLimiter) MaxLinearSpeed() float64 { return math.Inf(1) }
func (NullLimiter) SetMaxLinearSpeed(float64) {
	panic(&UnsupportedError{Limiter: "NullLimiter", Method: "SetMaxLinearSpeed"})
}
func (NullLimiter) MaxLinearAcceleration() float64 { return math.Inf(1) }
func (NullLimiter) SetMaxLinearAcceleration(float64) {
	panic(&UnsupportedError{Limiter: "NullLimiter", Method: "SetMaxLinearAcceleration"})
}
func (NullLimiter) MaxAngularSpeed() float64 { return math.Inf(1) }
func (NullLimiter) SetMaxAngularSpeed(float64) {
	panic(&UnsupportedError{Limiter: "NullLimiter", Method: "SetMaxAngularSpeed"})
}
func (NullLimiter) MaxAngularAcceleration() float64 { return math.Inf(1) }
func (NullLimiter) SetMaxAngularAcceleration(float64) {
	panic(&UnsupportedError{Limiter: "NullLimiter", Method: "SetMaxAngularAcceleration"})
}

// FullLimiter declares every cap.
type FullLimiter struct {
	zeroThreshold          float64
	maxLinearSpeed         float64
	maxLinearAcceleration  float64
	maxAngularSpeed        float64
	maxAngularAcceleration float64
}

func NewFullLimiter(maxLinearAcceleration, maxLinearSpeed, maxAngularAcceleration, maxAngularSpeed float64) *FullLimiter {
	return &FullLimiter{
		zeroThreshold:          DefaultZeroLinearSpeedThreshold,
		maxLinearSpeed:         maxLinearSpeed,
		maxLinearAcceleration:  maxLinearAcceleration,
		maxAngularSpeed:        maxAngularSpeed,
		maxAngularAcceleration: maxAngularAcceleration,
	}
}

func (l *FullLimiter) ZeroLinearSpeedThreshold() float64     { return l.zeroThreshold }
func (l *FullLimiter) SetZeroLinearSpeedThreshold(v float64) { l.zeroThreshold = v }
func (l *FullLimiter) MaxLinearSpeed() float64               { return l.maxLinearSpeed }
func (l *FullLimiter) SetMaxLinearSpeed(v float64)           { l.maxLinearSpeed = v }
func (l *FullLimiter) MaxLinearAcceleration() float64        { return l.maxLinearAcceleration }
func (l *FullLimiter) SetMaxLinearAcceleration(v float64)    { l.maxLinearAcceleration = v }
func (l *FullLimiter) MaxAngularSpeed() float64              { return l.maxAngularSpeed }
func (l *FullLimiter) SetMaxAngularSpeed(v float64)          { l.maxAngularSpeed = v }
func (l *FullLimiter) MaxAngularAcceleration() float64       { return l.maxAngularAcceleration }
func (l *FullLimiter) SetMaxAngularAcceleration(v float64)   { l.maxAngularAcceleration = v }

// partial panics on every cap; concrete partial limiters shadow the ones they
// declare. The zero speed threshold is always available.
type partial struct {
	name          string
	zeroThreshold float64
}

func newPartial(name string) partial {
	return partial{name: name, zeroThreshold: DefaultZeroLinearSpeedThreshold}
}

func (p *partial) fail(method string) {
	panic(&UnsupportedError{Limiter: p.name, Method: method})
}

func (p *partial) ZeroLinearSpeedThreshold() float64     { return p.zeroThreshold }
func (p *partial) SetZeroLinearSpeedThreshold(v float64) { p.zeroThreshold = v }

func (p *partial) MaxLinearSpeed() float64 {
	p.fail("MaxLinearSpeed")
	return 0
}

func (p *partial) SetMaxLinearSpeed(float64) { p.fail("SetMaxLinearSpeed") }

func (p *partial) MaxLinearAcceleration() float64 {
	p.fail("MaxLinearAcceleration")
	return 0
}

func (p *partial) SetMaxLinearAcceleration(float64) { p.fail("SetMaxLinearAcceleration") }

func (p *partial) MaxAngularSpeed() float64 {
	p.fail("MaxAngularSpeed")
	return 0
}

func (p *partial) SetMaxAngularSpeed(float64) { p.fail("SetMaxAngularSpeed") }

func (p *partial) MaxAngularAcceleration() float64 {
	p.fail("MaxAngularAcceleration")
	return 0
}

func (p *partial) SetMaxAngularAcceleration(float64) { p.fail("SetMaxAngularAcceleration") }

// LinearLimiter caps linear speed and acceleration only.
type LinearLimiter struct {
	partial
	maxLinearSpeed        float64
	maxLinearAcceleration float64
}

func NewLinearLimiter(maxLinearAcceleration, maxLinearSpeed float64) *LinearLimiter {
	return &LinearLimiter{
		partial:               newPartial("LinearLimiter"),
		maxLinearSpeed:        maxLinearSpeed,
		maxLinearAcceleration: maxLinearAcceleration,
	}
}

func (l *LinearLimiter) MaxLinearSpeed() float64            { return l.maxLinearSpeed }
func (l *LinearLimiter) SetMaxLinearSpeed(v float64)        { l.maxLinearSpeed = v }
func (l *LinearLimiter) MaxLinearAcceleration() float64     { return l.maxLinearAcceleration }
func (l *LinearLimiter) SetMaxLinearAcceleration(v float64) { l.maxLinearAcceleration = v }

// LinearAccelerationLimiter caps linear acceleration only.
type LinearAccelerationLimiter struct {
	partial
	maxLinearAcceleration float64
}

func NewLinearAccelerationLimiter(maxLinearAcceleration float64) *LinearAccelerationLimiter {
	return &LinearAccelerationLimiter{
		partial:               newPartial("LinearAccelerationLimiter"),
		maxLinearAcceleration: maxLinearAcceleration,
	}
}

func (l *LinearAccelerationLimiter) MaxLinearAcceleration() float64     { return l.maxLinearAcceleration }
func (l *LinearAccelerationLimiter) SetMaxLinearAcceleration(v float64) { l.maxLinearAcceleration = v }

// LinearSpeedLimiter caps linear speed only.
type LinearSpeedLimiter struct {
	partial
	maxLinearSpeed float64
}

func NewLinearSpeedLimiter(maxLinearSpeed float64) *LinearSpeedLimiter {
	return &LinearSpeedLimiter{
		partial:        newPartial("LinearSpeedLimiter"),
		maxLinearSpeed: maxLinearSpeed,
	}
}

func (l *LinearSpeedLimiter) MaxLinearSpeed() float64     { return l.maxLinearSpeed }
func (l *LinearSpeedLimiter) SetMaxLinearSpeed(v float64) { l.maxLinearSpeed = v }

// AngularLimiter caps angular speed and acceleration only.
type AngularLimiter struct {
	partial
	maxAngularSpeed        float64
	maxAngularAcceleration float64
}

func NewAngularLimiter(maxAngularAcceleration, maxAngularSpeed float64) *AngularLimiter {
	return &AngularLimiter{
		partial:                newPartial("AngularLimiter"),
		maxAngularSpeed:        maxAngularSpeed,
		maxAngularAcceleration: maxAngularAcceleration,
	}
}

func (l *AngularLimiter) MaxAngularSpeed() float64            { return l.maxAngularSpeed }
func (l *AngularLimiter) SetMaxAngularSpeed(v float64)        { l.maxAngularSpeed = v }
func (l *AngularLimiter) MaxAngularAcceleration() float64     { return l.maxAngularAcceleration }
func (l *AngularLimiter) SetMaxAngularAcceleration(v float64) { l.maxAngularAcceleration = v }

type AngularAccelerationLimiter struct {
	partial
	maxAngularAcceleration float64
}

func NewAngularAccelerationLimiter(maxAngularAcceleration float64) *AngularAccelerationLimiter {
	return &AngularAccelerationLimiter{
		partial:                newPartial("AngularAccelerationLimiter"),
		maxAngularAcceleration: maxAngularAcceleration,
	}
}

func (l *AngularAccelerationLimiter) MaxAngularAcceleration() float64     { return l.maxAngularAcceleration }
func (l *AngularAccelerationLimiter) SetMaxAngularAcceleration(v float64) { l.maxAngularAcceleration = v }

type AngularSpeedLimiter struct {
	partial
	maxAngularSpeed float64
}

func NewAngularSpeedLimiter(maxAngularSpeed float64) *AngularSpeedLimiter {
	return &AngularSpeedLimiter{
		partial:         newPartial("AngularSpeedLimiter"),
		maxAngularSpeed: maxAngularSpeed,
	}
}

func (l *AngularSpeedLimiter) MaxAngularSpeed() float64     { return l.maxAngularSpeed }
func (l *AngularSpeedLimiter) SetMaxAngularSpeed(v float64) { l.maxAngularSpeed = v }

var (
	_ Limiter = NullLimiter{}
	_ Limiter = (*FullLimiter)(nil)
	_ Limiter = (*LinearLimiter)(nil)
	_ Limiter = (*LinearAccelerationLimiter)(nil)
	_ Limiter = (*LinearSpeedLimiter)(nil)
	_ Limiter = (*AngularLimiter)(nil)
	_ Limiter = (*AngularAccelerationLimiter)(nil)
	_ Limiter = (*AngularSpeedLimiter)(nil)
)
