package steer

import "math"

// ReportFunc is called once per neighbor found. Returning false rejects the
// neighbor, which then does not count toward the result.
type ReportFunc[V Vector[V]] func(neighbor Steerable[V]) bool

// Proximity finds the agents near its owner.
type Proximity[V Vector[V]] interface {
	Owner() Steerable[V]
	SetOwner(owner Steerable[V])

	// FindNeighbors reports every neighbor to report and returns how many
	// were accepted.
	FindNeighbors(report ReportFunc[V]) int
}

// InfiniteProximity treats every other agent as a neighbor.
type InfiniteProximity[V Vector[V]] struct {
	owner  Steerable[V]
	Agents []Steerable[V]
}

func NewInfiniteProximity[V Vector[V]](owner Steerable[V], agents []Steerable[V]) *InfiniteProximity[V] {
	return &InfiniteProximity[V]{owner: owner, Agents: agents}
}

func (p *InfiniteProximity[V]) Owner() Steerable[V]         { return p.owner }
func (p *InfiniteProximity[V]) SetOwner(owner Steerable[V]) { p.owner = owner }

func (p *InfiniteProximity[V]) FindNeighbors(report ReportFunc[V]) int {
	n := 0
	for _, a := range p.Agents {
		if a != p.owner && report(a) {
			n++
		}
	}
	return n
}

// tagCache remembers which candidates were accepted during a frame so that
// every further query within that frame replays them without rescanning.
type tagCache struct {
	frame   uint64
	scanned bool
	tags    []bool
}

func (c *tagCache) invalidate() { c.scanned = false }

func findTagged[V Vector[V]](c *tagCache, clock Timepiece, owner Steerable[V], agents []Steerable[V], match func(Steerable[V]) bool, report ReportFunc[V]) int {
	n := 0
	frame := clock.FrameID()

	if c.scanned && c.frame == frame && len(c.tags) == len(agents) {
		for i, a := range agents {
			if c.tags[i] && a != owner && report(a) {
				n++
			}
		}
		return n
	}

	c.scanned = true
	c.frame = frame
	if cap(c.tags) < len(agents) {
		c.tags = make([]bool, len(agents))
	}
	c.tags = c.tags[:len(agents)]

	for i, a := range agents {
		c.tags[i] = false
		if a != owner && match(a) && report(a) {
			c.tags[i] = true
			n++
		}
		a.SetTagged(c.tags[i])
	}
	return n
}

// RadiusProximity reports agents whose bounding circle intersects a circle of
// Radius around the owner.
//
// Results are cached per frame of Timepiece: within one frame every call
// replays the neighbors accepted by the first scan. The host must advance
// the frame id exactly once per logical tick, or stale neighbors are replayed.
// Agents must not be modified while a scan is running.
type RadiusProximity[V Vector[V]] struct {
	owner     Steerable[V]
	Agents    []Steerable[V]
	Radius    float64
	Timepiece Timepiece

	cache tagCache
	match func(Steerable[V]) bool
}

func NewRadiusProximity[V Vector[V]](owner Steerable[V], agents []Steerable[V], radius float64, clock Timepiece) *RadiusProximity[V] {
	p := &RadiusProximity[V]{owner: owner, Agents: agents, Radius: radius, Timepiece: clock}
	p.match = p.inRange
	return p
}

func (p *RadiusProximity[V]) Owner() Steerable[V] { return p.owner }

func (p *RadiusProximity[V]) SetOwner(owner Steerable[V]) {
	p.owner = owner
	p.cache.invalidate()
}

// SetAgents replaces the candidates and drops the cached frame.
func (p *RadiusProximity[V]) SetAgents(agents []Steerable[V]) {
	p.Agents = agents
	p.cache.invalidate()
}

func (p *RadiusProximity[V]) FindNeighbors(report ReportFunc[V]) int {
	return findTagged(&p.cache, p.Timepiece, p.owner, p.Agents, p.match, report)
}

func (p *RadiusProximity[V]) inRange(a Steerable[V]) bool {
	r := p.Radius + a.BoundingRadius()
	return p.owner.Position().Dst2(a.Position()) < r*r
}

// FieldOfViewProximity reports agents inside a cone of Angle radians centered
// on the owner's orientation and reaching Radius. It caches per frame like
// RadiusProximity.
type FieldOfViewProximity[V Vector[V]] struct {
	owner     Steerable[V]
	Agents    []Steerable[V]
	Radius    float64
	Timepiece Timepiece

	angle         float64
	coneThreshold float64
	cache         tagCache
	facing        V
	toAgent       V
	match         func(Steerable[V]) bool
}

func NewFieldOfViewProximity[V Vector[V]](owner Steerable[V], agents []Steerable[V], radius, angle float64, clock Timepiece) *FieldOfViewProximity[V] {
	p := &FieldOfViewProximity[V]{
		owner:     owner,
		Agents:    agents,
		Radius:    radius,
		Timepiece: clock,
		facing:    owner.Position().Clone(),
		toAgent:   owner.Position().Clone(),
	}
	p.SetAngle(angle)
	p.match = p.inView
	return p
}

func (p *FieldOfViewProximity[V]) Owner() Steerable[V] { return p.owner }

func (p *FieldOfViewProximity[V]) SetOwner(owner Steerable[V]) {
	p.owner = owner
	p.cache.invalidate()
}

func (p *FieldOfViewProximity[V]) SetAgents(agents []Steerable[V]) {
	p.Agents = agents
	p.cache.invalidate()
}

func (p *FieldOfViewProximity[V]) Angle() float64 { return p.angle }

func (p *FieldOfViewProximity[V]) SetAngle(angle float64) {
	p.angle = angle
	p.coneThreshold = math.Cos(angle / 2)
}

func (p *FieldOfViewProximity[V]) FindNeighbors(report ReportFunc[V]) int {
	p.owner.AngleToVector(p.facing, p.owner.Orientation())
	return findTagged(&p.cache, p.Timepiece, p.owner, p.Agents, p.match, report)
}

func (p *FieldOfViewProximity[V]) inView(a Steerable[V]) bool {
	p.toAgent.Set(a.Position()).Sub(p.owner.Position())
	r := p.Radius + a.BoundingRadius()
	d2 := p.toAgent.Len2()
	if d2 >= r*r {
		return false
	}
	return p.facing.Dot(p.toAgent) > p.coneThreshold*math.Sqrt(d2)
}
