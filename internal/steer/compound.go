package steer

import "math"

// WeightedBehavior is one entry of a BlendedSteering.
type WeightedBehavior[V Vector[V]] struct {
	Behavior Behavior[V]
	Weight   float64
}

// BlendedSteering sums the weighted output of its children and clamps the
// result to the actual limiter. Weights need not sum to one.
type BlendedSteering[V Vector[V]] struct {
	Base[V]
	List []WeightedBehavior[V]

	scratch *Acceleration[V]
}

func NewBlendedSteering[V Vector[V]](owner Steerable[V]) *BlendedSteering[V] {
	return &BlendedSteering[V]{
		Base:    NewBase[V](owner),
		scratch: NewAcceleration(owner.Position().Clone()),
	}
}

func (b *BlendedSteering[V]) Add(behavior Behavior[V], weight float64) {
	b.List = append(b.List, WeightedBehavior[V]{Behavior: behavior, Weight: weight})
}

func (b *BlendedSteering[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return b.calculate(out, b)
}

func (b *BlendedSteering[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	out.SetZero()
	for _, item := range b.List {
		item.Behavior.CalculateSteering(b.scratch)
		out.MulAdd(b.scratch, item.Weight)
	}

	limiter := b.ActualLimiter()
	out.Linear.Limit(limiter.MaxLinearAcceleration())
	if maxAcc := limiter.MaxAngularAcceleration(); math.Abs(out.Angular) > maxAcc {
		out.Angular = math.Copysign(maxAcc, out.Angular)
	}
	return out
}

// DefaultPriorityEpsilon is the magnitude a child must exceed to be selected.
const DefaultPriorityEpsilon = 0.001

// PrioritySteering returns the output of the first child whose magnitude
// exceeds Epsilon. When none does, the last child's output is returned as is.
type PrioritySteering[V Vector[V]] struct {
	Base[V]
	Epsilon   float64
	Behaviors []Behavior[V]

	selected int
}

func NewPrioritySteering[V Vector[V]](owner Steerable[V], epsilon float64) *PrioritySteering[V] {
	return &PrioritySteering[V]{Base: NewBase[V](owner), Epsilon: epsilon, selected: -1}
}

func (p *PrioritySteering[V]) Add(behavior Behavior[V]) {
	p.Behaviors = append(p.Behaviors, behavior)
}

// SelectedIndex is the child chosen by the last evaluation, or -1 if there
// was none.
func (p *PrioritySteering[V]) SelectedIndex() int { return p.selected }

func (p *PrioritySteering[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return p.calculate(out, p)
}

func (p *PrioritySteering[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	eps2 := p.Epsilon * p.Epsilon

	p.selected = -1
	for i, b := range p.Behaviors {
		p.selected = i
		b.CalculateSteering(out)
		if out.Len2() > eps2 {
			return out
		}
	}

	if len(p.Behaviors) == 0 {
		return out.SetZero()
	}
	return out
}
