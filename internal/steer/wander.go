package steer

import "math/rand"

// Wander drifts the owner around by steering at a target that random-walks
// along a circle held in front of it.
//
// With FaceEnabled the owner turns toward the target and accelerates along its
// current facing; otherwise it seeks the target directly with no angular
// output. The random walk advances by Timepiece.DeltaTime every evaluation.
type Wander[V Vector[V]] struct {
	Base[V]
	AlignParams

	WanderOffset float64
	WanderRadius float64
	// WanderRate is the maximum change of WanderOrientation per second.
	WanderRate float64
	// WanderOrientation is the current target angle relative to the owner.
	WanderOrientation float64
	FaceEnabled       bool

	Timepiece Timepiece
	Rand      *rand.Rand

	center V
	target V
}

// NewWander builds a wander behavior. A nil rng is replaced by one seeded with 1.
func NewWander[V Vector[V]](owner Steerable[V], timepiece Timepiece, rng *rand.Rand) *Wander[V] {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Wander[V]{
		Base:        NewBase[V](owner),
		AlignParams: defaultAlign(),
		FaceEnabled: true,
		Timepiece:   timepiece,
		Rand:        rng,
		center:      owner.Position().Clone().SetZero(),
		target:      owner.Position().Clone().SetZero(),
	}
}

func (w *Wander[V]) CalculateSteering(out *Acceleration[V]) *Acceleration[V] {
	return w.calculate(out, w)
}

// WanderCenter returns the circle center computed by the last evaluation.
// The vector is reused; clone it to keep it.
func (w *Wander[V]) WanderCenter() V { return w.center }

// WanderTarget returns the target computed by the last evaluation.
// The vector is reused; clone it to keep it.
func (w *Wander[V]) WanderTarget() V { return w.target }

func (w *Wander[V]) steer(out *Acceleration[V]) *Acceleration[V] {
	owner := w.Owner
	w.WanderOrientation += randomTriangular(w.Rand, w.WanderRate*w.Timepiece.DeltaTime())

	targetOrientation := w.WanderOrientation + owner.Orientation()

	// out.Linear is scratch for both direction vectors; each is consumed
	// before the next AngleToVector overwrites it.
	w.center.Set(owner.Position()).MulAdd(owner.AngleToVector(out.Linear, owner.Orientation()), w.WanderOffset)
	w.target.Set(w.center).MulAdd(owner.AngleToVector(out.Linear, targetOrientation), w.WanderRadius)

	limiter := w.ActualLimiter()
	maxAcc := limiter.MaxLinearAcceleration()

	if w.FaceEnabled {
		face(owner, limiter, w.AlignParams, w.target, out)
		owner.AngleToVector(out.Linear, owner.Orientation()).Scale(maxAcc)
		return out
	}

	out.Linear.Set(w.target).Sub(owner.Position()).Nor().Scale(maxAcc)
	out.Angular = 0
	return out
}

// randomTriangular returns a value in (-max, max) peaking at zero.
func randomTriangular(rng *rand.Rand, max float64) float64 {
	return (rng.Float64() - rng.Float64()) * max
}
