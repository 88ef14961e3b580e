package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// Simulator owns the tick. Every Step advances the world clock once, lets
// every agent steer from the same pre-integration state and then integrates
// them all.
type Simulator[V steer.Vector[V]] struct {
	world      *World[V]
	integrator Integrator[V]
	metrics    []Metric[V]
	observers  []Observer[V]
	log        log.Log
	steps      int
}

func New[V steer.Vector[V]](world *World[V], integrator Integrator[V]) *Simulator[V] {
	return &Simulator[V]{
		world:      world,
		integrator: integrator,
		metrics:    make([]Metric[V], 0),
		observers:  make([]Observer[V], 0),
		log:        log.Nop(),
	}
}

func (s *Simulator[V]) AddMetric(m Metric[V])     { s.metrics = append(s.metrics, m) }
func (s *Simulator[V]) AddObserver(o Observer[V]) { s.observers = append(s.observers, o) }
func (s *Simulator[V]) SetLogger(l log.Log)       { s.log = l }
func (s *Simulator[V]) World() *World[V]          { return s.world }
func (s *Simulator[V]) Snapshot() Frame           { return s.world.Snapshot() }
func (s *Simulator[V]) AgentNames() []string      { return s.world.Names() }
func (s *Simulator[V]) Dim() int                  { return s.world.Dim() }

// Metrics returns the current value of every metric.
func (s *Simulator[V]) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Step runs one tick of length dt. A partial limiter asked for a cap it does
// not declare aborts the tick with a *SimulationError wrapping the
// *steer.UnsupportedError; the world is left unintegrated.
func (s *Simulator[V]) Step(dt float64) error {
	w := s.world
	w.Advance(dt)

	for _, a := range w.Agents {
		if err := s.steer(a); err != nil {
			return &SimulationError{Step: s.steps, Time: w.time, Agent: a.Name, Wrapped: err}
		}
	}

	for _, a := range w.Agents {
		s.integrator.Step(a, a.steering, dt)
		if !a.IndependentFacing && !a.Airborne {
			a.faceVelocity()
		}
	}

	w.time += dt
	s.steps++

	for _, m := range s.metrics {
		m.Observe(w, w.time)
	}
	for _, obs := range s.observers {
		obs.OnStep(w, w.time)
	}
	return nil
}

func (s *Simulator[V]) steer(a *Agent[V]) error {
	out := a.steering
	switch {
	case a.Airborne:
		out.Linear.Set(s.world.Gravity)
		out.Angular = 0
	case a.Behavior == nil:
		out.SetZero()
	default:
		return steer.Evaluate(a.Behavior, out)
	}
	return nil
}

// Run advances the world from its current state for cfg.Duration and records
// a frame every cfg.RecordEvery ticks plus the initial and final ones.
func (s *Simulator[V]) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	record := cfg.RecordEvery
	if record < 1 {
		record = 1
	}

	result := &Result{
		Dim:     s.world.Dim(),
		Agents:  s.world.Names(),
		Frames:  make([]Frame, 0, steps/record+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Frames = append(result.Frames, s.world.Snapshot())

	start := time.Now()
	s.log.Debug("run started",
		log.Int("agents", len(s.world.Agents)),
		log.Int("steps", steps),
		log.Float64("dt", cfg.Dt))

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.Step(cfg.Dt); err != nil {
			s.log.Error("tick failed", log.Error(err))
			return result, err
		}

		if cfg.ValidateState {
			if err := s.validateState(); err != nil {
				return result, err
			}
		}

		result.StepsTaken++
		if (i+1)%record == 0 || i == steps-1 {
			result.Frames = append(result.Frames, s.world.Snapshot())
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug("run finished",
		log.Int("steps", result.StepsTaken),
		log.Uint64("frame", s.world.FrameID()),
		log.Duration("elapsed", time.Since(start)))
	return result, nil
}

// RunWithCallback steps until the duration elapses, the context is done or
// callback returns false. callback sees the world after every tick.
func (s *Simulator[V]) RunWithCallback(ctx context.Context, cfg Config, callback func(w *World[V]) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for i, steps := 0, cfg.Steps(); i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.Step(cfg.Dt); err != nil {
			return err
		}
		if cfg.ValidateState {
			if err := s.validateState(); err != nil {
				return err
			}
		}
		if !callback(s.world) {
			return nil
		}
	}
	return nil
}

func (s *Simulator[V]) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, cfg.Duration)
	}
	return nil
}

func (s *Simulator[V]) validateState() error {
	for _, a := range s.world.Agents {
		if !a.valid() {
			return &SimulationError{Step: s.steps - 1, Time: s.world.time, Agent: a.Name, Wrapped: ErrInvalidState}
		}
	}
	return nil
}

var (
	_ Runner = (*Simulator[*vec.Vec2])(nil)
	_ Runner = (*Simulator[*vec.Vec3])(nil)
)
