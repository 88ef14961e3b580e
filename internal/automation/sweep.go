package automation

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/sim"
)

// Sweep runs a scenario once per value of one numeric parameter, spaced
// evenly from Min to Max.
type Sweep struct {
	Param string  `yaml:"param"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Steps int     `yaml:"steps"`
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
}

var sweepParams = map[string]func(c *config.Config) *float64{
	"max_linear_speed":         func(c *config.Config) *float64 { return &c.Limits.MaxLinearSpeed },
	"max_linear_acceleration":  func(c *config.Config) *float64 { return &c.Limits.MaxLinearAcceleration },
	"max_angular_speed":        func(c *config.Config) *float64 { return &c.Limits.MaxAngularSpeed },
	"max_angular_acceleration": func(c *config.Config) *float64 { return &c.Limits.MaxAngularAcceleration },
	"deceleration_radius":      func(c *config.Config) *float64 { return &c.Behavior.DecelerationRadius },
	"time_to_target":           func(c *config.Config) *float64 { return &c.Behavior.TimeToTarget },
	"wander_rate":              func(c *config.Config) *float64 { return &c.Behavior.WanderRate },
	"neighbor_radius":          func(c *config.Config) *float64 { return &c.Behavior.NeighborRadius },
	"separation_weight":        func(c *config.Config) *float64 { return &c.Behavior.SeparationWeight },
	"cohesion_weight":          func(c *config.Config) *float64 { return &c.Behavior.CohesionWeight },
	"alignment_weight":         func(c *config.Config) *float64 { return &c.Behavior.AlignmentWeight },
	"ray_length":               func(c *config.Config) *float64 { return &c.Behavior.RayLength },
	"path_offset":              func(c *config.Config) *float64 { return &c.Behavior.PathOffset },
	"max_prediction_time":      func(c *config.Config) *float64 { return &c.Behavior.MaxPredictionTime },
	"max_vertical_velocity":    func(c *config.Config) *float64 { return &c.Jump.MaxVerticalVelocity },
}

// SweepParams lists the parameters a sweep can vary.
func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns the parameter values of the sweep.
func (s *Sweep) Values() []float64 {
	if s.Steps <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.Steps-1)
	values := make([]float64, s.Steps)
	for i := range values {
		values[i] = s.Min + float64(i)*step
	}
	return values
}

// RunSweep runs base once per sweep value. base is not modified.
func (r *Runner) RunSweep(ctx context.Context, base *config.Config, sweep *Sweep) ([]SweepResult, error) {
	field, ok := sweepParams[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("automation: unknown sweep parameter %q", sweep.Param)
	}

	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))
	for i, v := range values {
		cfg := base.Clone()
		*field(cfg) = v

		run, err := r.Registry.Build(cfg)
		if err != nil {
			return results, err
		}
		result, err := run.Execute(ctx)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{Value: v, Metrics: result.Metrics})
		r.Log.Debug("sweep point",
			log.Int("point", i+1),
			log.Int("of", len(values)),
			log.String("param", sweep.Param),
			log.Float64("value", v))
	}
	return results, nil
}

// RunEnsemble runs cfg once per seed, starting at cfg.Seed, on up to
// workers goroutines and summarizes the metrics.
func (r *Runner) RunEnsemble(ctx context.Context, cfg *config.Config, runs, workers int) (map[string]sim.Summary, error) {
	probe, err := r.Registry.Build(cfg.Clone())
	if err != nil {
		return nil, err
	}

	build := func(seed int64) (sim.Runner, error) {
		c := cfg.Clone()
		c.Seed = seed
		run, err := r.Registry.Build(c)
		if err != nil {
			return nil, err
		}
		return run.Runner, nil
	}

	ensemble := sim.NewEnsemble(build, runs, cfg.Seed)
	ensemble.Workers = workers
	results, err := ensemble.Run(ctx, probe.SimConfig())
	if err != nil {
		return nil, err
	}
	return sim.Summarize(results), nil
}
