package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/storage"
)

// Script is a sequence of scenario runs.
type Script struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`

	dir string
}

// Step builds its config from, in order: the defaults, the preset or config
// file, and the explicit overrides.
type Step struct {
	Scenario   string  `yaml:"scenario"`
	Preset     string  `yaml:"preset"`
	Config     string  `yaml:"config"`
	Integrator string  `yaml:"integrator"`
	Duration   float64 `yaml:"duration"`
	Dt         float64 `yaml:"dt"`
	Seed       int64   `yaml:"seed"`
	Agents     int     `yaml:"agents"`
	// Save stores the run when the runner has a store.
	Save bool `yaml:"save"`
	// Sweep replaces the single run by a parameter sweep.
	Sweep *Sweep `yaml:"sweep"`
}

// LoadScript reads a script. Config paths in its steps are relative to the
// script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	script.dir = filepath.Dir(path)
	return &script, nil
}

// BuildConfig resolves the config of a step.
func (s *Script) BuildConfig(step Step) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case step.Config != "":
		path := step.Config
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case step.Preset != "":
		cfg = config.GetPreset(step.Scenario, step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("automation: unknown preset %s/%s", step.Scenario, step.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if step.Scenario != "" {
		cfg.Scenario = step.Scenario
	}
	if step.Integrator != "" {
		cfg.Integrator = step.Integrator
	}
	if step.Duration > 0 {
		cfg.Duration = step.Duration
	}
	if step.Dt > 0 {
		cfg.Dt = step.Dt
	}
	if step.Seed != 0 {
		cfg.Seed = step.Seed
	}
	if step.Agents > 0 {
		cfg.Agents.Count = step.Agents
	}
	return cfg, nil
}

type StepResult struct {
	Step     int
	Scenario string
	// RunID is set when the run was saved.
	RunID  string
	Result *sim.Result
	// Sweep is set instead of Result for sweep steps.
	Sweep []SweepResult
}

type Runner struct {
	Registry *scenario.Registry
	// Store is optional; without it Save is ignored.
	Store *storage.Store
	Log   log.Log
}

func NewRunner(registry *scenario.Registry, store *storage.Store, l log.Log) *Runner {
	if l == nil {
		l = log.Nop()
	}
	return &Runner{Registry: registry, Store: store, Log: l}
}

// Run executes every step in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, script *Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))

	for i, step := range script.Steps {
		cfg, err := script.BuildConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		r.Log.Info("running step",
			log.Int("step", i+1),
			log.Int("of", len(script.Steps)),
			log.String("scenario", cfg.Scenario))

		if step.Sweep != nil {
			sweep, err := r.RunSweep(ctx, cfg, step.Sweep)
			if err != nil {
				return results, fmt.Errorf("step %d sweep: %w", i+1, err)
			}
			results = append(results, StepResult{Step: i + 1, Scenario: cfg.Scenario, Sweep: sweep})
			continue
		}

		run, err := r.Registry.Build(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := run.Execute(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Scenario: cfg.Scenario, Result: result}
		if step.Save && r.Store != nil {
			if sr.RunID, err = r.Store.Save(cfg, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			r.Log.Info("run saved", log.String("id", sr.RunID), log.String("dir", r.Store.Dir(sr.RunID)))
		}
		results = append(results, sr)
	}

	return results, nil
}
