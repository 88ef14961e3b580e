package scenario

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
)

var ErrUnknownScenario = errors.New("scenario: unknown scenario")

// Builder turns a validated config into a ready-to-run scenario.
type Builder func(cfg *config.Config, l log.Log) (*Run, error)

type entry struct {
	description string
	build       Builder
}

type Registry struct {
	scenarios map[string]entry
	log       log.Log
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios: make(map[string]entry),
		log:       log.Nop(),
	}

	r.Register("seek", "agents seek a fixed target at full acceleration", buildSeek)
	r.Register("arrive", "agents arrive at a target and turn to face it", buildArrive)
	r.Register("wander", "agents wander around the start point", buildWander)
	r.Register("pursue", "a hunter pursues a prey that evades it", buildPursue)
	r.Register("follow_path", "an agent follows a line path", buildFollowPath)
	r.Register("flock", "separation, cohesion and alignment over a wandering group", buildFlock)
	r.Register("crowd", "agents on a ring cross to the opposite side avoiding each other", buildCrowd)
	r.Register("walls", "an agent seeks a target behind walls using ray avoidance", buildWalls)
	r.Register("jump", "a 3D agent runs up and jumps a gap under gravity", buildJump)

	return r
}

// Register adds or replaces a scenario.
func (r *Registry) Register(name, description string, b Builder) {
	r.scenarios[name] = entry{description: description, build: b}
}

func (r *Registry) SetLogger(l log.Log) { r.log = l }

// Build validates cfg and builds the scenario it names.
func (r *Registry) Build(cfg *config.Config) (*Run, error) {
	e, ok := r.scenarios[cfg.Scenario]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScenario, cfg.Scenario)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := r.log.With(log.String("scenario", cfg.Scenario))
	run, err := e.build(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", cfg.Scenario, err)
	}
	run.Name = cfg.Scenario
	run.Config = cfg

	l.Debug("scenario built",
		log.Int("agents", len(run.Runner.AgentNames())),
		log.Int("dim", run.Runner.Dim()))
	return run, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Describe(name string) string {
	return r.scenarios[name].description
}
