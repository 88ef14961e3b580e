package automation

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
)

// GridSearch tries every combination of the values of its sweeps and keeps
// the one that minimizes Metric.
type GridSearch struct {
	Sweeps []Sweep
	Metric string
}

type SearchResult struct {
	Params map[string]float64
	Value  float64
	// Tried counts the combinations that ran to completion.
	Tried int
}

// ParseSweep reads a sweep written as param=min:max:steps.
func ParseSweep(s string) (Sweep, error) {
	name, spec, ok := strings.Cut(s, "=")
	if !ok {
		return Sweep{}, fmt.Errorf("automation: sweep %q: want param=min:max:steps", s)
	}
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return Sweep{}, fmt.Errorf("automation: sweep %q: want param=min:max:steps", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Sweep{}, fmt.Errorf("automation: sweep %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Sweep{}, fmt.Errorf("automation: sweep %q: %w", s, err)
	}
	steps, err := strconv.Atoi(parts[2])
	if err != nil {
		return Sweep{}, fmt.Errorf("automation: sweep %q: %w", s, err)
	}
	return Sweep{Param: name, Min: lo, Max: hi, Steps: steps}, nil
}

// RunSearch runs base once per combination. Combinations whose scenario
// fails to build or run are skipped; an unknown parameter, a missing
// metric or a cancelled context ends the search.
func (r *Runner) RunSearch(ctx context.Context, base *config.Config, g *GridSearch) (SearchResult, error) {
	for _, s := range g.Sweeps {
		if _, ok := sweepParams[s.Param]; !ok {
			return SearchResult{}, fmt.Errorf("automation: unknown sweep parameter %q", s.Param)
		}
	}

	best := SearchResult{Value: math.Inf(1)}
	if err := r.search(ctx, base, g, 0, map[string]float64{}, &best); err != nil {
		return best, err
	}
	if best.Params == nil {
		return best, fmt.Errorf("automation: no combination of %d sweeps completed", len(g.Sweeps))
	}
	return best, nil
}

func (r *Runner) search(
	ctx context.Context,
	base *config.Config,
	g *GridSearch,
	depth int,
	current map[string]float64,
	best *SearchResult,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.Sweeps) {
		cfg := base.Clone()
		for name, v := range current {
			*sweepParams[name](cfg) = v
		}

		run, err := r.Registry.Build(cfg)
		if err != nil {
			r.Log.Debug("search point skipped", log.Any("params", current), log.Error(err))
			return nil
		}
		result, err := run.Execute(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.Log.Debug("search point failed", log.Any("params", current), log.Error(err))
			return nil
		}

		val, ok := result.Metrics[g.Metric]
		if !ok {
			return fmt.Errorf("automation: scenario %s has no metric %q", cfg.Scenario, g.Metric)
		}
		best.Tried++
		if val < best.Value {
			best.Value = val
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	sweep := g.Sweeps[depth]
	for _, val := range sweep.Values() {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[sweep.Param] = val

		if err := r.search(ctx, base, g, depth+1, next, best); err != nil {
			return err
		}
	}
	return nil
}
