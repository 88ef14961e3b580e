package sim

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs Runs independent simulations, each built by Build with its
// own seed, at most Workers at a time.
type Ensemble struct {
	Build     func(seed int64) (Runner, error)
	Runs      int
	SeedStart int64
	Workers   int
}

func NewEnsemble(build func(seed int64) (Runner, error), runs int, seedStart int64) *Ensemble {
	return &Ensemble{Build: build, Runs: runs, SeedStart: seedStart}
}

// Run returns the results in seed order. The first failure cancels the runs
// that have not finished.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.Runs)

	g, ctx := errgroup.WithContext(ctx)
	if e.Workers > 0 {
		g.SetLimit(e.Workers)
	}

	for i := 0; i < e.Runs; i++ {
		idx := i
		g.Go(func() error {
			cfgCopy := cfg
			cfgCopy.Seed = e.SeedStart + int64(idx)

			runner, err := e.Build(cfgCopy.Seed)
			if err != nil {
				return err
			}
			results[idx], err = runner.Run(ctx, cfgCopy)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type Summary struct {
	Mean, Std, Min, Max float64
	N                   int
}

// Summarize aggregates every metric over the results.
func Summarize(results []*Result) map[string]Summary {
	values := make(map[string][]float64)
	for _, r := range results {
		for name, v := range r.Metrics {
			values[name] = append(values[name], v)
		}
	}

	out := make(map[string]Summary, len(values))
	for name, vs := range values {
		sort.Float64s(vs)
		sum := 0.0
		for _, v := range vs {
			sum += v
		}
		mean := sum / float64(len(vs))
		variance := 0.0
		for _, v := range vs {
			variance += (v - mean) * (v - mean)
		}
		out[name] = Summary{
			Mean: mean,
			Std:  math.Sqrt(variance / float64(len(vs))),
			Min:  vs[0],
			Max:  vs[len(vs)-1],
			N:    len(vs),
		}
	}
	return out
}
