package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/log"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/storage"
)

const script = `
name: smoke
description: a short tour
steps:
  - scenario: seek
    duration: 1
    save: true
  - scenario: flock
    preset: tight
    duration: 0.5
    agents: 6
  - config: crowd.yaml
    integrator: verlet
`

func writeScript(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	crowd := config.DefaultConfig()
	crowd.Scenario = "crowd"
	crowd.Duration = 0.5
	crowd.Agents.Count = 4
	require.NoError(t, config.Save(filepath.Join(dir, "crowd.yaml"), crowd))

	path := filepath.Join(dir, "smoke.yaml")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))
	return path
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript(writeScript(t))
	require.NoError(t, err)
	require.Equal(t, "smoke", s.Name)
	require.Len(t, s.Steps, 3)
	require.True(t, s.Steps[0].Save)
	require.Equal(t, "tight", s.Steps[1].Preset)
}

func TestBuildConfig(t *testing.T) {
	s, err := LoadScript(writeScript(t))
	require.NoError(t, err)

	cfg, err := s.BuildConfig(s.Steps[1])
	require.NoError(t, err)
	require.Equal(t, "flock", cfg.Scenario)
	require.Equal(t, 6, cfg.Agents.Count, "override beats preset")
	require.Equal(t, 2.0, cfg.Behavior.CohesionWeight, "preset applied")
	require.Equal(t, 0.5, cfg.Duration)

	cfg, err = s.BuildConfig(s.Steps[2])
	require.NoError(t, err)
	require.Equal(t, "crowd", cfg.Scenario, "from the config file")
	require.Equal(t, "verlet", cfg.Integrator)

	_, err = s.BuildConfig(Step{Scenario: "seek", Preset: "nope"})
	require.Error(t, err)
}

func TestRunner_Run(t *testing.T) {
	s, err := LoadScript(writeScript(t))
	require.NoError(t, err)

	store := storage.New(t.TempDir())
	require.NoError(t, store.Init())

	r := NewRunner(scenario.NewRegistry(), store, log.Nop())
	results, err := r.Run(context.Background(), s)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.NotEmpty(t, results[0].RunID)
	require.Empty(t, results[1].RunID)
	require.Equal(t, "crowd", results[2].Scenario)
	require.Len(t, results[1].Result.Agents, 6)

	runs, err := store.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, results[0].RunID, runs[0].ID)
}

func TestRunner_StopsAtFailure(t *testing.T) {
	s := &Script{Steps: []Step{
		{Scenario: "seek", Duration: 0.2},
		{Scenario: "teleport"},
		{Scenario: "seek", Duration: 0.2},
	}}

	results, err := NewRunner(scenario.NewRegistry(), nil, nil).Run(context.Background(), s)
	require.ErrorIs(t, err, scenario.ErrUnknownScenario)
	require.ErrorContains(t, err, "step 2")
	require.Len(t, results, 1)
}

func TestSweep(t *testing.T) {
	require.Equal(t, []float64{1, 2, 3}, (&Sweep{Min: 1, Max: 3, Steps: 3}).Values())
	require.Equal(t, []float64{4}, (&Sweep{Min: 4, Max: 9, Steps: 1}).Values())
	require.Contains(t, SweepParams(), "max_linear_speed")

	base := config.DefaultConfig()
	base.Duration = 0.5

	r := NewRunner(scenario.NewRegistry(), nil, nil)
	results, err := r.RunSweep(context.Background(), base, &Sweep{Param: "max_linear_speed", Min: 1, Max: 4, Steps: 4})
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Equal(t, 4.0, results[3].Value)
	require.Equal(t, config.DefaultMaxLinearSpeed, base.Limits.MaxLinearSpeed, "base untouched")

	_, err = r.RunSweep(context.Background(), base, &Sweep{Param: "gravity_constant"})
	require.Error(t, err)
}

func TestRunEnsemble(t *testing.T) {
	cfg := config.GetPreset("wander", "erratic")
	cfg.Duration = 0.5

	r := NewRunner(scenario.NewRegistry(), nil, nil)
	summary, err := r.RunEnsemble(context.Background(), cfg, 4, 2)
	require.NoError(t, err)
	require.Equal(t, 4, summary["speed_compliance"].N)
	require.Equal(t, 1.0, summary["speed_compliance"].Mean)
	require.LessOrEqual(t, summary["control_effort"].Min, summary["control_effort"].Max)
}

func TestParseSweep(t *testing.T) {
	s, err := ParseSweep("max_linear_speed=1:4:4")
	require.NoError(t, err)
	require.Equal(t, Sweep{Param: "max_linear_speed", Min: 1, Max: 4, Steps: 4}, s)

	for _, bad := range []string{"max_linear_speed", "x=1:2", "x=a:2:3", "x=1:2:three"} {
		_, err := ParseSweep(bad)
		require.Error(t, err, bad)
	}
}

func TestRunSearch(t *testing.T) {
	base := config.DefaultConfig()
	base.Duration = 0.5
	sweep := Sweep{Param: "max_linear_speed", Min: 1, Max: 4, Steps: 4}

	r := NewRunner(scenario.NewRegistry(), nil, nil)
	points, err := r.RunSweep(context.Background(), base, &sweep)
	require.NoError(t, err)
	lowest := points[0].Metrics["control_effort"]
	for _, p := range points {
		lowest = min(lowest, p.Metrics["control_effort"])
	}

	best, err := r.RunSearch(context.Background(), base, &GridSearch{
		Sweeps: []Sweep{sweep, {Param: "time_to_target", Min: 0.1, Max: 0.1, Steps: 1}},
		Metric: "control_effort",
	})
	require.NoError(t, err)
	require.Equal(t, 4, best.Tried)
	require.Equal(t, lowest, best.Value)
	require.Contains(t, best.Params, "max_linear_speed")
	require.Equal(t, 0.1, best.Params["time_to_target"])

	_, err = r.RunSearch(context.Background(), base, &GridSearch{Sweeps: []Sweep{sweep}, Metric: "happiness"})
	require.ErrorContains(t, err, "happiness")

	_, err = r.RunSearch(context.Background(), base, &GridSearch{Sweeps: []Sweep{{Param: "gravity_constant"}}})
	require.Error(t, err)
}
