package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Dim:    2,
		Agents: []string{"a", "b"},
		Frames: []sim.Frame{
			{Time: 0, Agents: []sim.AgentState{
				{Position: [3]float64{0, 0}, Orientation: 0.5},
				{Position: [3]float64{3, 4}, Tagged: true},
			}},
			{Time: 0.1, Agents: []sim.AgentState{
				{Position: [3]float64{0.1, 0}, Velocity: [3]float64{1, 0}, Linear: 10, Angular: -2},
				{Position: [3]float64{3, 3.9}, Velocity: [3]float64{0, -1}, AngularVelocity: 0.25, Airborne: true},
			}},
		},
		Metrics:    map[string]float64{"min_separation": 4},
		StepsTaken: 1,
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scenario = "crowd"
	cfg.Seed = 42
	return cfg
}

func TestStore_SaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runID, err := st.Save(testConfig(), testResult())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(runID, "crowd_"), runID)
	require.Len(t, runID, len("crowd_")+8)

	for _, name := range []string{"metadata.json", "samples.csv", "config.yaml"} {
		require.FileExists(t, filepath.Join(st.Dir(runID), name))
	}

	meta, err := st.Load(runID)
	require.NoError(t, err)
	require.Equal(t, runID, meta.ID)
	require.Equal(t, "crowd", meta.Scenario)
	require.Equal(t, int64(42), meta.Seed)
	require.Equal(t, 2, meta.Dim)
	require.Equal(t, []string{"a", "b"}, meta.Agents)
	require.Equal(t, 4.0, meta.Metrics["min_separation"])

	cfg, err := st.LoadConfig(runID)
	require.NoError(t, err)
	require.Equal(t, testConfig(), cfg)
}

func TestStore_LoadSamplesRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	want := testResult()
	runID, err := st.Save(testConfig(), want)
	require.NoError(t, err)

	got, err := st.LoadSamples(runID)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestStore_UniqueIDs(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	first, err := st.Save(testConfig(), testResult())
	require.NoError(t, err)
	second, err := st.Save(testConfig(), testResult())
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.False(t, runs[1].Timestamp.Before(runs[0].Timestamp))
}

func TestStore_ListSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0644))

	runs, err := st.List()
	require.NoError(t, err)
	require.Empty(t, runs)

	missing, err := New(filepath.Join(dir, "nope")).List()
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestStore_LoadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("seek_deadbeef")
	require.ErrorIs(t, err, ErrNoRun)

	_, err = st.LoadSamples("seek_deadbeef")
	require.ErrorIs(t, err, ErrNoRun)
}

func TestStore_LoadSamplesRejectsBadRows(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	runID, err := st.Save(testConfig(), testResult())
	require.NoError(t, err)

	path := filepath.Join(st.Dir(runID), "samples.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	corrupted := strings.Replace(string(data), "\n0,a,", "\n0,ghost,", 1)
	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0644))

	_, err = st.LoadSamples(runID)
	require.ErrorContains(t, err, "unknown agent")
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{Scenario: "crowd", Integrator: "verlet", Dt: 0.1, Duration: 0.1}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, meta, testResult()))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	require.Equal(t, "crowd", data.Scenario)
	require.Equal(t, "verlet", data.Integrator)
	require.Equal(t, 1, data.Steps)
	require.Len(t, data.Frames, 2)
	require.Equal(t, [3]float64{3, 3.9}, data.Frames[1].Agents[1].Position)

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, ExportJSONFile(path, meta, testResult()))
	fromFile, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, buf.String(), string(fromFile))
}
