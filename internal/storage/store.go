package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
	configFile   = "config.yaml"
)

var ErrNoRun = errors.New("storage: no such run")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir is the directory of a run.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Scenario   string             `json:"scenario"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Dim        int                `json:"dim"`
	Agents     []string           `json:"agents"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{
	"time", "agent",
	"x", "y", "z", "vx", "vy", "vz",
	"orientation", "angular_velocity", "linear", "angular",
	"tagged", "airborne",
}

// Save writes a run directory named <scenario>_<id> holding the metadata,
// the config the run was built from and one CSV row per agent and frame.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", cfg.Scenario, uuid.NewString()[:8])
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Scenario:   cfg.Scenario,
		Timestamp:  time.Now(),
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Dim:        result.Dim,
		Agents:     result.Agents,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, frame := range result.Frames {
		for i, a := range frame.Agents {
			row := []string{format(frame.Time), result.Agents[i]}
			for _, v := range a.Position {
				row = append(row, format(v))
			}
			for _, v := range a.Velocity {
				row = append(row, format(v))
			}
			row = append(row,
				format(a.Orientation), format(a.AngularVelocity),
				format(a.Linear), format(a.Angular),
				strconv.FormatBool(a.Tagged), strconv.FormatBool(a.Airborne))
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every run, oldest first. Directories without
// readable metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", metadataFile, err)
	}
	return &meta, nil
}

// LoadConfig returns the config a run was built from.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.Dir(runID), configFile))
}

// LoadSamples rebuilds the recorded frames of a run.
func (s *Store) LoadSamples(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.Dir(runID), samplesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(sampleHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("storage: %s: %w", samplesFile, err)
	}

	result := &sim.Result{
		Dim:        meta.Dim,
		Agents:     meta.Agents,
		Frames:     make([]sim.Frame, 0),
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	if len(records) < 2 {
		return result, nil
	}

	index := make(map[string]int, len(meta.Agents))
	for i, name := range meta.Agents {
		index[name] = i
	}

	for line, record := range records[1:] {
		var nums [10]float64
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", samplesFile, line+2, err)
		}
		for i := range nums {
			if nums[i], err = strconv.ParseFloat(record[i+2], 64); err != nil {
				return nil, fmt.Errorf("storage: %s line %d: %w", samplesFile, line+2, err)
			}
		}
		agent, ok := index[record[1]]
		if !ok {
			return nil, fmt.Errorf("storage: %s line %d: unknown agent %q", samplesFile, line+2, record[1])
		}

		n := len(result.Frames)
		if n == 0 || result.Frames[n-1].Time != t || agent == 0 {
			result.Frames = append(result.Frames, sim.Frame{Time: t, Agents: make([]sim.AgentState, len(meta.Agents))})
			n++
		}

		tagged, _ := strconv.ParseBool(record[12])
		airborne, _ := strconv.ParseBool(record[13])
		result.Frames[n-1].Agents[agent] = sim.AgentState{
			Position:        [3]float64{nums[0], nums[1], nums[2]},
			Velocity:        [3]float64{nums[3], nums[4], nums[5]},
			Orientation:     nums[6],
			AngularVelocity: nums[7],
			Linear:          nums[8],
			Angular:         nums[9],
			Tagged:          tagged,
			Airborne:        airborne,
		}
	}
	return result, nil
}
