package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/steersim/internal/sim"
)

type ExportData struct {
	Scenario   string             `json:"scenario"`
	Integrator string             `json:"integrator"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Dim        int                `json:"dim"`
	Steps      int                `json:"steps"`
	Agents     []string           `json:"agents"`
	Frames     []sim.Frame        `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
}

func NewExportData(meta *RunMetadata, result *sim.Result) ExportData {
	return ExportData{
		Scenario:   meta.Scenario,
		Integrator: meta.Integrator,
		Dt:         meta.Dt,
		Duration:   meta.Duration,
		Dim:        result.Dim,
		Steps:      result.StepsTaken,
		Agents:     result.Agents,
		Frames:     result.Frames,
		Metrics:    result.Metrics,
	}
}

// ExportJSON writes a run as one indented JSON document.
func ExportJSON(w io.Writer, meta *RunMetadata, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}

func ExportJSONFile(path string, meta *RunMetadata, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return ExportJSON(file, meta, result)
}
