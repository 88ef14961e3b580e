package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/steersim/internal/sim"
)

type Oscillation struct {
	Frequency float64
	Magnitude float64
	// Oscillating is set when Magnitude reaches the threshold.
	Oscillating bool
}

// HeadingOscillation looks for a periodic swing in the orientation of the
// agent at index agent. The orientation is unwrapped first so crossing ±π
// is not mistaken for a jump.
func HeadingOscillation(result *sim.Result, agent int, threshold float64) (Oscillation, error) {
	freqs, mags, err := HeadingSpectrum(result, agent)
	if err != nil {
		return Oscillation{}, err
	}
	f, m := DominantFrequency(freqs, mags)
	return Oscillation{Frequency: f, Magnitude: m, Oscillating: m >= threshold}, nil
}

// HeadingSpectrum is the amplitude spectrum of the unwrapped orientation of
// the agent at index agent.
func HeadingSpectrum(result *sim.Result, agent int) (freqs, mags []float64, err error) {
	if result == nil || agent < 0 || agent >= len(result.Agents) {
		return nil, nil, fmt.Errorf("analysis: no agent %d", agent)
	}
	series, dt := uniformSeries(result, agent)
	return Spectrum(Unwrap(series), dt)
}

// uniformSeries returns the orientations of the agent and the sample
// interval. The final frame of a run is recorded off the RecordEvery grid
// and is dropped when it would break the spacing.
func uniformSeries(result *sim.Result, agent int) ([]float64, float64) {
	frames := result.Frames
	if len(frames) < 2 {
		return nil, 0
	}
	dt := frames[1].Time - frames[0].Time
	if n := len(frames); n > 2 {
		last := frames[n-1].Time - frames[n-2].Time
		if math.Abs(last-dt) > 1e-9*math.Max(1, dt) {
			frames = frames[:n-1]
		}
	}
	series := make([]float64, 0, len(frames))
	for _, f := range frames {
		if agent < len(f.Agents) {
			series = append(series, f.Agents[agent].Orientation)
		}
	}
	return series, dt
}

// Unwrap removes the 2π jumps of an angle series.
func Unwrap(angles []float64) []float64 {
	out := make([]float64, len(angles))
	offset := 0.0
	for i, a := range angles {
		if i > 0 {
			d := a - angles[i-1]
			if d > math.Pi {
				offset -= 2 * math.Pi
			} else if d < -math.Pi {
				offset += 2 * math.Pi
			}
		}
		out[i] = a + offset
	}
	return out
}
