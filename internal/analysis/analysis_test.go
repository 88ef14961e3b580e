package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/vec"
)

func sine(n int, dt, freq, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)*dt)
	}
	return out
}

func TestSpectrum_DominantSine(t *testing.T) {
	dt := 0.01
	freqs, mags, err := Spectrum(sine(256, dt, 2, 1.5), dt)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if len(freqs) != 129 || len(mags) != 129 {
		t.Fatalf("bins = %d/%d, want 129", len(freqs), len(mags))
	}
	if math.Abs(freqs[128]-50) > 1e-9 {
		t.Errorf("top bin = %v, want the Nyquist 50 Hz", freqs[128])
	}

	f, m := DominantFrequency(freqs, mags)
	resolution := 1 / (256 * dt)
	if math.Abs(f-2) > resolution {
		t.Errorf("dominant = %v Hz, want 2 within %v", f, resolution)
	}
	if math.Abs(m-1.5) > 0.2 {
		t.Errorf("magnitude = %v, want about 1.5", m)
	}
}

func TestSpectrum_ZeroPads(t *testing.T) {
	freqs, _, err := Spectrum(sine(100, 0.1, 1, 1), 0.1)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	// 100 samples pad to 128.
	if len(freqs) != 65 {
		t.Errorf("bins = %d, want 65", len(freqs))
	}
}

func TestSpectrum_Flat(t *testing.T) {
	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 3
	}
	freqs, mags, err := Spectrum(flat, 0.1)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	if _, m := DominantFrequency(freqs, mags); m > 1e-12 {
		t.Errorf("flat series has a peak of %v", m)
	}
}

func TestSpectrum_Errors(t *testing.T) {
	if _, _, err := Spectrum([]float64{1, 2, 3, 4}, 0); !errors.Is(err, ErrInvalidDt) {
		t.Errorf("dt 0: err = %v", err)
	}
	if _, _, err := Spectrum([]float64{1, 2, 3}, 0.1); !errors.Is(err, ErrTooShort) {
		t.Errorf("3 samples: err = %v", err)
	}
}

func TestUnwrap(t *testing.T) {
	got := Unwrap([]float64{3, -3, -2.5, 3})
	want := []float64{3, -3 + 2*math.Pi, -2.5 + 2*math.Pi, 3}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Unwrap[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func headingResult(heading func(t float64) float64) *sim.Result {
	r := &sim.Result{Dim: 2, Agents: []string{"a"}}
	for i := 0; i <= 200; i++ {
		t := float64(i) * 0.05
		r.Frames = append(r.Frames, sim.Frame{Time: t, Agents: []sim.AgentState{{Orientation: vec.WrapAngle(heading(t))}}})
	}
	// Off-grid final frame as recorded by a run whose length is not a
	// multiple of RecordEvery.
	r.Frames = append(r.Frames, sim.Frame{Time: 10.01, Agents: []sim.AgentState{{Orientation: vec.WrapAngle(heading(10.01))}}})
	return r
}

func TestHeadingOscillation(t *testing.T) {
	swinging := headingResult(func(t float64) float64 { return math.Pi + 0.6*math.Sin(2*math.Pi*0.5*t) })
	osc, err := HeadingOscillation(swinging, 0, 0.2)
	if err != nil {
		t.Fatalf("HeadingOscillation: %v", err)
	}
	if !osc.Oscillating {
		t.Errorf("swinging heading not flagged: %+v", osc)
	}
	if math.Abs(osc.Frequency-0.5) > 0.1 {
		t.Errorf("frequency = %v, want about 0.5", osc.Frequency)
	}

	steady := headingResult(func(float64) float64 { return 1 })
	osc, err = HeadingOscillation(steady, 0, 0.2)
	if err != nil {
		t.Fatalf("HeadingOscillation: %v", err)
	}
	if osc.Oscillating {
		t.Errorf("steady heading flagged: %+v", osc)
	}

	if _, err := HeadingOscillation(steady, 3, 0.2); err == nil {
		t.Error("expected an error for a missing agent")
	}
}
