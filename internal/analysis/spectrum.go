package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

const minSamples = 4

var (
	ErrTooShort  = errors.New("analysis: series too short")
	ErrInvalidDt = errors.New("analysis: sample interval must be positive")
)

// Spectrum returns the one-sided magnitude spectrum of series sampled every
// dt seconds. The mean is removed, a Hann window applied and the series
// zero-padded to a power of two. Magnitudes are scaled so a sinusoid of
// amplitude A on a bin reads close to A.
func Spectrum(series []float64, dt float64) (freqs, mags []float64, err error) {
	if dt <= 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDt, dt)
	}
	if len(series) < minSamples {
		return nil, nil, fmt.Errorf("%w: %d samples, need %d", ErrTooShort, len(series), minSamples)
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	n := nextPow2(len(series))
	padded := make([]float64, n)
	gain := 0.0
	last := float64(len(series) - 1)
	for i, v := range series {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/last))
		padded[i] = (v - mean) * w
		gain += w
	}

	spectrum := fft.FFTReal(padded)

	bins := n/2 + 1
	freqs = make([]float64, bins)
	mags = make([]float64, bins)
	for k := 0; k < bins; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		m := cmplx.Abs(spectrum[k]) / gain
		if k != 0 && k != n/2 {
			m *= 2
		}
		mags[k] = m
	}
	return freqs, mags, nil
}

// DominantFrequency returns the frequency and magnitude of the strongest bin,
// ignoring DC.
func DominantFrequency(freqs, mags []float64) (float64, float64) {
	best := 0
	for k := 1; k < len(mags); k++ {
		if best == 0 || mags[k] > mags[best] {
			best = k
		}
	}
	if best == 0 {
		return 0, 0
	}
	return freqs[best], mags[best]
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
