// Package analysis provides spectral tools for recorded runs.
//
//   - [Spectrum]: one-sided magnitude spectrum of a uniformly sampled series
//   - [DominantFrequency]: strongest non-DC bin of a spectrum
//   - [HeadingOscillation]: flags an agent whose heading keeps swinging
//
// # Corner Traps
//
// An agent avoiding walls with a ray configuration can get stuck in a
// corner, its heading flipping between the two walls. That shows up as a
// strong peak in the spectrum of its orientation:
//
//	osc, err := analysis.HeadingOscillation(result, 0, 0.2)
//	if err == nil && osc.Oscillating {
//	    // trapped
//	}
package analysis
