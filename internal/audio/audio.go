// Package audio turns the motion of a running scenario into sound.
package audio

import (
	"fmt"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	// Pitch range of the tone, from agents at rest to agents at full speed.
	baseFreq = 110.0
	topFreq  = 440.0
	maxVol   = 0.25
)

// Sonifier plays a soft tone whose pitch and volume follow the mean speed
// of the agents relative to their speed cap.
type Sonifier struct {
	Stream *portaudio.Stream

	// Synthesis
	Time        float64
	Phase       [2]float64
	FilterState [2]float64   // Stereo LPF state
	DelayLine   [2][]float64 // Stereo delay buffer
	DelayHead   int

	mu       sync.Mutex
	ratio    float64
	smoothed float64

	Active bool
}

func NewSonifier() *Sonifier {
	// 0.4 second delay
	delayLen := int(float64(SampleRate) * 0.4)

	return &Sonifier{
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

// Start opens an output-only stream on the default device.
func (s *Sonifier) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, s.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	s.Stream = stream
	s.Active = true
	return nil
}

func (s *Sonifier) Stop() {
	if s.Stream != nil {
		s.Stream.Stop()
		s.Stream.Close()
		s.Stream = nil
	}
	if s.Active {
		portaudio.Terminate()
	}
	s.Active = false
}

// Update feeds the current mean agent speed and the speed cap.
func (s *Sonifier) Update(meanSpeed, maxSpeed float64) {
	r := 0.0
	if maxSpeed > 0 {
		r = math.Min(math.Max(meanSpeed/maxSpeed, 0), 1)
	}
	s.mu.Lock()
	s.ratio = r
	s.mu.Unlock()
}

// Tone maps a speed ratio in [0, 1] to a frequency and a volume. Pitch is
// exponential in the ratio so equal speed steps sound like equal intervals.
func Tone(ratio float64) (freq, vol float64) {
	ratio = math.Min(math.Max(ratio, 0), 1)
	freq = baseFreq * math.Pow(topFreq/baseFreq, ratio)
	vol = maxVol * (0.2 + 0.8*ratio)
	return freq, vol
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Process is the stream callback.
func (s *Sonifier) Process(out [][]float32) {
	s.mu.Lock()
	target := s.ratio
	s.mu.Unlock()

	dt := 1.0 / float64(SampleRate)

	for i := range out[0] {
		// Glide so pitch changes do not click.
		s.smoothed = s.smoothed*0.9995 + target*0.0005
		freq, vol := Tone(s.smoothed)
		cutoff := 2 * freq

		// Slight detune between channels
		s.Phase[0] += freq * 0.999 * dt
		s.Phase[1] += freq * 1.001 * dt

		for ch := 0; ch < 2; ch++ {
			sample := triangle(s.Phase[ch]) + 0.3*triangle(2*s.Phase[ch])
			s.FilterState[ch] = lpf(sample, cutoff, dt, s.FilterState[ch])

			delayed := s.DelayLine[ch][s.DelayHead]
			mix := s.FilterState[ch] + delayed*0.3
			s.DelayLine[ch][s.DelayHead] = mix * 0.5

			out[ch][i] = float32(mix * vol)
		}
		s.DelayHead = (s.DelayHead + 1) % len(s.DelayLine[0])
		s.Time += dt
	}
}
