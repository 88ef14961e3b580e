package sim

import (
	"context"
	"math"

	"github.com/san-kum/steersim/internal/steer"
)

// Integrator advances one agent by dt under the steering output acc.
type Integrator[V steer.Vector[V]] interface {
	Step(a *Agent[V], acc *steer.Acceleration[V], dt float64)
}

type Metric[V steer.Vector[V]] interface {
	Name() string
	Observe(w *World[V], t float64)
	Value() float64
	Reset()
}

type Observer[V steer.Vector[V]] interface {
	OnStep(w *World[V], t float64)
}

type ObserverFunc[V steer.Vector[V]] func(w *World[V], t float64)

func (f ObserverFunc[V]) OnStep(w *World[V], t float64) { f(w, t) }

// Runner is the dimension-independent view of a Simulator used by the
// tooling packages.
type Runner interface {
	Run(ctx context.Context, cfg Config) (*Result, error)
	Step(dt float64) error
	Snapshot() Frame
	AgentNames() []string
	Dim() int
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
	// ValidateState stops the run at the first NaN or Inf in an agent.
	ValidateState bool
	// RecordEvery keeps one frame every RecordEvery ticks. Zero keeps all.
	RecordEvery int
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      20,
		Seed:          1,
		ValidateState: true,
		RecordEvery:   1,
	}
}

// Steps is the number of ticks a run of cfg takes.
func (c Config) Steps() int {
	return int(math.Floor(c.Duration/c.Dt + 1e-9))
}

// AgentState is a snapshot of one agent. Vectors are padded with zeros in 2D.
type AgentState struct {
	Position        [3]float64 `json:"position"`
	Velocity        [3]float64 `json:"velocity"`
	Orientation     float64    `json:"orientation"`
	AngularVelocity float64    `json:"angular_velocity"`
	// Linear and Angular are the steering output of the tick.
	Linear   float64 `json:"linear"`
	Angular  float64 `json:"angular"`
	Tagged   bool    `json:"tagged,omitempty"`
	Airborne bool    `json:"airborne,omitempty"`
}

func (s AgentState) Speed() float64 {
	v := s.Velocity
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

type Frame struct {
	Time   float64      `json:"time"`
	Agents []AgentState `json:"agents"`
}

type Result struct {
	Dim        int                `json:"dim"`
	Agents     []string           `json:"agents"`
	Frames     []Frame            `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps_taken"`
}

func (r *Result) Times() []float64 {
	times := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		times[i] = f.Time
	}
	return times
}

// Series extracts one value per frame for the agent at index agent.
func (r *Result) Series(agent int, value func(AgentState) float64) []float64 {
	out := make([]float64, 0, len(r.Frames))
	for _, f := range r.Frames {
		if agent < len(f.Agents) {
			out = append(out, value(f.Agents[agent]))
		}
	}
	return out
}

// AgentIndex returns the index of the named agent or -1.
func (r *Result) AgentIndex(name string) int {
	for i, n := range r.Agents {
		if n == name {
			return i
		}
	}
	return -1
}
