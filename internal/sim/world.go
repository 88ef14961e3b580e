package sim

import "github.com/san-kum/steersim/internal/steer"

// World holds the agents and the clock they share. Its embedded
// ManualTimepiece is the Timepiece handed to behaviors and proximities; only
// the Simulator advances it.
type World[V steer.Vector[V]] struct {
	steer.ManualTimepiece

	Agents  []*Agent[V]
	Gravity V

	time float64
}

// NewWorld creates a world. gravity also fixes the dimension; pass a zero
// vector for none.
func NewWorld[V steer.Vector[V]](gravity V, agents ...*Agent[V]) *World[V] {
	return &World[V]{Gravity: gravity, Agents: agents}
}

func (w *World[V]) Add(agents ...*Agent[V]) {
	w.Agents = append(w.Agents, agents...)
}

// Time is the simulated time elapsed so far.
func (w *World[V]) Time() float64 { return w.time }

func (w *World[V]) Dim() int { return w.Gravity.Dim() }

// Steerables returns the agents as a new slice of the engine's interface,
// suitable for a Proximity.
func (w *World[V]) Steerables() []steer.Steerable[V] {
	out := make([]steer.Steerable[V], len(w.Agents))
	for i, a := range w.Agents {
		out[i] = a
	}
	return out
}

// Agent returns the named agent or nil.
func (w *World[V]) Agent(name string) *Agent[V] {
	for _, a := range w.Agents {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func (w *World[V]) Names() []string {
	names := make([]string, len(w.Agents))
	for i, a := range w.Agents {
		names[i] = a.Name
	}
	return names
}

func (w *World[V]) Snapshot() Frame {
	f := Frame{Time: w.time, Agents: make([]AgentState, len(w.Agents))}
	for i, a := range w.Agents {
		f.Agents[i] = a.State()
	}
	return f
}
