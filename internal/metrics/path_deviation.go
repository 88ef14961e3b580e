package metrics

import (
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
)

// PathDeviation is the mean distance between the named agents and the
// nearest point of a line path. No names means every agent.
type PathDeviation[V steer.Vector[V]] struct {
	name    string
	path    *steer.LinePath[V]
	agents  map[string]bool
	param   *steer.LinePathParam[V]
	nearest V
	sum     float64
	samples int
}

func NewPathDeviation[V steer.Vector[V]](path *steer.LinePath[V], agents ...string) *PathDeviation[V] {
	p := &PathDeviation[V]{
		name:    "path_deviation",
		path:    path,
		param:   path.CreateParam(),
		nearest: path.StartPoint().Clone(),
	}
	if len(agents) > 0 {
		p.agents = make(map[string]bool, len(agents))
		for _, name := range agents {
			p.agents[name] = true
		}
	}
	return p
}

func (p *PathDeviation[V]) Name() string { return p.name }

func (p *PathDeviation[V]) Observe(w *sim.World[V], t float64) {
	for _, a := range w.Agents {
		if p.agents != nil && !p.agents[a.Name] {
			continue
		}
		d := p.path.CalculateDistance(a.Pos, p.param)
		p.path.CalculateTargetPosition(p.nearest, p.param, d)
		p.sum += p.nearest.Dst(a.Pos)
		p.samples++
	}
}

func (p *PathDeviation[V]) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.sum / float64(p.samples)
}

func (p *PathDeviation[V]) Reset() {
	p.sum = 0
	p.samples = 0
}
