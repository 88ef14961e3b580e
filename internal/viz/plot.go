package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/steersim/internal/sim"
)

// PlotSeries renders series as an ASCII line chart.
func PlotSeries(series []float64, caption string, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	return asciigraph.Plot(series, asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption(caption))
}

// Quantities that can be plotted per agent.
var Quantities = map[string]func(sim.AgentState) float64{
	"x":           func(s sim.AgentState) float64 { return s.Position[0] },
	"y":           func(s sim.AgentState) float64 { return s.Position[1] },
	"z":           func(s sim.AgentState) float64 { return s.Position[2] },
	"speed":       sim.AgentState.Speed,
	"orientation": func(s sim.AgentState) float64 { return s.Orientation },
	"angular":     func(s sim.AgentState) float64 { return s.AngularVelocity },
	"linear_acc":  func(s sim.AgentState) float64 { return s.Linear },
	"angular_acc": func(s sim.AgentState) float64 { return s.Angular },
}

// PlotAgents overlays one quantity for several agents of a result.
func PlotAgents(result *sim.Result, quantity string, agents []int, width, height int) string {
	value, ok := Quantities[quantity]
	if !ok || result == nil {
		return ""
	}
	var series [][]float64
	for _, i := range agents {
		if s := result.Series(i, value); len(s) > 0 {
			series = append(series, s)
		}
	}
	if len(series) == 0 {
		return ""
	}
	return asciigraph.PlotMany(series, asciigraph.Height(height), asciigraph.Width(width), asciigraph.Caption(quantity))
}
