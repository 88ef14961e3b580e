package viz

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/geom"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

func TestCanvas_SetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("cell = %#x, want 0x2881", c.Grid[0][0])
	}
	if !c.IsSet(1, 3) || c.IsSet(1, 2) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2880 {
		t.Errorf("cell after unset = %#x, want 0x2880", c.Grid[0][0])
	}

	// Out of range is ignored.
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != blank {
		t.Errorf("untouched cell = %#x", c.Grid[0][1])
	}

	if got := c.String(); got != "\u2880\u2800\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("pixel %d not set", x)
		}
	}
}

func TestViewport_Project(t *testing.T) {
	c := NewCanvas(10, 5)
	v := Viewport{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}

	tests := []struct {
		x, y   float64
		px, py int
	}{
		{0, 0, 0, 19},
		{10, 10, 19, 0},
		{0, 10, 0, 0},
		{5, 5, 10, 10},
	}
	for _, tt := range tests {
		px, py := v.Project(c, tt.x, tt.y)
		if px != tt.px || py != tt.py {
			t.Errorf("Project(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, px, py, tt.px, tt.py)
		}
	}
}

func TestFitViewport_KeepsAspect(t *testing.T) {
	c := NewCanvas(10, 5)
	v := FitViewport(c, 0, [2]float64{0, 0}, [2]float64{10, 4})
	if v.MinX != 0 || v.MaxX != 10 {
		t.Errorf("x range = [%v, %v]", v.MinX, v.MaxX)
	}
	if v.MinY != -3 || v.MaxY != 7 {
		t.Errorf("y range = [%v, %v], want [-3, 7]", v.MinY, v.MaxY)
	}

	empty := FitViewport(c, 1)
	if empty.MinX >= empty.MaxX || empty.MinY >= empty.MaxY {
		t.Errorf("empty viewport is degenerate: %+v", empty)
	}
}

func TestDrawScene(t *testing.T) {
	c := NewCanvas(10, 5)
	v := Viewport{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	DrawScene(c, v, Scene{Walls: []geom.Wall{geom.NewWall(0, 0, 10, 0)}})
	for x := 0; x < c.PixelWidth(); x++ {
		if !c.IsSet(x, 19) {
			t.Fatalf("wall pixel %d not drawn", x)
		}
	}
}

func TestPlotSeries(t *testing.T) {
	if got := PlotSeries(nil, "empty", 10, 3); got != "" {
		t.Errorf("PlotSeries(nil) = %q", got)
	}
	out := PlotSeries([]float64{0, 1, 2, 3, 2, 1}, "speed", 20, 4)
	if !strings.Contains(out, "speed") {
		t.Errorf("caption missing from %q", out)
	}
}

func TestPlotAgents(t *testing.T) {
	r := &sim.Result{
		Dim:    2,
		Agents: []string{"a", "b"},
		Frames: []sim.Frame{
			{Time: 0, Agents: []sim.AgentState{{}, {}}},
			{Time: 1, Agents: []sim.AgentState{{Position: [3]float64{1, 0, 0}}, {Position: [3]float64{2, 0, 0}}}},
		},
	}
	if got := PlotAgents(r, "bogus", []int{0}, 10, 3); got != "" {
		t.Errorf("unknown quantity plotted: %q", got)
	}
	if got := PlotAgents(r, "x", []int{0, 1}, 10, 3); !strings.Contains(got, "x") {
		t.Errorf("PlotAgents = %q", got)
	}
}

func TestPrinter(t *testing.T) {
	a := sim.NewAgent("scout", vec.New2(1, 2), 0.5, steer.NewFullLimiter(1, 1, 1, 1))
	w := sim.NewWorld(vec.New2(0, 0), a)
	var buf bytes.Buffer
	p := NewPrinter[*vec.Vec2](&buf, "seek", Scene{}, 0)

	p.Start()
	p.OnStep(w, 0.5)
	p.Stop()

	out := buf.String()
	for _, want := range []string{hideCursor, clearScreen, "seek  t=0.50s", "scout", showCursor} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StepsAndRestarts(t *testing.T) {
	reg := scenario.NewRegistry()
	builds := 0
	m, err := NewModel(func() (*scenario.Run, error) {
		builds++
		cfg := config.DefaultConfig()
		cfg.Dt = 0.01
		cfg.Duration = 0.05
		return reg.Build(cfg)
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}

	var tm tea.Model = m
	for i := 0; i < 8; i++ {
		tm, _ = tm.Update(TickMsg(time.Now()))
	}
	m = tm.(Model)
	if m.steps != 5 {
		t.Errorf("steps = %d, want 5", m.steps)
	}
	if !m.finished() || m.running {
		t.Error("model should stop at the end of the run")
	}
	if len(m.speeds) != 5 || len(m.history) != 5 {
		t.Errorf("speeds %d history %d, want 5 each", len(m.speeds), len(m.history))
	}
	if !strings.Contains(m.View(), "DONE") {
		t.Error("view does not report the finished run")
	}

	tm, _ = m.Update(key("["))
	m = tm.(Model)
	if m.playHead != 3 {
		t.Errorf("playHead = %d, want 3", m.playHead)
	}

	tm, _ = m.Update(key("r"))
	m = tm.(Model)
	if builds != 2 {
		t.Errorf("builds = %d, want 2", builds)
	}
	if m.steps != 0 || m.playHead != -1 || !m.running {
		t.Errorf("restart left steps=%d playHead=%d running=%v", m.steps, m.playHead, m.running)
	}
}

func TestModel_Spatial(t *testing.T) {
	reg := scenario.NewRegistry()
	m, err := NewModel(func() (*scenario.Run, error) {
		cfg := config.DefaultConfig()
		cfg.Scenario = "jump"
		cfg.Duration = 0.5
		return reg.Build(cfg)
	})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	tm, _ := m.Update(TickMsg(time.Now()))
	m = tm.(Model)
	if m.steps != 1 {
		t.Errorf("steps = %d, want 1", m.steps)
	}
	drawn := false
	for _, row := range m.canvas.Grid {
		for _, r := range row {
			if r != blank {
				drawn = true
			}
		}
	}
	if !drawn {
		t.Error("3D view drew nothing")
	}
}

func TestNextTheme(t *testing.T) {
	seen := map[string]bool{}
	name := Themes[0].Name
	for range Themes {
		seen[name] = true
		name = NextTheme(name).Name
	}
	if len(seen) != len(Themes) || name != Themes[0].Name {
		t.Errorf("NextTheme does not cycle: %v", seen)
	}
}
