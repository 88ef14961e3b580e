package viz

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Printer is an Observer that redraws the world to a plain terminal while a
// run goes, without taking over the input. Frames are dropped to stay at or
// below frameRate; zero prints every tick.
type Printer[V steer.Vector[V]] struct {
	name      string
	scene     Scene
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    *Canvas
}

func NewPrinter[V steer.Vector[V]](out io.Writer, name string, scene Scene, frameRate int) *Printer[V] {
	return &Printer[V]{
		name:      name,
		scene:     scene,
		out:       out,
		frameRate: frameRate,
		canvas:    NewCanvas(70, 20),
	}
}

func (p *Printer[V]) OnStep(w *sim.World[V], t float64) {
	if p.frameRate > 0 {
		if time.Since(p.lastFrame) < time.Second/time.Duration(p.frameRate) {
			return
		}
		p.lastFrame = time.Now()
	}

	f := w.Snapshot()
	p.canvas.Clear()
	v := FitViewport(p.canvas, 2, append(p.scene.Points(), FramePoints(f)...)...)
	DrawScene(p.canvas, v, p.scene)
	DrawAgents(p.canvas, v, f, w.Dim())

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  frame=%d\n", p.name, t, w.FrameID()))
	b.WriteString("  " + strings.Repeat("-", p.canvas.Width) + "\n")
	for _, row := range p.canvas.Grid {
		b.WriteString("  " + string(row) + "\n")
	}
	b.WriteString("  " + strings.Repeat("-", p.canvas.Width) + "\n")
	for i, a := range f.Agents {
		if i >= 4 {
			b.WriteString(fmt.Sprintf("  ... %d more\n", len(f.Agents)-4))
			break
		}
		b.WriteString(fmt.Sprintf("  %-8s pos=(%.2f, %.2f) speed=%.2f\n", w.Agents[i].Name, a.Position[0], a.Position[1], a.Speed()))
	}
	fmt.Fprint(p.out, b.String())
}

func (p *Printer[V]) Start() { fmt.Fprint(p.out, hideCursor) }
func (p *Printer[V]) Stop()  { fmt.Fprint(p.out, showCursor) }
