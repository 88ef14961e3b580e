package viz

import (
	"math"

	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/geom"
	"github.com/san-kum/steersim/internal/scenario"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// Scene is the static geometry drawn under the agents.
type Scene struct {
	Walls      []geom.Wall
	Path       []config.Point
	ClosedPath bool
}

func SceneOf(run *scenario.Run) Scene {
	return Scene{Walls: run.Walls, Path: run.Path, ClosedPath: run.ClosedPath}
}

// Points lists every vertex of the scene, for fitting a viewport.
func (s Scene) Points() [][2]float64 {
	pts := make([][2]float64, 0, 2*len(s.Walls)+len(s.Path))
	for _, w := range s.Walls {
		pts = append(pts, [2]float64{w.A.X, w.A.Y}, [2]float64{w.B.X, w.B.Y})
	}
	for _, p := range s.Path {
		pts = append(pts, [2]float64{p.X, p.Y})
	}
	return pts
}

// DrawScene draws walls as solid lines and the path as a dotted line.
func DrawScene(c *Canvas, v Viewport, s Scene) {
	for _, w := range s.Walls {
		v.Line(c, w.A.X, w.A.Y, w.B.X, w.B.Y)
	}
	n := len(s.Path)
	if n < 2 {
		return
	}
	segments := n - 1
	if s.ClosedPath {
		segments = n
	}
	for i := 0; i < segments; i++ {
		a, b := s.Path[i], s.Path[(i+1)%n]
		dotted(c, v, a.X, a.Y, b.X, b.Y)
	}
}

func dotted(c *Canvas, v Viewport, x0, y0, x1, y1 float64) {
	ax, ay := v.Project(c, x0, y0)
	bx, by := v.Project(c, x1, y1)
	steps := max(absInt(bx-ax), absInt(by-ay))
	for i := 0; i <= steps; i += 3 {
		t := float64(i) / float64(max(steps, 1))
		c.Set(ax+int(math.Round(t*float64(bx-ax))), ay+int(math.Round(t*float64(by-ay))))
	}
}

// DrawAgents draws every agent of f as a disc with a heading tick. In 3D the
// frame is seen from the side and no tick is drawn.
func DrawAgents(c *Canvas, v Viewport, f sim.Frame, dim int) {
	for _, a := range f.Agents {
		x, y := v.Project(c, a.Position[0], a.Position[1])
		c.DrawDisc(x, y, 1)
		if dim != 2 {
			continue
		}
		// Orientation 0 faces +Y.
		hx := a.Position[0] - math.Sin(a.Orientation)
		hy := a.Position[1] + math.Cos(a.Orientation)
		tx, ty := v.Project(c, hx, hy)
		c.DrawLine(x, y, tx, ty)
	}
}

// DrawRays draws the rays of the last update of each configuration that
// exposes them.
func DrawRays(c *Canvas, v Viewport, configs []steer.RayConfiguration[*vec.Vec2]) {
	for _, rc := range configs {
		rays, ok := rc.(interface{ Rays() []steer.Ray[*vec.Vec2] })
		if !ok {
			continue
		}
		for _, r := range rays.Rays() {
			dotted(c, v, r.Start.X, r.Start.Y, r.End.X, r.End.Y)
		}
	}
}

// FramePoints lists the agent positions of f.
func FramePoints(f sim.Frame) [][2]float64 {
	pts := make([][2]float64, len(f.Agents))
	for i, a := range f.Agents {
		pts[i] = [2]float64{a.Position[0], a.Position[1]}
	}
	return pts
}

// RenderResult draws the whole run on a fresh canvas: the scene, every
// track, and the agents at their final frame.
func RenderResult(result *sim.Result, s Scene, w, h int) *Canvas {
	c := NewCanvas(w, h)
	if result == nil || len(result.Frames) == 0 {
		return c
	}
	pts := s.Points()
	for _, f := range result.Frames {
		pts = append(pts, FramePoints(f)...)
	}
	v := FitViewport(c, 1, pts...)
	DrawScene(c, v, s)
	for _, f := range result.Frames {
		for _, a := range f.Agents {
			x, y := v.Project(c, a.Position[0], a.Position[1])
			c.Set(x, y)
		}
	}
	DrawAgents(c, v, result.Frames[len(result.Frames)-1], result.Dim)
	return c
}
