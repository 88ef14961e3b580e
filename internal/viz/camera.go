package viz

import (
	"math"
	"sort"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/vec"
)

// Camera orbits Target and projects world points onto a canvas. It is used
// for 3D runs; +Y is up.
type Camera struct {
	Target     vec.Vec3
	Distance   float64
	RotX, RotY float64
	Zoom       float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 40, RotX: -0.35, RotY: 0.5, Zoom: 1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// view moves p into camera space: relative to the target, yawed about +Y and
// then pitched about +X.
func (c *Camera) view(p vec.Vec3) vec.Vec3 {
	p.X -= c.Target.X
	p.Y -= c.Target.Y
	p.Z -= c.Target.Z
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	return p
}

// Project converts a world point to canvas sub-pixels.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(canvas *Canvas, p vec.Vec3) (int, int, float64, bool) {
	rot := c.view(p)
	rot.X *= c.Zoom
	rot.Y *= c.Zoom
	rot.Z *= c.Zoom
	if rot.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	sw, sh := canvas.PixelWidth(), canvas.PixelHeight()
	scale := c.Distance / (c.Distance - rot.Z)
	pScale := float64(min(sw, sh)) / 20
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End vec.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe             { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e vec.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p vec.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe to the canvas back to front.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(c, e.Start)
		x2, y2, d2, v2 := cam.Project(c, e.End)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// GroundGrid returns square grid lines on the y = 0 plane centered on center.
func GroundGrid(center vec.Vec3, half float64, cells int) *Wireframe {
	w := NewWireframe()
	step := 2 * half / float64(cells)
	for i := 0; i <= cells; i++ {
		o := -half + float64(i)*step
		w.AddEdge(vec.Vec3{X: center.X + o, Z: center.Z - half}, vec.Vec3{X: center.X + o, Z: center.Z + half})
		w.AddEdge(vec.Vec3{X: center.X - half, Z: center.Z + o}, vec.Vec3{X: center.X + half, Z: center.Z + o})
	}
	return w
}

// AddAgents adds a marker for each agent with a drop line to the ground.
func (w *Wireframe) AddAgents(f sim.Frame) {
	for _, a := range f.Agents {
		p := vec.Vec3{X: a.Position[0], Y: a.Position[1], Z: a.Position[2]}
		w.AddEdge(p, vec.Vec3{X: p.X, Z: p.Z})
		for _, d := range [][3]float64{{0.3, 0, 0}, {0, 0.3, 0}, {0, 0, 0.3}} {
			w.AddEdge(vec.Vec3{X: p.X - d[0], Y: p.Y - d[1], Z: p.Z - d[2]}, vec.Vec3{X: p.X + d[0], Y: p.Y + d[1], Z: p.Z + d[2]})
		}
	}
}
