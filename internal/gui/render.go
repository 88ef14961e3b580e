package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

func (a *App) drawScene() {
	if a.Run.Spatial != nil {
		a.CustomGrid(40, 1)
	}
	a.RenderWalls()
	a.RenderPath()
	a.RenderRays()
	if a.ShowTrails {
		a.RenderTrails()
	}
	a.RenderAgents()
}

// CustomGrid draws the ground plane of 3D runs.
func (a *App) CustomGrid(slices int, spacing float32) {
	halfSize := float32(slices) * spacing / 2
	for i := -slices / 2; i <= slices/2; i++ {
		pos := float32(i) * spacing
		rl.DrawLine3D(rl.NewVector3(pos, 0, -halfSize), rl.NewVector3(pos, 0, halfSize), ColGrid)
		rl.DrawLine3D(rl.NewVector3(-halfSize, 0, pos), rl.NewVector3(halfSize, 0, pos), ColGrid)
	}
}

func (a *App) RenderWalls() {
	for _, w := range a.Scene.Walls {
		from := rl.NewVector3(float32(w.A.X), float32(w.A.Y), 0)
		to := rl.NewVector3(float32(w.B.X), float32(w.B.Y), 0)
		rl.DrawLine3D(from, to, ColWall)
	}
}

// RenderPath draws the path dashed, one dash per half segment.
func (a *App) RenderPath() {
	pts := a.Scene.Path
	n := len(pts)
	if n < 2 {
		return
	}
	segments := n - 1
	if a.Scene.ClosedPath {
		segments = n
	}
	for i := 0; i < segments; i++ {
		p, q := pts[i], pts[(i+1)%n]
		length := math.Hypot(q.X-p.X, q.Y-p.Y)
		dashes := int(length / 0.5)
		for d := 0; d < dashes; d += 2 {
			t0, t1 := float64(d)/float64(dashes), float64(d+1)/float64(dashes)
			from := rl.NewVector3(float32(p.X+(q.X-p.X)*t0), float32(p.Y+(q.Y-p.Y)*t0), 0)
			to := rl.NewVector3(float32(p.X+(q.X-p.X)*t1), float32(p.Y+(q.Y-p.Y)*t1), 0)
			rl.DrawLine3D(from, to, ColTextDim)
		}
	}
}

// RenderRays draws the rays of the last avoidance update.
func (a *App) RenderRays() {
	for _, rc := range a.Run.Rays {
		rays, ok := rc.(interface{ Rays() []steer.Ray[*vec.Vec2] })
		if !ok {
			continue
		}
		for _, r := range rays.Rays() {
			from := rl.NewVector3(float32(r.Start.X), float32(r.Start.Y), 0)
			to := rl.NewVector3(float32(r.End.X), float32(r.End.Y), 0)
			rl.DrawLine3D(from, to, ColRay)
		}
	}
}

// RenderTrails fades each trail from transparent to the accent color.
func (a *App) RenderTrails() {
	for _, trail := range a.Trails {
		for i := 1; i < len(trail); i++ {
			alpha := uint8(200 * i / len(trail))
			rl.DrawLine3D(trail[i-1], trail[i], rl.NewColor(180, 180, 180, alpha))
		}
	}
}

func (a *App) RenderAgents() {
	spatial := a.Run.Spatial != nil
	for _, s := range a.Frame.Agents {
		pos := toVec3(s.Position)
		r := float32(a.Config.Agents.Radius)
		if r <= 0 {
			r = 0.3
		}

		col := ColSelect
		if s.Tagged {
			col = ColAccent
		}
		if s.Airborne {
			col = rl.SkyBlue
		}

		if spatial {
			rl.DrawSphere(pos, r, col)
			// Shadow on the ground
			rl.DrawCircle3D(rl.NewVector3(pos.X, 0.01, pos.Z), r, rl.NewVector3(1, 0, 0), 90, ColTextDim)
			continue
		}

		rl.DrawCircle3D(pos, r, rl.NewVector3(0, 0, 1), 0, col)
		// Orientation 0 faces +Y.
		hx := float32(-math.Sin(s.Orientation)) * r * 1.8
		hy := float32(math.Cos(s.Orientation)) * r * 1.8
		rl.DrawLine3D(pos, rl.NewVector3(pos.X+hx, pos.Y+hy, 0), col)
	}
}
