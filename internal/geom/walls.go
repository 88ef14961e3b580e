// Package geom holds host-side scene geometry for ray-based obstacle
// avoidance.
package geom

import (
	"math"

	"github.com/san-kum/steersim/internal/steer"
	"github.com/san-kum/steersim/internal/vec"
)

// Wall is a line segment obstacle.
type Wall struct {
	A, B vec.Vec2
}

func NewWall(ax, ay, bx, by float64) Wall {
	return Wall{A: vec.Vec2{X: ax, Y: ay}, B: vec.Vec2{X: bx, Y: by}}
}

// Walls is a RaycastCollisionDetector over a set of 2D walls.
type Walls struct {
	Walls []Wall
}

func NewWalls(walls ...Wall) *Walls {
	return &Walls{Walls: walls}
}

// Box returns the four walls of an axis-aligned rectangle.
func Box(minX, minY, maxX, maxY float64) []Wall {
	return []Wall{
		NewWall(minX, minY, maxX, minY),
		NewWall(maxX, minY, maxX, maxY),
		NewWall(maxX, maxY, minX, maxY),
		NewWall(minX, maxY, minX, minY),
	}
}

func (w *Walls) Add(walls ...Wall) { w.Walls = append(w.Walls, walls...) }

func (w *Walls) Collides(ray *steer.Ray[*vec.Vec2]) bool {
	for i := range w.Walls {
		if _, ok := intersect(ray.Start, ray.End, &w.Walls[i]); ok {
			return true
		}
	}
	return false
}

// FindCollision writes the hit nearest to the ray start. The normal is the
// wall's unit normal on the side the ray comes from.
func (w *Walls) FindCollision(out *steer.Collision[*vec.Vec2], ray *steer.Ray[*vec.Vec2]) bool {
	best := math.Inf(1)
	var hitWall *Wall
	for i := range w.Walls {
		t, ok := intersect(ray.Start, ray.End, &w.Walls[i])
		if ok && t < best {
			best = t
			hitWall = &w.Walls[i]
		}
	}
	if hitWall == nil {
		return false
	}

	out.Point.Set(ray.End).Sub(ray.Start).Scale(best).Add(ray.Start)

	dx, dy := hitWall.B.X-hitWall.A.X, hitWall.B.Y-hitWall.A.Y
	out.Normal.X, out.Normal.Y = -dy, dx
	out.Normal.Nor()
	toStart := vec.New2(ray.Start.X, ray.Start.Y).Sub(out.Point)
	if out.Normal.Dot(toStart) < 0 {
		out.Normal.Scale(-1)
	}
	return true
}

// intersect returns the parameter along p0->p1 where it crosses the wall.
// Parallel and collinear segments never intersect.
func intersect(p0, p1 *vec.Vec2, w *Wall) (float64, bool) {
	rx, ry := p1.X-p0.X, p1.Y-p0.Y
	sx, sy := w.B.X-w.A.X, w.B.Y-w.A.Y

	denom := rx*sy - ry*sx
	if denom == 0 {
		return 0, false
	}

	qx, qy := w.A.X-p0.X, w.A.Y-p0.Y
	t := (qx*sy - qy*sx) / denom
	u := (qx*ry - qy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

var _ steer.RaycastCollisionDetector[*vec.Vec2] = (*Walls)(nil)
