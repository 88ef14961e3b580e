package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/viz"
)

// Palette is cycled over the agents of a trajectory plot.
var Palette = []string{"#00ffff", "#ff00ff", "#ffcc00", "#00ff88", "#ff6b6b", "#0088ff", "#ff9ff3", "#88ff88"}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(header(width, height))
	sb.WriteString("<g fill=\"#00ff00\">\n")

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectorySVG draws the track of every agent of result as a polyline over
// the walls and path of scene. Tracks use the X and Y coordinates, so a 3D
// run is seen from the side with +Y up.
func TrajectorySVG(result *sim.Result, scene viz.Scene, width, height int) string {
	if result == nil || len(result.Frames) < 2 || len(result.Agents) == 0 {
		return ""
	}

	b := newBounds()
	for _, f := range result.Frames {
		for _, a := range f.Agents {
			b.add(a.Position[0], a.Position[1])
		}
	}
	for _, w := range scene.Walls {
		b.add(w.A.X, w.A.Y)
		b.add(w.B.X, w.B.Y)
	}
	for _, p := range scene.Path {
		b.add(p.X, p.Y)
	}
	b.pad(0.1)
	// Keep the aspect ratio so headings read right.
	b.fit(float64(width), float64(height))

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height)))

	if len(scene.Walls) > 0 {
		sb.WriteString("<g stroke=\"#888899\" stroke-width=\"2\">\n")
		for _, w := range scene.Walls {
			x1, y1 := b.project(w.A.X, w.A.Y, width, height)
			x2, y2 := b.project(w.B.X, w.B.Y, width, height)
			sb.WriteString(fmt.Sprintf("<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", x1, y1, x2, y2))
		}
		sb.WriteString("</g>\n")
	}

	if len(scene.Path) > 1 {
		var d strings.Builder
		for i, p := range scene.Path {
			x, y := b.project(p.X, p.Y, width, height)
			if i == 0 {
				d.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				d.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		if scene.ClosedPath {
			d.WriteString(" Z")
		}
		sb.WriteString(fmt.Sprintf("<path class=\"route\" fill=\"none\" stroke=\"#444466\" stroke-dasharray=\"4 3\" d=\"%s\"/>\n", d.String()))
	}

	for i, name := range result.Agents {
		color := Palette[i%len(Palette)]
		var d strings.Builder
		n := 0
		for _, f := range result.Frames {
			if i >= len(f.Agents) {
				continue
			}
			p := f.Agents[i].Position
			x, y := b.project(p[0], p[1], width, height)
			if n == 0 {
				d.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				d.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
			n++
		}
		sb.WriteString(fmt.Sprintf("<path class=\"track\" data-agent=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"%s\"/>\n", name, color, d.String()))

		last := result.Frames[len(result.Frames)-1]
		if i < len(last.Agents) {
			x, y := b.project(last.Agents[i].Position[0], last.Agents[i].Position[1], width, height)
			sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n", x, y, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func header(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func newBounds() *bounds {
	return &bounds{minX: math.Inf(1), maxX: math.Inf(-1), minY: math.Inf(1), maxY: math.Inf(-1)}
}

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minY = math.Min(b.minY, y)
	b.maxY = math.Max(b.maxY, y)
}

func (b *bounds) pad(frac float64) {
	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * frac
	b.maxX += rangeX * frac
	b.minY -= rangeY * frac
	b.maxY += rangeY * frac
}

// fit grows the shorter side so the world aspect ratio matches w:h.
func (b *bounds) fit(w, h float64) {
	rangeX, rangeY := b.maxX-b.minX, b.maxY-b.minY
	if rangeX/rangeY > w/h {
		grow := (rangeX*h/w - rangeY) / 2
		b.minY -= grow
		b.maxY += grow
	} else {
		grow := (rangeY*w/h - rangeX) / 2
		b.minX -= grow
		b.maxX += grow
	}
}

func (b *bounds) project(x, y float64, width, height int) (float64, float64) {
	px := (x - b.minX) / (b.maxX - b.minX) * float64(width)
	py := float64(height) - (y-b.minY)/(b.maxY-b.minY)*float64(height)
	return px, py
}
