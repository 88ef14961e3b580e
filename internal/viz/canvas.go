package viz

import (
	"math"
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
	return c
}

// PixelWidth and PixelHeight are the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
func (c *Canvas) Set(x, y int) {
	if col, row, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if col, row, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
		if c.Grid[row][col] < blank {
			c.Grid[row][col] = blank
		}
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	col, row, ok := c.cell(x, y)
	if !ok {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) cell(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return col, row, col < c.Width && row < c.Height
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawDisc fills a small square blob around (x, y).
func (c *Canvas) DrawDisc(x, y, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(x+dx, y+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport maps a world rectangle onto the sub-pixels of a canvas, +Y up.
type Viewport struct {
	MinX, MinY, MaxX, MaxY float64
}

// FitViewport returns the smallest viewport holding every point with a
// margin of pad world units, grown to keep the canvas aspect ratio.
// Braille sub-pixels are roughly square so the ratio is the pixel ratio.
func FitViewport(c *Canvas, pad float64, points ...[2]float64) Viewport {
	v := Viewport{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, p := range points {
		v.MinX = math.Min(v.MinX, p[0])
		v.MaxX = math.Max(v.MaxX, p[0])
		v.MinY = math.Min(v.MinY, p[1])
		v.MaxY = math.Max(v.MaxY, p[1])
	}
	if len(points) == 0 {
		v = Viewport{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	}
	v.MinX -= pad
	v.MinY -= pad
	v.MaxX += pad
	v.MaxY += pad

	w, h := v.MaxX-v.MinX, v.MaxY-v.MinY
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	ratio := float64(c.PixelWidth()) / float64(c.PixelHeight())
	if w/h > ratio {
		grow := (w/ratio - h) / 2
		v.MinY -= grow
		v.MaxY += grow
	} else {
		grow := (h*ratio - w) / 2
		v.MinX -= grow
		v.MaxX += grow
	}
	return v
}

// Project maps world (x, y) to canvas sub-pixels.
func (v Viewport) Project(c *Canvas, x, y float64) (int, int) {
	w, h := v.MaxX-v.MinX, v.MaxY-v.MinY
	px := (x - v.MinX) / w * float64(c.PixelWidth()-1)
	py := (v.MaxY - y) / h * float64(c.PixelHeight()-1)
	return int(math.Round(px)), int(math.Round(py))
}

// Line draws a world-space segment.
func (v Viewport) Line(c *Canvas, x0, y0, x1, y1 float64) {
	ax, ay := v.Project(c, x0, y0)
	bx, by := v.Project(c, x1, y1)
	c.DrawLine(ax, ay, bx, by)
}
