package viz

import (
	"math"
	"strings"
)

// Braille cells hold a 2x4 dot grid:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille pixel grid of Width x Height cells, so 2*Width by
// 4*Height dots.
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

// Set turns on the dot at (x, y) in dot coordinates.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}
	if c.Grid[row][col] < blank || c.Grid[row][col] > blank+0xff {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Mark replaces the whole cell containing dot (x, y) with r.
func (c *Canvas) Mark(x, y int, r rune) {
	col, row := x/2, y/4
	if x < 0 || y < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] = r
}

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

// Viewport maps world coordinates onto a canvas's dots with y pointing up.
type Viewport struct {
	MinX, MaxX, MinY, MaxY float64
	dotsX, dotsY           int
}

// Fit returns a viewport covering every point plus the extra points,
// padded by 10% on each side.
func Fit(c *Canvas, xs, ys []float64, extra ...[2]float64) Viewport {
	v := Viewport{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		dotsX: c.Width * 2, dotsY: c.Height * 4,
	}
	grow := func(x, y float64) {
		v.MinX, v.MaxX = math.Min(v.MinX, x), math.Max(v.MaxX, x)
		v.MinY, v.MaxY = math.Min(v.MinY, y), math.Max(v.MaxY, y)
	}
	for i := range xs {
		if i < len(ys) {
			grow(xs[i], ys[i])
		}
	}
	for _, p := range extra {
		grow(p[0], p[1])
	}
	if math.IsInf(v.MinX, 0) {
		v.MinX, v.MaxX, v.MinY, v.MaxY = -1, 1, -1, 1
	}

	rangeX, rangeY := v.MaxX-v.MinX, v.MaxY-v.MinY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	v.MinX -= rangeX * 0.1
	v.MaxX += rangeX * 0.1
	v.MinY -= rangeY * 0.1
	v.MaxY += rangeY * 0.1
	return v
}

// Dot converts a world point to dot coordinates.
func (v Viewport) Dot(x, y float64) (int, int) {
	col := int((x - v.MinX) / (v.MaxX - v.MinX) * float64(v.dotsX-1))
	row := v.dotsY - 1 - int((y-v.MinY)/(v.MaxY-v.MinY)*float64(v.dotsY-1))
	return col, row
}
