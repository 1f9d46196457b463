package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/scatter"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 12
)

// Series plots one signal against sample index.
func Series(data []float64, caption string, width, height int) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// SweepGraph plots deflection in degrees against the sweep's impact
// parameters, which are assumed evenly spaced.
func SweepGraph(points []scatter.SweepPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	degrees := make([]float64, len(points))
	for i, p := range points {
		degrees[i] = p.Degrees
	}
	first, last := points[0].Impact*1e15, points[len(points)-1].Impact*1e15
	caption := fmt.Sprintf("deflection [deg] vs b = %.3g..%.3g fm", first, last)
	return asciigraph.Plot(degrees,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(180),
		asciigraph.Caption(caption),
	)
}

// TrajectoryCanvas draws the path in the scattering plane with the
// target marked at the origin. Width and height are in terminal cells.
func TrajectoryCanvas(t *scatter.Trajectory, width, height int) string {
	if t == nil {
		return PathCanvas(nil, nil, width, height)
	}
	xs, ys := t.Points()
	return PathCanvas(xs, ys, width, height)
}

// PathCanvas joins successive points with lines and marks the origin.
func PathCanvas(xs, ys []float64, width, height int) string {
	c := NewCanvas(width, height)
	n := min(len(xs), len(ys))
	if n == 0 {
		return c.String()
	}

	v := Fit(c, xs, ys, [2]float64{0, 0})

	px, py := v.Dot(xs[0], ys[0])
	for i := 1; i < n; i++ {
		x, y := v.Dot(xs[i], ys[i])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}

	tx, ty := v.Dot(0, 0)
	c.Mark(tx, ty, '●')
	return c.String()
}

// PhaseCanvas draws a phase portrait with dotted axes through the origin
// where they fall inside the view.
func PhaseCanvas(p *analysis.PhasePortrait, width, height int) string {
	c := NewCanvas(width, height)
	if p == nil || len(p.Points) == 0 {
		return c.String()
	}

	xs, ys := p.XY()
	v := Fit(c, xs, ys)

	ox, oy := v.Dot(0, 0)
	if v.MinX <= 0 && v.MaxX >= 0 {
		for y := 0; y < height*4; y += 2 {
			c.Set(ox, y)
		}
	}
	if v.MinY <= 0 && v.MaxY >= 0 {
		for x := 0; x < width*2; x += 2 {
			c.Set(x, oy)
		}
	}

	px, py := v.Dot(xs[0], ys[0])
	for i := 1; i < len(xs); i++ {
		x, y := v.Dot(xs[i], ys[i])
		c.DrawLine(px, py, x, y)
		px, py = x, y
	}
	return c.String()
}
