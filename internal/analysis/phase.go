package analysis

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait is a recorded trajectory projected onto two state
// components, usually position against velocity.
type PhasePortrait struct {
	XIndex, YIndex int
	Points         []Point
}

// NewPhasePortrait projects states onto components xIdx and yIdx. It
// returns nil when either index is outside a state.
func NewPhasePortrait(states []dynamo.State, xIdx, yIdx int) *PhasePortrait {
	if xIdx < 0 || yIdx < 0 {
		return nil
	}

	portrait := &PhasePortrait{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, len(states)),
	}
	for _, s := range states {
		if xIdx >= len(s) || yIdx >= len(s) {
			return nil
		}
		portrait.Points = append(portrait.Points, Point{X: s[xIdx], Y: s[yIdx]})
	}
	return portrait
}

// XY splits the points into coordinate slices for plotting.
func (p *PhasePortrait) XY() (xs, ys []float64) {
	xs = make([]float64, len(p.Points))
	ys = make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
	}
	return xs, ys
}

// Bounds is the bounding box of the points, all zero when there are none.
func (p *PhasePortrait) Bounds() (minX, maxX, minY, maxY float64) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = math.Inf(1), math.Inf(-1)
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, pt := range p.Points {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	return minX, maxX, minY, maxY
}
