package metrics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

// MinRadius records the smallest distance from the origin of the planar
// position held in the first two state components.
type MinRadius struct {
	name string
	min  float64
}

func NewMinRadius() *MinRadius {
	return &MinRadius{name: "min_radius", min: math.Inf(1)}
}

func (m *MinRadius) Name() string { return m.name }

func (m *MinRadius) Observe(x dynamo.State, t float64) {
	if len(x) < 2 {
		return
	}
	m.min = math.Min(m.min, math.Hypot(x[0], x[1]))
}

func (m *MinRadius) Value() float64 {
	if math.IsInf(m.min, 1) {
		return 0
	}
	return m.min
}

func (m *MinRadius) Reset() { m.min = math.Inf(1) }

// Extent is the largest |x[index]| seen.
type Extent struct {
	name  string
	index int
	max   float64
}

func NewExtent(name string, index int) *Extent {
	return &Extent{name: name, index: index}
}

func (e *Extent) Name() string { return e.name }

func (e *Extent) Observe(x dynamo.State, t float64) {
	if e.index < len(x) {
		e.max = math.Max(e.max, math.Abs(x[e.index]))
	}
}

func (e *Extent) Value() float64 { return e.max }

func (e *Extent) Reset() { e.max = 0 }
