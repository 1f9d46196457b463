package physics

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

// Coulomb moves a single particle in the field of a fixed centre at the
// origin. State is (x, y, vx, vy); the acceleration is Strength*r/|r|^3,
// so a positive Strength repels. Strength is the force constant divided
// by the particle mass, in whatever units the state is expressed in.
type Coulomb struct {
	Strength float64
}

func NewCoulomb(strength float64) *Coulomb {
	return &Coulomb{Strength: strength}
}

func (c *Coulomb) StateDim() int { return 4 }

func (c *Coulomb) Derive(x dynamo.State, t float64) dynamo.State {
	px, py := x[0], x[1]
	r := math.Hypot(px, py)
	fOverR := c.Strength / (r * r * r)

	return dynamo.State{
		x[2],
		x[3],
		fOverR * px,
		fOverR * py,
	}
}

// Energy is kinetic plus potential energy per unit mass.
func (c *Coulomb) Energy(x dynamo.State) float64 {
	r := math.Hypot(x[0], x[1])
	return 0.5*(x[2]*x[2]+x[3]*x[3]) + c.Strength/r
}

// AngularMomentum is the z component of r x v per unit mass.
func (c *Coulomb) AngularMomentum(x dynamo.State) float64 {
	return x[0]*x[3] - x[1]*x[2]
}

func (c *Coulomb) GetParams() map[string]float64 {
	return map[string]float64{"strength": c.Strength}
}
