package scatter

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/constants"
)

const (
	// StartFactor places the projectile this many impact parameters upstream.
	StartFactor = 20.0

	// HeadOnStart is the upstream distance used when the impact parameter
	// is at or below HeadOnThreshold.
	HeadOnStart     = 2e-13                // [m]
	HeadOnThreshold = constants.Femtometre // [m]
)

var ErrInvalidParameters = errors.New("scatter: invalid parameters")

// Parameters describe one scattering computation. The zero value is not
// valid; build one with NewParameters or Alpha.
type Parameters struct {
	ProjectileCharge int     // multiples of e
	TargetCharge     int     // multiples of e
	ProjectileMass   float64 // [kg]
	KineticEnergy    float64 // [J]
	ImpactParameter  float64 // [m]
}

func NewParameters(projectileZ, targetZ int, mass, energy, impact float64) (Parameters, error) {
	p := Parameters{
		ProjectileCharge: projectileZ,
		TargetCharge:     targetZ,
		ProjectileMass:   mass,
		KineticEnergy:    energy,
		ImpactParameter:  impact,
	}
	if err := p.Validate(); err != nil {
		return Parameters{}, err
	}
	return p, nil
}

// Alpha builds parameters for an alpha particle (Z = 2, four proton
// masses) with energy in MeV and impact parameter in femtometres.
func Alpha(targetZ int, energyMeV, impactFm float64) (Parameters, error) {
	return NewParameters(
		constants.AlphaCharge,
		targetZ,
		constants.AlphaMass,
		energyMeV*constants.MeV,
		impactFm*constants.Femtometre,
	)
}

func (p Parameters) Validate() error {
	switch {
	case p.ProjectileCharge <= 0:
		return fmt.Errorf("%w: projectile charge must be positive, got %d", ErrInvalidParameters, p.ProjectileCharge)
	case p.TargetCharge <= 0:
		return fmt.Errorf("%w: target charge must be positive, got %d", ErrInvalidParameters, p.TargetCharge)
	case !(p.ProjectileMass > 0) || math.IsInf(p.ProjectileMass, 0):
		return fmt.Errorf("%w: projectile mass must be positive, got %g", ErrInvalidParameters, p.ProjectileMass)
	case !(p.KineticEnergy > 0) || math.IsInf(p.KineticEnergy, 0):
		return fmt.Errorf("%w: kinetic energy must be positive, got %g", ErrInvalidParameters, p.KineticEnergy)
	case !(p.ImpactParameter >= 0) || math.IsInf(p.ImpactParameter, 0):
		return fmt.Errorf("%w: impact parameter must be non-negative, got %g", ErrInvalidParameters, p.ImpactParameter)
	}
	return nil
}

// CoulombConstant is k*Z1*Z2*e^2 [J m].
func (p Parameters) CoulombConstant() float64 {
	q1 := float64(p.ProjectileCharge) * constants.ElementaryCharge
	q2 := float64(p.TargetCharge) * constants.ElementaryCharge
	return constants.Coulomb * q1 * q2
}

// InitialSpeed solves E = m v^2 / 2 for v [m/s].
func (p Parameters) InitialSpeed() float64 {
	return math.Sqrt(2 * p.KineticEnergy / p.ProjectileMass)
}

// StartDistance is how far upstream of the target the projectile starts.
func (p Parameters) StartDistance() float64 {
	if p.ImpactParameter > HeadOnThreshold {
		return StartFactor * p.ImpactParameter
	}
	return HeadOnStart
}

// Horizon is the integration time span: the time to cross twice the
// starting distance at the initial speed. It does not detect whether the
// projectile has actually left the interaction region.
func (p Parameters) Horizon() float64 {
	return 2 * p.StartDistance() / p.InitialSpeed()
}

// CollisionDiameter is K/E, the head-on distance of closest approach [m].
func (p Parameters) CollisionDiameter() float64 {
	return p.CoulombConstant() / p.KineticEnergy
}

func (p Parameters) String() string {
	return fmt.Sprintf("Z1=%d Z2=%d E=%.4g MeV b=%.4g fm",
		p.ProjectileCharge, p.TargetCharge,
		p.KineticEnergy/constants.MeV, p.ImpactParameter/constants.Femtometre)
}
