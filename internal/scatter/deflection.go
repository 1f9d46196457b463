package scatter

import "math"

// Result is the closed-form scattering angle.
type Result struct {
	Angle   float64 // [rad]
	Degrees float64
	HeadOn  bool
}

// Deflection inverts b = K/(2E) cot(theta/2) for theta. A zero impact
// parameter is reported as an exact 180 degree reflection since the
// cotangent form is singular there.
func Deflection(p Parameters) Result {
	if p.ImpactParameter == 0 {
		return Result{Angle: math.Pi, Degrees: 180, HeadOn: true}
	}

	cotHalf := 2 * p.KineticEnergy * p.ImpactParameter / p.CoulombConstant()
	theta := 2 * math.Atan(1/cotHalf)
	return Result{Angle: theta, Degrees: theta * 180 / math.Pi}
}

// ClosestApproach is the distance of closest approach on the exact
// hyperbolic orbit: d/2 + sqrt((d/2)^2 + b^2) with d = K/E.
func ClosestApproach(p Parameters) float64 {
	halfD := p.CollisionDiameter() / 2
	return halfD + math.Hypot(halfD, p.ImpactParameter)
}

type SweepPoint struct {
	Impact float64 // [m]
	Result
}

// Sweep evaluates Deflection for each impact parameter, keeping every
// other field of p.
func Sweep(p Parameters, impacts []float64) []SweepPoint {
	points := make([]SweepPoint, 0, len(impacts))
	for _, b := range impacts {
		q := p
		q.ImpactParameter = b
		points = append(points, SweepPoint{Impact: b, Result: Deflection(q)})
	}
	return points
}

// LinearImpacts returns n impact parameters evenly spaced over [from, to].
func LinearImpacts(from, to float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{from}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = from + (to-from)*float64(i)/float64(n-1)
	}
	return out
}
