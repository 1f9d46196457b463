package scatter

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/constants"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
)

// Options control the solver. Tolerances apply in reduced units where
// lengths are measured in starting distances and speeds in initial speeds,
// so both positions and velocities are of order one.
type Options struct {
	Integrator  string
	RelTol      float64
	AbsTol      float64
	MaxSteps    int
	InitialStep float64 // reduced time units
	MaxStep     float64 // reduced time units; bounds the spacing of samples
}

func DefaultOptions() Options {
	return Options{
		Integrator:  "rk45",
		RelTol:      1e-6,
		AbsTol:      1e-9,
		MaxSteps:    1_000_000,
		InitialStep: 1e-3,
		MaxStep:     1e-2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Integrator == "" {
		o.Integrator = d.Integrator
	}
	if o.RelTol <= 0 {
		o.RelTol = d.RelTol
	}
	if o.AbsTol <= 0 {
		o.AbsTol = d.AbsTol
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = d.MaxSteps
	}
	if o.InitialStep <= 0 {
		o.InitialStep = d.InitialStep
	}
	if o.MaxStep <= 0 {
		o.MaxStep = d.MaxStep
	}
	return o
}

// Trajectory is the sampled path of one integration run. States are
// (x, y, vx, vy) in SI with the target fixed at the origin.
type Trajectory struct {
	Params      Parameters
	Times       []float64
	States      []dynamo.State
	Steps       int
	Rejected    int
	EnergyDrift float64
	MinRadius   float64
}

// Integrate places the projectile at (-StartDistance, b) moving along +x
// at the initial speed and integrates the Coulomb equations of motion over
// the Horizon.
func Integrate(ctx context.Context, p Parameters, opts Options) (*Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	integ, err := experiment.NewRegistry().GetIntegrator(opts.Integrator)
	if err != nil {
		return nil, err
	}

	length := p.StartDistance()
	speed := p.InitialSpeed()
	unitTime := length / speed

	// a = K/(m r^2) becomes kappa/r'^2 with kappa = K/(m v0^2 L) = K/(2 E L)
	sys := physics.NewCoulomb(p.CoulombConstant() / (2 * p.KineticEnergy * length))
	x0 := dynamo.State{-1, p.ImpactParameter / length, 1, 0}

	cfg := dynamo.AdaptiveConfig(p.Horizon() / unitTime)
	cfg.Dt = opts.InitialStep
	cfg.MaxDt = opts.MaxStep
	cfg.MaxSteps = opts.MaxSteps
	cfg.Tolerance = dynamo.Tolerance{Rel: opts.RelTol, Abs: opts.AbsTol}

	sim := dynamo.New(sys, integ)
	drift := metrics.NewEnergyDrift(sys)
	closest := metrics.NewMinRadius()
	sim.AddMetric(drift)
	sim.AddMetric(closest)

	res, err := sim.Run(ctx, x0, cfg)
	if err != nil {
		return nil, fmt.Errorf("scatter: integrate %v: %w", p, err)
	}

	traj := &Trajectory{
		Params:      p,
		Times:       make([]float64, len(res.Times)),
		States:      make([]dynamo.State, len(res.States)),
		Steps:       res.StepsTaken,
		Rejected:    res.Rejected,
		EnergyDrift: res.Metrics[drift.Name()],
		MinRadius:   res.Metrics[closest.Name()] * length,
	}
	for i, t := range res.Times {
		traj.Times[i] = t * unitTime
	}
	for i, s := range res.States {
		traj.States[i] = dynamo.State{s[0] * length, s[1] * length, s[2] * speed, s[3] * speed}
	}
	return traj, nil
}

func (t *Trajectory) Len() int { return len(t.States) }

// Points returns the path in femtometres for plotting.
func (t *Trajectory) Points() (xs, ys []float64) {
	xs = make([]float64, len(t.States))
	ys = make([]float64, len(t.States))
	for i, s := range t.States {
		xs[i] = s[0] / constants.Femtometre
		ys[i] = s[1] / constants.Femtometre
	}
	return xs, ys
}

// Radii returns the distance from the target at every sample [m].
func (t *Trajectory) Radii() []float64 {
	out := make([]float64, len(t.States))
	for i, s := range t.States {
		out[i] = math.Hypot(s[0], s[1])
	}
	return out
}

// Energy is the total mechanical energy of sample i [J].
func (t *Trajectory) Energy(i int) float64 {
	s := t.States[i]
	kinetic := 0.5 * t.Params.ProjectileMass * (s[2]*s[2] + s[3]*s[3])
	potential := t.Params.CoulombConstant() / math.Hypot(s[0], s[1])
	return kinetic + potential
}

// AngularMomentum is r x v per unit mass of sample i [m^2/s].
func (t *Trajectory) AngularMomentum(i int) float64 {
	s := t.States[i]
	return s[0]*s[3] - s[1]*s[2]
}

// AsymptoticImpact is the impact parameter of the straight line the
// projectile approaches far from the target, recovered from the energy and
// angular momentum of sample i. It is the same for every sample of an
// exact orbit, so comparing the first and last sample checks that the path
// leaves with the offset it arrived with.
func (t *Trajectory) AsymptoticImpact(i int) float64 {
	vInf := math.Sqrt(2 * t.Energy(i) / t.Params.ProjectileMass)
	return math.Abs(t.AngularMomentum(i)) / vInf
}

// ExitHeading is the direction of the final velocity measured from +x
// [rad]. With an approximate horizon it lags the asymptotic angle.
func (t *Trajectory) ExitHeading() float64 {
	if len(t.States) == 0 {
		return 0
	}
	s := t.States[len(t.States)-1]
	return math.Atan2(s[3], s[2])
}
