package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// AdaptiveIntegrator attempts a single step of size dt and reports the
// scaled error norm of that step alongside a proposed next step size.
// A norm <= 1 means the step satisfies tol.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt float64, tol Tolerance) (next State, errNorm, dtNext float64)
}

// Ordered reports the global order of accuracy of an integrator. The
// simulator uses it to scale step doubling estimates and step proposals.
type Ordered interface {
	Order() int
}

// StepOrder is the declared order of integ, or 2 when it declares none.
func StepOrder(integ Integrator) int {
	if o, ok := integ.(Ordered); ok && o.Order() > 0 {
		return o.Order()
	}
	return 2
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

// Tolerance bounds the local error of an adaptive step per component:
// |err_i| <= Abs + Rel*max(|x_i|, |x'_i|).
type Tolerance struct {
	Rel float64
	Abs float64
}

// ErrorNorm is the RMS of the per-component errors scaled by tol.
func (tol Tolerance) ErrorNorm(x, xNew, errEst State) float64 {
	if len(errEst) == 0 {
		return 0
	}
	sum := 0.0
	for i := range errEst {
		sc := tol.Abs + tol.Rel*math.Max(math.Abs(x[i]), math.Abs(xNew[i]))
		r := errEst[i] / sc
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(errEst)))
}

type Config struct {
	T0            float64
	Dt            float64
	Duration      float64
	Tolerance     Tolerance
	MaxDt         float64
	MinDt         float64
	MaxSteps      int
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      10.0,
		Tolerance:     Tolerance{Rel: 1e-6, Abs: 1e-9},
		MaxDt:         0.1,
		MinDt:         1e-12,
		MaxSteps:      1_000_000,
		Adaptive:      false,
		ValidateState: true,
	}
}

// AdaptiveConfig returns an adaptive run over [0, duration] whose first
// trial step is a thousandth of the span.
func AdaptiveConfig(duration float64) Config {
	cfg := DefaultConfig()
	cfg.Adaptive = true
	cfg.Duration = duration
	cfg.Dt = duration * 1e-3
	cfg.MaxDt = duration
	cfg.MinDt = duration * 1e-14
	return cfg
}

type Result struct {
	States      []State
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Rejected    int
}

// Final returns the last recorded state, or nil for an empty result.
func (r *Result) Final() State {
	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}
