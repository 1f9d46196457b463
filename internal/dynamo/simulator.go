package dynamo

import (
	"context"
	"fmt"
	"math"
)

const (
	safety   = 0.9
	minScale = 0.2
	maxScale = 10.0
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 over [cfg.T0, cfg.T0+cfg.Duration]. In adaptive
// mode only accepted steps are recorded and the last step lands exactly on
// the end time.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if dim := s.sys.StateDim(); dim > 0 && len(x0) != dim {
		return nil, fmt.Errorf("%w: state has %d components, system expects %d", ErrDimensionMismatch, len(x0), dim)
	}
	if cfg.ValidateState && !x0.IsValid() {
		return nil, &SimulationError{Step: 0, Time: cfg.T0, State: x0.Clone(), Wrapped: ErrInvalidState}
	}

	capacity := 64
	if !cfg.Adaptive {
		capacity = int(cfg.Duration/cfg.Dt) + 1
	}
	result := &Result{
		States:  make([]State, 0, capacity),
		Times:   make([]float64, 0, capacity),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := cfg.T0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
	s.observe(x, t)

	initialEnergy := s.computeEnergy(x)

	var err error
	if cfg.Adaptive {
		x, err = s.runAdaptive(ctx, x, cfg, result)
	} else {
		x, err = s.runFixed(ctx, x, cfg, result)
	}
	if err != nil {
		return result, err
	}

	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) runFixed(ctx context.Context, x State, cfg Config, result *Result) (State, error) {
	steps := int(math.Round(cfg.Duration / cfg.Dt))
	t := cfg.T0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return x, ctx.Err()
		default:
		}

		newX := s.integrator.Step(s.sys, x, t, cfg.Dt)
		if cfg.ValidateState && !newX.IsValid() {
			return x, &SimulationError{Step: i, Time: t, State: x, Wrapped: ErrInvalidState}
		}

		x = newX
		t = cfg.T0 + float64(i+1)*cfg.Dt
		s.accept(x, t, result)
	}
	return x, nil
}

func (s *Simulator) runAdaptive(ctx context.Context, x State, cfg Config, result *Result) (State, error) {
	tEnd := cfg.T0 + cfg.Duration
	t := cfg.T0
	dt := cfg.Dt
	if cfg.MaxDt > 0 {
		dt = math.Min(dt, cfg.MaxDt)
	}

	for attempts := 0; t < tEnd; attempts++ {
		select {
		case <-ctx.Done():
			return x, ctx.Err()
		default:
		}

		if cfg.MaxSteps > 0 && attempts >= cfg.MaxSteps {
			return x, &SimulationError{Step: result.StepsTaken, Time: t, State: x, Wrapped: ErrMaxSteps}
		}

		last := false
		if t+dt >= tEnd {
			dt = tEnd - t
			last = true
		}

		newX, errNorm, dtNext := s.trialStep(x, t, dt, cfg.Tolerance)

		if errNorm > 1 || !newX.IsValid() {
			result.Rejected++
			if !newX.IsValid() {
				dtNext = dt * minScale
			}
			if dtNext < cfg.MinDt {
				return x, &SimulationError{Step: result.StepsTaken, Time: t, State: x, Wrapped: ErrStepTooSmall}
			}
			dt = dtNext
			continue
		}

		x = newX
		if last {
			t = tEnd
		} else {
			t += dt
		}
		s.accept(x, t, result)

		dt = dtNext
		if cfg.MaxDt > 0 {
			dt = math.Min(dt, cfg.MaxDt)
		}
	}
	return x, nil
}

func (s *Simulator) accept(x State, t float64, result *Result) {
	result.StepsTaken++
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)
	s.observe(x, t)
}

func (s *Simulator) observe(x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}

// trialStep uses the integrator's embedded estimate when it has one and
// falls back to step doubling otherwise. For a method of order p the two
// half steps differ from the full step by about (2^p - 1) times their own
// local error.
func (s *Simulator) trialStep(x State, t, dt float64, tol Tolerance) (State, float64, float64) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		return adaptive.StepAdaptive(s.sys, x, t, dt, tol)
	}

	order := StepOrder(s.integrator)
	x1 := s.integrator.Step(s.sys, x, t, dt)
	xHalf := s.integrator.Step(s.sys, x, t, dt/2)
	x2 := s.integrator.Step(s.sys, xHalf, t+dt/2, dt/2)

	errEst := x2.Sub(x1).Scale(1 / (math.Pow(2, float64(order)) - 1))
	errNorm := tol.ErrorNorm(x, x2, errEst)
	return x2, errNorm, NextStep(dt, errNorm, order)
}

// NextStep proposes the size of the following step for a method whose
// error estimate is of the given order.
func NextStep(dt, errNorm float64, order int) float64 {
	if errNorm == 0 {
		return dt * maxScale
	}
	scale := safety * math.Pow(errNorm, -1/float64(order+1))
	if errNorm > 1 {
		return dt * math.Max(minScale, scale)
	}
	return dt * math.Min(maxScale, math.Max(1, scale))
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Adaptive && (cfg.Tolerance.Rel <= 0 || cfg.Tolerance.Abs < 0) {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrInvalidConfig)
	}
	return nil
}

func (s *Simulator) computeEnergy(x State) float64 {
	if h, ok := s.sys.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// Resample linearly interpolates a result onto n evenly spaced times
// spanning its first and last sample.
func Resample(r *Result, n int) ([]float64, []State) {
	if len(r.Times) == 0 || n <= 0 {
		return nil, nil
	}
	if n == 1 || len(r.Times) == 1 {
		return []float64{r.Times[0]}, []State{r.States[0].Clone()}
	}

	t0, t1 := r.Times[0], r.Times[len(r.Times)-1]
	times := make([]float64, n)
	states := make([]State, n)

	j := 0
	for i := 0; i < n; i++ {
		t := t0 + (t1-t0)*float64(i)/float64(n-1)
		for j < len(r.Times)-2 && r.Times[j+1] < t {
			j++
		}
		ta, tb := r.Times[j], r.Times[j+1]
		frac := 0.0
		if tb > ta {
			frac = (t - ta) / (tb - ta)
		}
		a, b := r.States[j], r.States[j+1]
		st := make(State, len(a))
		for k := range a {
			st[k] = a[k] + frac*(b[k]-a[k])
		}
		times[i] = t
		states[i] = st
	}
	return times, states
}
