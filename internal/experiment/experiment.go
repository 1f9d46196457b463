package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Config struct {
	Model      string
	Integrator string
	InitState  []float64
	Params     map[string]float64
	Sim        dynamo.Config
}

// Experiment resolves a model and integrator by name and runs them with
// the registry's default metrics attached.
type Experiment struct {
	cfg       Config
	simulator *dynamo.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(r *Registry) error {
	sys, err := r.GetModel(e.cfg.Model, e.cfg.Params)
	if err != nil {
		return err
	}
	integ, err := r.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.simulator = dynamo.New(sys, integ)
	for _, m := range r.DefaultMetrics(e.cfg.Model, sys) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := make(dynamo.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	return e.simulator.Run(ctx, x0, e.cfg.Sim)
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}
