package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/integrators"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
)

type Registry struct {
	models      map[string]func(map[string]float64) (dynamo.System, error)
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(map[string]float64) (dynamo.System, error)),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.models["coulomb"] = func(params map[string]float64) (dynamo.System, error) {
		return physics.NewCoulomb(params["strength"]), nil
	}
	r.models["oscillator"] = newOscillator

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }
	r.integrators["verlet"] = func() dynamo.Integrator { return integrators.NewVerlet() }
	r.integrators["leapfrog"] = func() dynamo.Integrator { return integrators.NewLeapfrog() }

	return r
}

func (r *Registry) GetModel(name string, params map[string]float64) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	sys, err := fn(params)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	return sys, nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	return sortedKeys(r.models)
}

func (r *Registry) ListIntegrators() []string {
	return sortedKeys(r.integrators)
}

func (r *Registry) DefaultMetrics(model string, sys dynamo.System) []dynamo.Metric {
	var ms []dynamo.Metric
	if h, ok := sys.(dynamo.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergyDrift(h))
	}
	switch model {
	case "coulomb":
		ms = append(ms, metrics.NewMinRadius())
	case "oscillator":
		ms = append(ms, metrics.NewExtent("amplitude", 0))
	}
	return ms
}

// newOscillator starts from the default oscillator and applies every
// parameter given, so omitted keys keep their defaults and explicit values
// are validated.
func newOscillator(params map[string]float64) (dynamo.System, error) {
	o := physics.NewOscillator(physics.DefaultMass, physics.DefaultStiffness, physics.DefaultDamping)
	for _, name := range sortedKeys(params) {
		if err := o.SetParam(name, params[name]); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
