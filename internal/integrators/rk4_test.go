package integrators

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestSymplecticEnergyBounded(t *testing.T) {
	dyn := &harmonicOscillator{}

	for name, integ := range map[string]dynamo.Integrator{
		"verlet":   NewVerlet(),
		"leapfrog": NewLeapfrog(),
	} {
		t.Run(name, func(t *testing.T) {
			x := dynamo.State{1.0, 0.0}
			dt := 0.05
			for i := 0; i < 20000; i++ {
				x = integ.Step(dyn, x, float64(i)*dt, dt)
			}
			if drift := math.Abs(dyn.Energy(x)-0.5) / 0.5; drift > 1e-2 {
				t.Errorf("%s energy drift too high: %e", name, drift)
			}
		})
	}
}

func TestEulerGainsEnergy(t *testing.T) {
	dyn := &harmonicOscillator{}
	integ := NewEuler()

	x := dynamo.State{1.0, 0.0}
	for i := 0; i < 1000; i++ {
		x = integ.Step(dyn, x, float64(i)*0.01, 0.01)
	}

	if dyn.Energy(x) <= 0.5 {
		t.Error("explicit Euler should gain energy on a harmonic oscillator")
	}
}

func TestIntegratorOrders(t *testing.T) {
	tests := []struct {
		name  string
		integ dynamo.Integrator
		want  int
	}{
		{"euler", NewEuler(), 1},
		{"verlet", NewVerlet(), 2},
		{"leapfrog", NewLeapfrog(), 2},
		{"rk4", NewRK4(), 4},
		{"rk45", NewRK45(), 5},
	}

	for _, tt := range tests {
		if got := dynamo.StepOrder(tt.integ); got != tt.want {
			t.Errorf("%s: order = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestStepDoublingScalesWithOrder(t *testing.T) {
	run := func(integ dynamo.Integrator) *dynamo.Result {
		t.Helper()
		sim := dynamo.New(&harmonicOscillator{}, integ)
		result, err := sim.Run(context.Background(), dynamo.State{1, 0}, dynamo.AdaptiveConfig(2*math.Pi))
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return result
	}

	euler := run(NewEuler())
	rk4 := run(NewRK4())

	if rk4.StepsTaken*10 > euler.StepsTaken {
		t.Errorf("rk4 took %d steps, euler %d; expected rk4 to need far fewer", rk4.StepsTaken, euler.StepsTaken)
	}
	if final := rk4.Final(); math.Abs(final[0]-1) > 1e-3 || math.Abs(final[1]) > 1e-3 {
		t.Errorf("rk4 should return to (1, 0) after one period, got %v", final)
	}
	if euler.EnergyDrift > 5e-2 {
		t.Errorf("euler drift %e should stay bounded by the step control", euler.EnergyDrift)
	}
}
