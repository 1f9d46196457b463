package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2, 3}
	b := State{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}
}

func TestTolerance_ErrorNorm(t *testing.T) {
	tol := Tolerance{Rel: 1e-3, Abs: 1e-6}

	if got := tol.ErrorNorm(State{1}, State{1}, State{0}); got != 0 {
		t.Errorf("zero error should give zero norm, got %g", got)
	}

	// error exactly at the bound on every component
	x := State{2, -4}
	bound := State{1e-6 + 2e-3, 1e-6 + 4e-3}
	if got := tol.ErrorNorm(x, x, bound); math.Abs(got-1) > 1e-12 {
		t.Errorf("error at bound should give norm 1, got %g", got)
	}
}

func TestNextStep(t *testing.T) {
	if got := NextStep(0.1, 0, 4); got != 0.1*maxScale {
		t.Errorf("zero error should grow by max scale, got %g", got)
	}
	if got := NextStep(0.1, 1e6, 4); got != 0.1*minScale {
		t.Errorf("huge error should shrink by min scale, got %g", got)
	}
	if got := NextStep(0.1, 2, 4); got >= 0.1 {
		t.Errorf("rejected step should shrink, got %g", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("DefaultConfig has invalid Dt")
	}
	if cfg.Duration <= 0 {
		t.Error("DefaultConfig has invalid Duration")
	}
	if cfg.Tolerance.Rel <= 0 {
		t.Error("DefaultConfig has invalid Tolerance")
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Time: 1.5, Step: 150, Wrapped: ErrStepTooSmall}
	expected := "step 150 (t=1.5): dynamo: adaptive timestep below minimum"
	if err.Error() != expected {
		t.Errorf("SimulationError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Error("SimulationError should unwrap to its cause")
	}
}
