package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/physlab/internal/dynamo"
)

func sine(freq, dt float64, n int) ([]float64, []float64) {
	times := make([]float64, n)
	values := make([]float64, n)
	for i := range values {
		times[i] = float64(i) * dt
		values[i] = math.Sin(2 * math.Pi * freq * times[i])
	}
	return times, values
}

func TestFFTImpulse(t *testing.T) {
	data := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	for k, c := range FFT(data) {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d = %v, want 1", k, c)
		}
	}
}

func TestPadPow2(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {1, 1}, {3, 4}, {8, 8}, {9, 16}}
	for _, tt := range tests {
		if got := len(PadPow2(make([]float64, tt.in))); got != tt.want {
			t.Errorf("PadPow2(len %d) has len %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	_, values := sine(5, dt, 1024)
	got := DominantFrequency(values, dt)
	resolution := 1 / (1024 * dt)
	if math.Abs(got-5) > resolution {
		t.Errorf("DominantFrequency = %.3f Hz, want 5 +/- %.3f", got, resolution)
	}
}

func TestDominantFrequencyIgnoresOffset(t *testing.T) {
	dt := 0.01
	_, values := sine(2, dt, 512)
	for i := range values {
		values[i] += 100
	}
	got := DominantFrequency(values, dt)
	if math.Abs(got-2) > 1/(512*dt) {
		t.Errorf("DominantFrequency = %.3f Hz, want 2", got)
	}
}

func TestDominantFrequencyDegenerate(t *testing.T) {
	if f := DominantFrequency([]float64{1, 2}, 0.1); f != 0 {
		t.Errorf("short input: got %g", f)
	}
	if f := DominantFrequency(make([]float64, 64), 0.1); f != 0 {
		t.Errorf("flat input: got %g", f)
	}
}

func TestMeanPeriod(t *testing.T) {
	times, values := sine(0.5, 0.001, 10501)
	period := MeanPeriod(times, values, 0)
	if math.Abs(period-2) > 1e-3 {
		t.Errorf("MeanPeriod = %g, want 2", period)
	}
	if got := len(Crossings(times, values, 0)); got != 5 {
		t.Errorf("Crossings = %d, want 5", got)
	}
}

func TestComponent(t *testing.T) {
	states := []dynamo.State{{1, 2}, {3, 4}}
	got := Component(states, 1)
	if got[0] != 2 || got[1] != 4 {
		t.Errorf("Component = %v", got)
	}
}

func TestSteadyAmplitude(t *testing.T) {
	// decaying transient followed by a unit oscillation
	_, values := sine(1, 0.01, 900)
	for i := range values {
		if i < 300 {
			values[i] *= 5
		}
	}

	if a := SteadyAmplitude(values); math.Abs(a-1) > 1e-3 {
		t.Errorf("SteadyAmplitude = %g, want 1", a)
	}
	if SteadyAmplitude(nil) != 0 {
		t.Error("expected 0 for no samples")
	}
}

func TestPhasePortrait(t *testing.T) {
	states := []dynamo.State{{1, 0}, {0, -2}, {-1, 0}, {0, 2}}

	p := NewPhasePortrait(states, 0, 1)
	if p == nil || len(p.Points) != 4 {
		t.Fatalf("unexpected portrait %+v", p)
	}
	if p.Points[1] != (Point{X: 0, Y: -2}) {
		t.Errorf("point 1 = %+v", p.Points[1])
	}

	minX, maxX, minY, maxY := p.Bounds()
	if minX != -1 || maxX != 1 || minY != -2 || maxY != 2 {
		t.Errorf("bounds = %g %g %g %g", minX, maxX, minY, maxY)
	}

	xs, ys := p.XY()
	if xs[2] != -1 || ys[3] != 2 {
		t.Errorf("XY mismatch: %v %v", xs, ys)
	}

	if NewPhasePortrait(states, 0, 2) != nil {
		t.Error("expected nil for an index outside the state")
	}
}
