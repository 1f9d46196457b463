package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
	DefaultDamping   = 0.5
)

// Oscillator is a damped mass on a linear spring driven by a harmonic
// force, m a = -k x - b v + F0 cos(wd t), with state (x, v). A zero drive
// amplitude leaves the free oscillator.
type Oscillator struct {
	Mass           float64
	Stiffness      float64
	Damping        float64
	DriveAmplitude float64 // N
	DriveFrequency float64 // rad/s
}

func NewOscillator(mass, stiffness, damping float64) *Oscillator {
	return &Oscillator{Mass: mass, Stiffness: stiffness, Damping: damping}
}

func (o *Oscillator) StateDim() int { return 2 }

// Driven returns a copy of o with the given drive.
func (o *Oscillator) Driven(amplitude, frequency float64) *Oscillator {
	d := *o
	d.DriveAmplitude = amplitude
	d.DriveFrequency = frequency
	return &d
}

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	pos, vel := x[0], x[1]
	force := -o.Damping*vel - o.Stiffness*pos
	if o.DriveAmplitude != 0 {
		force += o.DriveAmplitude * math.Cos(o.DriveFrequency*t)
	}
	return dynamo.State{vel, force / o.Mass}
}

func (o *Oscillator) Energy(x dynamo.State) float64 {
	return 0.5*o.Mass*x[1]*x[1] + 0.5*o.Stiffness*x[0]*x[0]
}

// NaturalFrequency is the undamped angular frequency sqrt(k/m).
func (o *Oscillator) NaturalFrequency() float64 {
	return math.Sqrt(o.Stiffness / o.Mass)
}

// DampingRatio is b / (2 sqrt(k m)); below 1 the motion oscillates.
func (o *Oscillator) DampingRatio() float64 {
	return o.Damping / (2 * math.Sqrt(o.Stiffness*o.Mass))
}

// ResonanceFrequency is sqrt(w0^2 - (b/2m)^2) [rad/s], the frequency of
// the free damped oscillation and the drive frequency the explorer steers
// towards. It is 0 once the damping rate reaches w0.
func (o *Oscillator) ResonanceFrequency() float64 {
	w0 := o.NaturalFrequency()
	gamma := o.Damping / (2 * o.Mass)
	if gamma >= w0 {
		return 0
	}
	return math.Sqrt(w0*w0 - gamma*gamma)
}

// SteadyAmplitude is the amplitude of the particular solution left once
// the transient has decayed, F0/m / sqrt((w0^2 - wd^2)^2 + (b wd/m)^2).
func (o *Oscillator) SteadyAmplitude() float64 {
	if o.DriveAmplitude == 0 {
		return 0
	}
	w0sq := o.Stiffness / o.Mass
	wd := o.DriveFrequency
	detune := w0sq - wd*wd
	friction := o.Damping * wd / o.Mass
	return math.Abs(o.DriveAmplitude) / o.Mass / math.Hypot(detune, friction)
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      o.Mass,
		"stiffness": o.Stiffness,
		"damping":   o.Damping,

		"drive_amplitude": o.DriveAmplitude,
		"drive_frequency": o.DriveFrequency,
	}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		if value <= 0 {
			return fmt.Errorf("mass must be positive, got %g", value)
		}
		o.Mass = value
	case "stiffness":
		if value <= 0 {
			return fmt.Errorf("stiffness must be positive, got %g", value)
		}
		o.Stiffness = value
	case "damping":
		if value < 0 {
			return fmt.Errorf("damping must be non-negative, got %g", value)
		}
		o.Damping = value
	case "drive_amplitude":
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("drive amplitude must be finite, got %g", value)
		}
		o.DriveAmplitude = value
	case "drive_frequency":
		if value < 0 || math.IsInf(value, 0) {
			return fmt.Errorf("drive frequency must be non-negative and finite, got %g", value)
		}
		o.DriveFrequency = value
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
