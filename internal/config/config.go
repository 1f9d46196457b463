package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/constants"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/scatter"
)

const (
	DefaultDataDir    = "runs"
	DefaultIntegrator = "rk45"
	DefaultTargetZ    = 79
	DefaultEnergyMeV  = 5.0
	DefaultImpactFm   = 10.0
	DefaultDuration   = 10.0
	DefaultSamples    = 1024
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	DataDir    string           `yaml:"data_dir"`
	Solver     SolverConfig     `yaml:"solver"`
	Scatter    ScatterConfig    `yaml:"scatter"`
	Oscillator OscillatorConfig `yaml:"oscillator"`
}

// SolverConfig tolerances and steps are in the reduced units the
// trajectory integrator works in.
type SolverConfig struct {
	Integrator string  `yaml:"integrator"`
	RelTol     float64 `yaml:"rtol"`
	AbsTol     float64 `yaml:"atol"`
	MaxSteps   int     `yaml:"max_steps"`
	InitialDt  float64 `yaml:"initial_dt"`
	MaxDt      float64 `yaml:"max_dt"`
}

type ScatterConfig struct {
	ProjectileCharge int     `yaml:"projectile_charge"`
	ProjectileMass   float64 `yaml:"projectile_mass"` // proton masses
	TargetCharge     int     `yaml:"target_charge"`
	EnergyMeV        float64 `yaml:"energy_mev"`
	ImpactFm         float64 `yaml:"impact_fm"`
}

// OscillatorConfig describes the spring-mass run. A zero drive amplitude
// gives the free oscillator; drive_frequency is angular [rad/s].
type OscillatorConfig struct {
	Mass           float64 `yaml:"mass"`
	Stiffness      float64 `yaml:"stiffness"`
	Damping        float64 `yaml:"damping"`
	DriveAmplitude float64 `yaml:"drive_amplitude"`
	DriveFrequency float64 `yaml:"drive_frequency"`
	X0             float64 `yaml:"x0"`
	V0             float64 `yaml:"v0"`
	Duration       float64 `yaml:"duration"`
	Samples        int     `yaml:"samples"`
}

func DefaultConfig() *Config {
	opts := scatter.DefaultOptions()
	return &Config{
		DataDir: DefaultDataDir,
		Solver: SolverConfig{
			Integrator: opts.Integrator,
			RelTol:     opts.RelTol,
			AbsTol:     opts.AbsTol,
			MaxSteps:   opts.MaxSteps,
			InitialDt:  opts.InitialStep,
			MaxDt:      opts.MaxStep,
		},
		Scatter: ScatterConfig{
			ProjectileCharge: constants.AlphaCharge,
			ProjectileMass:   4,
			TargetCharge:     DefaultTargetZ,
			EnergyMeV:        DefaultEnergyMeV,
			ImpactFm:         DefaultImpactFm,
		},
		Oscillator: OscillatorConfig{
			Mass:      1.0,
			Stiffness: 10.0,
			Damping:   0.5,
			// drive is off until an amplitude is set
			DriveFrequency: 3.0,
			X0:             1.0,
			Duration:       DefaultDuration,
			Samples:        DefaultSamples,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := Merge(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge overlays the keys present in the file at path onto cfg and
// validates the result.
func Merge(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	known := false
	for _, name := range experiment.NewRegistry().ListIntegrators() {
		if name == c.Solver.Integrator {
			known = true
		}
	}
	switch {
	case !known:
		return fmt.Errorf("%w: unknown integrator %q", ErrInvalid, c.Solver.Integrator)
	case c.Solver.RelTol <= 0 || c.Solver.AbsTol < 0:
		return fmt.Errorf("%w: tolerances must be positive", ErrInvalid)
	case c.Solver.MaxSteps <= 0:
		return fmt.Errorf("%w: max_steps must be positive", ErrInvalid)
	case c.Oscillator.Mass <= 0 || c.Oscillator.Stiffness <= 0 || c.Oscillator.Damping < 0:
		return fmt.Errorf("%w: oscillator needs positive mass and stiffness and non-negative damping", ErrInvalid)
	case c.Oscillator.DriveFrequency < 0 || math.IsNaN(c.Oscillator.DriveAmplitude) || math.IsInf(c.Oscillator.DriveAmplitude, 0):
		return fmt.Errorf("%w: oscillator drive needs a finite amplitude and a non-negative frequency", ErrInvalid)
	case c.Oscillator.Duration <= 0 || c.Oscillator.Samples < 2:
		return fmt.Errorf("%w: oscillator needs a positive duration and at least 2 samples", ErrInvalid)
	}
	if _, err := c.ScatterParameters(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func (c *Config) ScatterParameters() (scatter.Parameters, error) {
	s := c.Scatter
	return scatter.NewParameters(
		s.ProjectileCharge,
		s.TargetCharge,
		s.ProjectileMass*constants.ProtonMass,
		s.EnergyMeV*constants.MeV,
		s.ImpactFm*constants.Femtometre,
	)
}

func (c *Config) SolverOptions() scatter.Options {
	return scatter.Options{
		Integrator:  c.Solver.Integrator,
		RelTol:      c.Solver.RelTol,
		AbsTol:      c.Solver.AbsTol,
		MaxSteps:    c.Solver.MaxSteps,
		InitialStep: c.Solver.InitialDt,
		MaxStep:     c.Solver.MaxDt,
	}
}

func (c *Config) OscillatorParams() map[string]float64 {
	return map[string]float64{
		"mass":      c.Oscillator.Mass,
		"stiffness": c.Oscillator.Stiffness,
		"damping":   c.Oscillator.Damping,

		"drive_amplitude": c.Oscillator.DriveAmplitude,
		"drive_frequency": c.Oscillator.DriveFrequency,
	}
}

func (c *Config) OscillatorState() []float64 {
	return []float64{c.Oscillator.X0, c.Oscillator.V0}
}
