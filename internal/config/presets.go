package config

import (
	"fmt"
	"sort"
)

// Presets holds partial configurations per model. Only the section
// belonging to the model is read when a preset is applied.
var Presets = map[string]map[string]*Config{
	"scatter": {
		"gold": {
			Scatter: ScatterConfig{ProjectileCharge: 2, ProjectileMass: 4, TargetCharge: 79, EnergyMeV: 5, ImpactFm: 10},
		},
		"head_on": {
			Scatter: ScatterConfig{ProjectileCharge: 2, ProjectileMass: 4, TargetCharge: 79, EnergyMeV: 5, ImpactFm: 0},
		},
		"grazing": {
			Scatter: ScatterConfig{ProjectileCharge: 2, ProjectileMass: 4, TargetCharge: 79, EnergyMeV: 5, ImpactFm: 200},
		},
		"aluminium": {
			Scatter: ScatterConfig{ProjectileCharge: 2, ProjectileMass: 4, TargetCharge: 13, EnergyMeV: 7.7, ImpactFm: 5},
		},
	},
	"oscillator": {
		"undamped": {
			Oscillator: OscillatorConfig{Mass: 1, Stiffness: 10, Damping: 0, X0: 1, Duration: 20, Samples: 2048},
		},
		"underdamped": {
			Oscillator: OscillatorConfig{Mass: 1, Stiffness: 10, Damping: 0.5, X0: 1, Duration: 20, Samples: 2048},
		},
		"overdamped": {
			Oscillator: OscillatorConfig{Mass: 1, Stiffness: 10, Damping: 10, X0: 1, Duration: 10, Samples: 1024},
		},
		// driven from rest; the steady response is read off the last third
		"driven": {
			Oscillator: OscillatorConfig{Mass: 1, Stiffness: 10, Damping: 0.5, DriveAmplitude: 10, DriveFrequency: 3, Duration: 50, Samples: 2048},
		},
		"resonance": {
			Oscillator: OscillatorConfig{Mass: 1, Stiffness: 10, Damping: 0.5, DriveAmplitude: 10, DriveFrequency: 3.15, Duration: 50, Samples: 2048},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ListModels() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset copies the model's section of the named preset into c.
func (c *Config) ApplyPreset(model, preset string) error {
	p := GetPreset(model, preset)
	if p == nil {
		return fmt.Errorf("unknown preset %s/%s (available: %v)", model, preset, ListPresets(model))
	}
	switch model {
	case "scatter":
		c.Scatter = p.Scatter
	case "oscillator":
		c.Oscillator = p.Oscillator
	}
	return nil
}
