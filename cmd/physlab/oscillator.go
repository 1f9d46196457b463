package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/viz"
)

// resonanceWindow is how close [rad/s] the drive has to be to the
// resonance frequency for the run to be flagged as near resonance.
const resonanceWindow = 0.1

type oscillatorRun struct {
	model   *physics.Oscillator
	result  *dynamo.Result
	times   []float64
	states  []dynamo.State
	metrics map[string]float64
}

// nearResonance reports whether a driven run sits within resonanceWindow
// of the resonance frequency.
func (r *oscillatorRun) nearResonance() bool {
	m := r.model
	return m.DriveAmplitude != 0 && math.Abs(m.DriveFrequency-m.ResonanceFrequency()) <= resonanceWindow
}

// simulateOscillator integrates the configured oscillator and resamples it
// onto cfg.Oscillator.Samples evenly spaced times for analysis.
func simulateOscillator(ctx context.Context, cfg *config.Config) (*oscillatorRun, error) {
	oc := cfg.Oscillator

	sim := dynamo.AdaptiveConfig(oc.Duration)
	sim.Tolerance = dynamo.Tolerance{Rel: cfg.Solver.RelTol, Abs: cfg.Solver.AbsTol}
	sim.MaxSteps = cfg.Solver.MaxSteps
	// resolve each sample interval with a few steps at least
	sim.MaxDt = oc.Duration / float64(oc.Samples)

	exp := experiment.New(experiment.Config{
		Model:      "oscillator",
		Integrator: cfg.Solver.Integrator,
		InitState:  cfg.OscillatorState(),
		Params:     cfg.OscillatorParams(),
		Sim:        sim,
	})
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, err
	}

	logger.Printf("integrating oscillator m=%g k=%g b=%g F0=%g wd=%g over %gs with %s",
		oc.Mass, oc.Stiffness, oc.Damping, oc.DriveAmplitude, oc.DriveFrequency, oc.Duration, cfg.Solver.Integrator)
	start := time.Now()
	result, err := exp.Run(ctx)
	if err != nil {
		return nil, err
	}
	logger.Printf("completed in %v, %d steps, %d rejected", time.Since(start), result.StepsTaken, result.Rejected)

	times, states := dynamo.Resample(result, oc.Samples)
	position := analysis.Component(states, 0)
	dt := times[1] - times[0]

	osc := physics.NewOscillator(oc.Mass, oc.Stiffness, oc.Damping).Driven(oc.DriveAmplitude, oc.DriveFrequency)
	metrics := map[string]float64{
		"natural_frequency_rad_s":   osc.NaturalFrequency(),
		"resonance_frequency_rad_s": osc.ResonanceFrequency(),
		"damping_ratio":             osc.DampingRatio(),
		"dominant_frequency_hz":     analysis.DominantFrequency(position, dt),
		"steps":                     float64(result.StepsTaken),
		"rejected":                  float64(result.Rejected),
	}
	if period := analysis.MeanPeriod(times, position, 0); period > 0 {
		metrics["measured_period_s"] = period
	}
	if osc.DriveAmplitude != 0 {
		metrics["steady_amplitude_m"] = analysis.SteadyAmplitude(position)
		metrics["predicted_amplitude_m"] = osc.SteadyAmplitude()
	}
	for name, v := range result.Metrics {
		metrics[name] = v
	}

	return &oscillatorRun{
		model:   osc,
		result:  result,
		times:   times,
		states:  states,
		metrics: metrics,
	}, nil
}

func runOscillator(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "oscillator")
	if err != nil {
		return err
	}
	oc := cfg.Oscillator

	run, err := simulateOscillator(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	title := fmt.Sprintf("oscillator m=%g k=%g b=%g", oc.Mass, oc.Stiffness, oc.Damping)
	if oc.DriveAmplitude != 0 {
		title += fmt.Sprintf(" F0=%g wd=%g", oc.DriveAmplitude, oc.DriveFrequency)
	}
	fmt.Fprintln(out, viz.Title.Render(title))
	if run.nearResonance() {
		fmt.Fprintln(out, viz.Warning.Render("near resonance: the steady amplitude is close to its peak"))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.Metrics(run.metrics))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Series(analysis.Component(run.states, 0), "x(t) [m]", viz.DefaultWidth, viz.DefaultHeight))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Subtle.Render("phase portrait v(x)"))
	fmt.Fprint(out, viz.PhaseCanvas(analysis.NewPhasePortrait(run.states, 0, 1), viz.DefaultWidth/2, viz.DefaultHeight))

	if save {
		st := openStore()
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Model:      "oscillator",
			Integrator: cfg.Solver.Integrator,
			Params: map[string]float64{
				"mass":            oc.Mass,
				"stiffness":       oc.Stiffness,
				"damping":         oc.Damping,
				"drive_amplitude": oc.DriveAmplitude,
				"drive_frequency": oc.DriveFrequency,
				"x0":              oc.X0,
				"v0":              oc.V0,
			},
			Columns: []string{"x", "v"},
			Metrics: run.metrics,
		}, run.times, run.states)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nrun id: %s\n", runID)
	}
	return nil
}
