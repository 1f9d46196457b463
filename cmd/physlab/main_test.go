package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func scatterFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "scatter"}
	cmd.Flags().StringVar(&dataDir, "data", "runs", "")
	addSolverFlags(cmd)
	addScatterFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func resetGlobals(t *testing.T) {
	t.Cleanup(func() {
		preset, configFile, dataDir = "", "", ""
	})
}

func TestLoadConfigPrecedence(t *testing.T) {
	resetGlobals(t)
	path := filepath.Join(t.TempDir(), "physlab.yaml")
	data := "data_dir: elsewhere\nscatter:\n  energy_mev: 9\n  impact_fm: 7\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	preset = "aluminium"
	configFile = path
	cfg, err := loadConfig(scatterFlags(t, "--impact", "3"), "scatter")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Scatter.TargetCharge != 13 {
		t.Errorf("target = %d, want 13 from the preset", cfg.Scatter.TargetCharge)
	}
	if cfg.Scatter.EnergyMeV != 9 {
		t.Errorf("energy = %g, want 9 from the config file", cfg.Scatter.EnergyMeV)
	}
	if cfg.Scatter.ImpactFm != 3 {
		t.Errorf("impact = %g, want 3 from the flag", cfg.Scatter.ImpactFm)
	}
	if dataDir != "elsewhere" {
		t.Errorf("data dir = %q, want the config value", dataDir)
	}
}

func TestLoadConfigRejectsBadFlag(t *testing.T) {
	resetGlobals(t)
	if _, err := loadConfig(scatterFlags(t, "--integrator", "magic"), "scatter"); err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	resetGlobals(t)
	preset = "lead"
	if _, err := loadConfig(scatterFlags(t), "scatter"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSummary(t *testing.T) {
	got := summary("scatter",
		map[string]float64{"target_charge": 79, "energy_mev": 5, "impact_fm": 10},
		map[string]float64{"deflection_deg": 132.546})
	if got != "Z2=79 E=5MeV b=10fm theta=132.55deg" {
		t.Errorf("summary = %q", got)
	}
	if summary("unknown", nil, nil) != "" {
		t.Error("unknown model should have no summary")
	}
}

func oscillatorCommand(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "oscillator", RunE: runOscillator}
	cmd.Flags().StringVar(&dataDir, "data", "runs", "")
	addSolverFlags(cmd)
	addOscillatorFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	return cmd, &buf
}

func TestRunOscillatorPeriod(t *testing.T) {
	resetGlobals(t)
	cmd, buf := oscillatorCommand(t, "--b", "0", "--time", "20", "--samples", "2048")

	if err := runOscillator(cmd, nil); err != nil {
		t.Fatalf("oscillator command failed: %v", err)
	}
	for _, want := range []string{"measured_period_s", "natural_frequency_rad_s", "phase portrait v(x)"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output is missing %q", want)
		}
	}

	cfg, err := loadConfig(cmd, "oscillator")
	if err != nil {
		t.Fatal(err)
	}
	run, err := simulateOscillator(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := 2 * math.Pi / math.Sqrt(cfg.Oscillator.Stiffness/cfg.Oscillator.Mass)
	got := run.metrics["measured_period_s"]
	if math.Abs(got-want)/want > 1e-3 {
		t.Errorf("measured period = %g s, want 2pi/w0 = %g s", got, want)
	}
}

func TestRunOscillatorResonance(t *testing.T) {
	resetGlobals(t)
	preset = "resonance"
	cmd, buf := oscillatorCommand(t)

	if err := runOscillator(cmd, nil); err != nil {
		t.Fatalf("oscillator command failed: %v", err)
	}
	if !strings.Contains(buf.String(), "near resonance") {
		t.Error("expected the near resonance notice")
	}

	cfg, err := loadConfig(cmd, "oscillator")
	if err != nil {
		t.Fatal(err)
	}
	run, err := simulateOscillator(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !run.nearResonance() {
		t.Errorf("wd = %g should be within %g of w_res = %g",
			run.model.DriveFrequency, resonanceWindow, run.model.ResonanceFrequency())
	}

	measured, predicted := run.metrics["steady_amplitude_m"], run.metrics["predicted_amplitude_m"]
	if math.Abs(measured-predicted)/predicted > 0.01 {
		t.Errorf("steady amplitude = %g m, predicted %g m", measured, predicted)
	}
}

func TestRunOscillatorDetunedDrive(t *testing.T) {
	resetGlobals(t)
	cmd, buf := oscillatorCommand(t, "--f0", "10", "--wd", "1", "--x0", "0", "--time", "60")

	if err := runOscillator(cmd, nil); err != nil {
		t.Fatalf("oscillator command failed: %v", err)
	}
	if strings.Contains(buf.String(), "near resonance") {
		t.Error("a drive at 1 rad/s is far from resonance")
	}
	if !strings.Contains(buf.String(), "steady_amplitude_m") {
		t.Error("driven run should report the steady amplitude")
	}
}
