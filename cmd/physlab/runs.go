package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/constants"
	"github.com/san-kum/physlab/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	runs, err := openStore().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tINTEG\tSUMMARY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			summary(run.Model, run.Params, run.Metrics),
		)
	}
	return w.Flush()
}

func summary(model string, params, metrics map[string]float64) string {
	switch model {
	case "scatter":
		return fmt.Sprintf("Z2=%g E=%gMeV b=%gfm theta=%.2fdeg",
			params["target_charge"], params["energy_mev"], params["impact_fm"], metrics["deflection_deg"])
	case "oscillator":
		if params["drive_amplitude"] != 0 {
			return fmt.Sprintf("k=%g b=%g F0=%g wd=%g A=%.3fm",
				params["stiffness"], params["damping"], params["drive_amplitude"], params["drive_frequency"], metrics["steady_amplitude_m"])
		}
		return fmt.Sprintf("k=%g b=%g f=%.3fHz",
			params["stiffness"], params["damping"], metrics["dominant_frequency_hz"])
	}
	return ""
}

func plotRun(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	runID := args[0]
	st := openStore()

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "model: %s\n", meta.Model)
	fmt.Fprintf(out, "samples: %d\n\n", len(states))

	if meta.Model == "scatter" && len(states[0]) >= 2 {
		xs := analysis.Component(states, 0)
		ys := analysis.Component(states, 1)
		for i := range xs {
			xs[i] /= constants.Femtometre
			ys[i] /= constants.Femtometre
		}
		fmt.Fprint(out, viz.PathCanvas(xs, ys, viz.DefaultWidth, viz.DefaultHeight+4))
		fmt.Fprintln(out)
	}
	if meta.Model == "oscillator" && len(states[0]) >= 2 {
		fmt.Fprintln(out, viz.Subtle.Render("phase portrait v(x)"))
		fmt.Fprint(out, viz.PhaseCanvas(analysis.NewPhasePortrait(states, 0, 1), viz.DefaultWidth/2, viz.DefaultHeight))
		fmt.Fprintln(out)
	}

	for idx := range states[0] {
		caption := fmt.Sprintf("x%d", idx)
		if idx < len(meta.Columns) {
			caption = meta.Columns[idx]
		}
		fmt.Fprintln(out, viz.Series(analysis.Component(states, idx), caption+" vs time", viz.DefaultWidth, 10))
		fmt.Fprintln(out)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	models := config.ListModels()
	if len(args) == 1 {
		models = args
	}
	for _, model := range models {
		presets := config.ListPresets(model)
		if len(presets) == 0 {
			fmt.Fprintf(out, "no presets for model: %s\n", model)
			continue
		}
		fmt.Fprintf(out, "presets for %s:\n", model)
		for _, p := range presets {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	return nil
}
