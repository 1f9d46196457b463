package main

import (
	"fmt"
	"math"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/constants"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/scatter"
	"github.com/san-kum/physlab/internal/storage"
	"github.com/san-kum/physlab/internal/tui"
	"github.com/san-kum/physlab/internal/viz"
)

func runScatter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "scatter")
	if err != nil {
		return err
	}
	p, err := cfg.ScatterParameters()
	if err != nil {
		return err
	}
	opts := cfg.SolverOptions()

	logger.Printf("integrating %v with %s (rtol=%g atol=%g)", p, opts.Integrator, opts.RelTol, opts.AbsTol)
	start := time.Now()
	res, err := scatter.Compute(cmd.Context(), p, opts)
	if err != nil {
		return err
	}
	logger.Printf("completed in %v", time.Since(start))

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, viz.Title.Render(p.String()))
	if res.Deflection.HeadOn {
		fmt.Fprintln(out, viz.Warning.Render("head-on: the projectile is reflected straight back (180 deg)"))
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.Metrics(res.Metrics()))
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.TrajectoryCanvas(res.Trajectory, viz.DefaultWidth, viz.DefaultHeight+4))

	if save {
		st := openStore()
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(scatterRun(cfg.Solver.Integrator, res), res.Trajectory.Times, res.Trajectory.States)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nrun id: %s\n", runID)
	}

	if pngPath != "" {
		plt, err := viz.TrajectoryPlot(res)
		if err != nil {
			return err
		}
		if err := viz.SavePNG(pngPath, plt); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", pngPath)
	}
	return nil
}

func scatterRun(integ string, out *scatter.Outcome) storage.RunMetadata {
	p := out.Params
	return storage.RunMetadata{
		Model:      "scatter",
		Integrator: integ,
		Params: map[string]float64{
			"projectile_charge": float64(p.ProjectileCharge),
			"target_charge":     float64(p.TargetCharge),
			"projectile_mass":   p.ProjectileMass,
			"energy_mev":        p.KineticEnergy / constants.MeV,
			"impact_fm":         p.ImpactParameter / constants.Femtometre,
		},
		Columns: []string{"x", "y", "vx", "vy"},
		Metrics: out.Metrics(),
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "scatter")
	if err != nil {
		return err
	}
	p, err := cfg.ScatterParameters()
	if err != nil {
		return err
	}
	if points < 2 || bMax <= bMin || bMin < 0 {
		return fmt.Errorf("sweep needs 0 <= from < to and at least 2 points")
	}

	out := cmd.OutOrStdout()
	sweep := scatter.Sweep(p, scatter.LinearImpacts(bMin*constants.Femtometre, bMax*constants.Femtometre, points))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "B (FM)\tDEFLECTION (DEG)\tCLOSEST APPROACH (FM)")
	for _, sp := range sweep {
		q := p
		q.ImpactParameter = sp.Impact
		fmt.Fprintf(w, "%.3f\t%.4f\t%.3f\n", sp.Impact/constants.Femtometre, sp.Degrees, scatter.ClosestApproach(q)/constants.Femtometre)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.SweepGraph(sweep, viz.DefaultWidth, viz.DefaultHeight))

	if pngPath != "" {
		plt, err := viz.SweepPlot(sweep)
		if err != nil {
			return err
		}
		if err := viz.SavePNG(pngPath, plt); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", pngPath)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "scatter")
	if err != nil {
		return err
	}
	p, err := cfg.ScatterParameters()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	out := cmd.OutOrStdout()
	theory := scatter.Deflection(p)
	fmt.Fprintf(out, "%v\ntheoretical deflection: %.4f deg\n\n", p, theory.Degrees)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tREJECTED\tENERGY DRIFT\tEXIT HEADING (DEG)\tTIME")
	for _, name := range names {
		opts := cfg.SolverOptions()
		opts.Integrator = name

		start := time.Now()
		traj, err := scatter.Integrate(cmd.Context(), p, opts)
		elapsed := time.Since(start)
		if err != nil {
			logger.Printf("%s: %v", name, err)
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%v (%v)\n", name, elapsed, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2e\t%.3f\t%v\n",
			name, traj.Steps, traj.Rejected, traj.EnergyDrift, traj.ExitHeading()*180/math.Pi, elapsed)
	}
	return w.Flush()
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "scatter")
	if err != nil {
		return err
	}
	p, err := cfg.ScatterParameters()
	if err != nil {
		return err
	}
	cache, err := scatter.NewCache(scatter.DefaultCacheSize)
	if err != nil {
		return err
	}
	if err := tui.Run(cache, p, cfg.SolverOptions()); err != nil {
		return err
	}
	hits, misses := cache.Stats()
	logger.Printf("cache: %d hits, %d misses", hits, misses)
	return nil
}

func openStore() *storage.Store {
	return storage.New(dataDir)
}
