package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	integrator string
	rtol       float64
	atol       float64
	maxSteps   int
	maxDt      float64

	projectileZ    int
	projectileMass float64
	targetZ        int
	energyMeV      float64
	impactFm       float64

	save    bool
	pngPath string

	bMin   float64
	bMax   float64
	points int

	mass      float64
	stiffness float64
	damping   float64
	x0        float64
	v0        float64
	driveF0   float64
	driveW    float64
	oscTime   float64
	samples   int
)

var logger = log.New(io.Discard, "physlab: ", log.LstdFlags)

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "physlab",
		Short:        "small physics models: rutherford scattering and a driven damped oscillator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetOutput(os.Stderr)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	scatterCmd := &cobra.Command{
		Use:   "scatter",
		Short: "integrate one scattering trajectory and compare with the closed-form angle",
		Args:  cobra.NoArgs,
		RunE:  runScatter,
	}
	addSolverFlags(scatterCmd)
	addScatterFlags(scatterCmd)
	scatterCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	scatterCmd.Flags().StringVar(&pngPath, "png", "", "write the trajectory plot to this PNG file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "closed-form deflection against impact parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScatterFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&bMin, "from", 0, "smallest impact parameter (fm)")
	sweepCmd.Flags().Float64Var(&bMax, "to", 100, "largest impact parameter (fm)")
	sweepCmd.Flags().IntVar(&points, "points", 21, "number of impact parameters")
	sweepCmd.Flags().StringVar(&pngPath, "png", "", "write the sweep plot to this PNG file")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator]...",
		Short: "compare integrators on the same scattering run",
		RunE:  runCompare,
	}
	addSolverFlags(compareCmd)
	addScatterFlags(compareCmd)

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive scattering explorer",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	addSolverFlags(exploreCmd)
	addScatterFlags(exploreCmd)

	oscillatorCmd := &cobra.Command{
		Use:   "oscillator",
		Short: "integrate a damped, optionally driven, harmonic oscillator",
		Args:  cobra.NoArgs,
		RunE:  runOscillator,
	}
	addSolverFlags(oscillatorCmd)
	addOscillatorFlags(oscillatorCmd)
	oscillatorCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return openStore().ExportJSON(cmd.OutOrStdout(), args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return openStore().ExportCSV(cmd.OutOrStdout(), args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(scatterCmd, sweepCmd, compareCmd, exploreCmd, oscillatorCmd,
		listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolverFlags(cmd *cobra.Command) {
	def := config.DefaultConfig().Solver
	cmd.Flags().StringVar(&integrator, "integrator", def.Integrator, "integrator (euler, rk4, rk45, verlet, leapfrog)")
	cmd.Flags().Float64Var(&rtol, "rtol", def.RelTol, "relative tolerance")
	cmd.Flags().Float64Var(&atol, "atol", def.AbsTol, "absolute tolerance")
	cmd.Flags().IntVar(&maxSteps, "max-steps", def.MaxSteps, "step attempt limit")
	cmd.Flags().Float64Var(&maxDt, "max-dt", def.MaxDt, "largest step")
}

func addScatterFlags(cmd *cobra.Command) {
	def := config.DefaultConfig().Scatter
	cmd.Flags().IntVar(&projectileZ, "z1", def.ProjectileCharge, "projectile charge number")
	cmd.Flags().Float64Var(&projectileMass, "mass-u", def.ProjectileMass, "projectile mass in proton masses")
	cmd.Flags().IntVar(&targetZ, "z2", def.TargetCharge, "target charge number")
	cmd.Flags().Float64Var(&energyMeV, "energy", def.EnergyMeV, "kinetic energy (MeV)")
	cmd.Flags().Float64Var(&impactFm, "impact", def.ImpactFm, "impact parameter (fm)")
}

func addOscillatorFlags(cmd *cobra.Command) {
	def := config.DefaultConfig().Oscillator
	cmd.Flags().Float64Var(&mass, "mass", def.Mass, "mass (kg)")
	cmd.Flags().Float64Var(&stiffness, "k", def.Stiffness, "spring constant (N/m)")
	cmd.Flags().Float64Var(&damping, "b", def.Damping, "damping coefficient (kg/s)")
	cmd.Flags().Float64Var(&driveF0, "f0", def.DriveAmplitude, "drive force amplitude (N), 0 for a free oscillator")
	cmd.Flags().Float64Var(&driveW, "wd", def.DriveFrequency, "drive angular frequency (rad/s)")
	cmd.Flags().Float64Var(&x0, "x0", def.X0, "initial displacement (m)")
	cmd.Flags().Float64Var(&v0, "v0", def.V0, "initial velocity (m/s)")
	cmd.Flags().Float64Var(&oscTime, "time", def.Duration, "duration (s)")
	cmd.Flags().IntVar(&samples, "samples", def.Samples, "uniform samples for plotting and analysis")
}

// loadConfig resolves presets, then the config file, then flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if err := cfg.ApplyPreset(model, preset); err != nil {
			return nil, err
		}
		logger.Printf("applied preset %s/%s", model, preset)
	}

	if configFile != "" {
		if err := config.Merge(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger.Printf("loaded config %s", configFile)
	}

	if !cmd.Flags().Changed("data") && cfg.DataDir != "" {
		dataDir = cfg.DataDir
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Solver.Integrator = integrator
	}
	if flags.Changed("rtol") {
		cfg.Solver.RelTol = rtol
	}
	if flags.Changed("atol") {
		cfg.Solver.AbsTol = atol
	}
	if flags.Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}
	if flags.Changed("max-dt") {
		cfg.Solver.MaxDt = maxDt
	}

	if flags.Changed("z1") {
		cfg.Scatter.ProjectileCharge = projectileZ
	}
	if flags.Changed("mass-u") {
		cfg.Scatter.ProjectileMass = projectileMass
	}
	if flags.Changed("z2") {
		cfg.Scatter.TargetCharge = targetZ
	}
	if flags.Changed("energy") {
		cfg.Scatter.EnergyMeV = energyMeV
	}
	if flags.Changed("impact") {
		cfg.Scatter.ImpactFm = impactFm
	}

	if flags.Changed("mass") {
		cfg.Oscillator.Mass = mass
	}
	if flags.Changed("k") {
		cfg.Oscillator.Stiffness = stiffness
	}
	if flags.Changed("b") {
		cfg.Oscillator.Damping = damping
	}
	if flags.Changed("f0") {
		cfg.Oscillator.DriveAmplitude = driveF0
	}
	if flags.Changed("wd") {
		cfg.Oscillator.DriveFrequency = driveW
	}
	if flags.Changed("x0") {
		cfg.Oscillator.X0 = x0
	}
	if flags.Changed("v0") {
		cfg.Oscillator.V0 = v0
	}
	if flags.Changed("time") {
		cfg.Oscillator.Duration = oscTime
	}
	if flags.Changed("samples") {
		cfg.Oscillator.Samples = samples
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
