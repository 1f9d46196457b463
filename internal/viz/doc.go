// Package viz renders scattering and oscillator runs.
//
// Terminal output:
//
//   - [Series]: asciigraph line plot of one signal
//   - [SweepGraph]: deflection against impact parameter
//   - [TrajectoryCanvas]: Braille plot of the path with the target at the origin
//   - [Metrics]: lipgloss-styled name/value listing
//
// Image output goes through gonum/plot:
//
//	p, err := viz.TrajectoryPlot(outcome)
//	if err != nil {
//	    return err
//	}
//	return viz.SavePNG("gold.png", p)
package viz
