package scatter

import (
	"context"

	"github.com/san-kum/physlab/internal/constants"
)

// Outcome pairs the integrated trajectory with the closed-form angle
// computed independently for the same parameters.
type Outcome struct {
	Params          Parameters
	Deflection      Result
	ClosestApproach float64 // [m], closed form
	Trajectory      *Trajectory
}

func Compute(ctx context.Context, p Parameters, opts Options) (*Outcome, error) {
	traj, err := Integrate(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Params:          p,
		Deflection:      Deflection(p),
		ClosestApproach: ClosestApproach(p),
		Trajectory:      traj,
	}, nil
}

// Metrics flattens the outcome into named values for storage and display.
func (o *Outcome) Metrics() map[string]float64 {
	m := map[string]float64{
		"deflection_deg":      o.Deflection.Degrees,
		"closest_approach_fm": o.ClosestApproach / constants.Femtometre,
		"start_distance_fm":   o.Params.StartDistance() / constants.Femtometre,
		"horizon_s":           o.Params.Horizon(),
	}
	if t := o.Trajectory; t != nil {
		m["energy_drift"] = t.EnergyDrift
		m["min_radius_fm"] = t.MinRadius / constants.Femtometre
		m["steps"] = float64(t.Steps)
		m["rejected"] = float64(t.Rejected)
	}
	return m
}
