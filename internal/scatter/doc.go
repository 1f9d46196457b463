// Package scatter simulates classical Coulomb (Rutherford) scattering of a
// charged projectile off a fixed heavy target at the origin.
//
// Two independent computations are offered for the same [Parameters]:
//
//   - [Integrate] numerically integrates the projectile's planar motion with
//     an adaptive Runge-Kutta solver and returns the sampled [Trajectory].
//   - [Deflection] evaluates the closed-form Rutherford angle
//     b = K/(2E) * cot(theta/2).
//
// Neither feeds the other; they are meant to be shown side by side.
// [Compute] bundles both, and [Cache] memoizes it per parameter set.
//
// All quantities are SI unless a name says otherwise (Points reports
// femtometres for plotting).
package scatter
