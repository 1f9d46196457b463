// Package physics provides dynamical system models for simulation.
//
// Each model implements the [dynamo.System] interface, defining the
// differential equations governing the system's evolution:
//
//   - [Coulomb]: planar motion in an inverse-square field of a fixed centre
//   - [Oscillator]: damped spring-mass oscillator
//
// Both models also implement [dynamo.Hamiltonian]. For the damped
// oscillator the energy is the mechanical energy, which decays.
//
// # Energy Conservation
//
// Use [dynamo.Hamiltonian] to monitor energy drift:
//
//	sys := physics.NewCoulomb(0.1)
//	if h, ok := sys.(dynamo.Hamiltonian); ok {
//	    energy := h.Energy(state)
//	}
package physics
