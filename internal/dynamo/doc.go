// Package dynamo provides core simulation primitives for ordinary differential
// equations.
//
// The package defines the fundamental interfaces and types shared by the
// physics models and the integrators:
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator
//   - [AdaptiveIntegrator]: integrator with an embedded error estimate
//   - [Simulator]: orchestrates fixed-step and adaptive runs
//
// # Example
//
//	sys := physics.NewOscillator(1, 10, 0.5)
//	s := dynamo.New(sys, integrators.NewRK45())
//	result, _ := s.Run(ctx, dynamo.State{2, 0}, dynamo.AdaptiveConfig(20))
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: integrators keep scratch
// buffers between steps. Build one Simulator per goroutine.
package dynamo
