// Package analysis extracts frequencies, periods and phase portraits from
// sampled runs.
//
//   - [FFT]: radix-2 discrete Fourier transform
//   - [PowerSpectrum]: magnitude of the positive-frequency half
//   - [DominantFrequency]: strongest non-zero frequency of a uniformly sampled signal
//   - [Crossings]: interpolated times at which a signal rises through a level
//   - [SteadyAmplitude]: peak of the last third of a driven response
//   - [PhasePortrait]: a run projected onto two state components
//
// The oscillator command resamples an adaptive run onto a uniform grid
// before calling into this package:
//
//	times, states := dynamo.Resample(result, 1024)
//	f := analysis.DominantFrequency(analysis.Component(states, 0), times[1]-times[0])
package analysis
