package analysis

import (
	"math"

	"github.com/san-kum/physlab/internal/dynamo"
)

// DominantFrequency returns the frequency [Hz] of the strongest spectral
// bin above DC for samples spaced dt apart. The mean is removed first.
// Resolution is one bin, 1/(N dt) after padding to a power of two.
func DominantFrequency(samples []float64, dt float64) float64 {
	if len(samples) < 4 || dt <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	centred := make([]float64, len(samples))
	for i, v := range samples {
		centred[i] = v - mean
	}

	padded := PadPow2(centred)
	ps := PowerSpectrum(padded)

	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[best] || best == 0 {
			best = i
		}
	}
	if best == 0 || ps[best] == 0 {
		return 0
	}
	return float64(best) / (float64(len(padded)) * dt)
}

// Crossings returns the times at which values rises through level,
// linearly interpolated between samples.
func Crossings(times, values []float64, level float64) []float64 {
	var out []float64
	for i := 1; i < len(values) && i < len(times); i++ {
		prev, curr := values[i-1], values[i]
		if prev < level && curr >= level {
			frac := (level - prev) / (curr - prev)
			out = append(out, times[i-1]+frac*(times[i]-times[i-1]))
		}
	}
	return out
}

// MeanPeriod is the average spacing of successive upward crossings of
// level, or 0 with fewer than two crossings.
func MeanPeriod(times, values []float64, level float64) float64 {
	c := Crossings(times, values, level)
	if len(c) < 2 {
		return 0
	}
	return (c[len(c)-1] - c[0]) / float64(len(c)-1)
}

// SteadyAmplitude is the largest |value| over the final third of samples,
// where the transient of a driven run has died out.
func SteadyAmplitude(samples []float64) float64 {
	peak := 0.0
	for _, v := range samples[len(samples)*2/3:] {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}

// Component extracts state component idx from every state.
func Component(states []dynamo.State, idx int) []float64 {
	out := make([]float64, len(states))
	for i, s := range states {
		if idx < len(s) {
			out[i] = s[idx]
		}
	}
	return out
}
