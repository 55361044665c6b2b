package testutil

import (
	"math"
	"math/rand"
)

// Sine returns amplitude*sin(2*pi*freqHz*k*sampleTime) for k = 0..n-1.
func Sine(freqHz, sampleTime, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz * sampleTime
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(n, pos int) []float64 {
	out := make([]float64, n)
	if pos >= 0 && pos < n {
		out[pos] = 1
	}
	return out
}

// Step returns a constant error signal of the given amplitude.
func Step(amplitude float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude
	}
	return out
}

// Ramp returns 0, 1, ..., n-1.
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Plant is a single-input single-output system advanced once per sample.
type Plant interface {
	StepScalar(u float64) float64
}

// ClosedLoop runs controller and plant in unity feedback against a constant
// setpoint and returns the plant output after every step. The first error
// is computed against a zero output.
func ClosedLoop(controller func(e float64) float64, plant Plant, setpoint float64, n int) []float64 {
	out := make([]float64, n)
	y := 0.0
	for i := range out {
		y = plant.StepScalar(controller(setpoint - y))
		out[i] = y
	}
	return out
}
