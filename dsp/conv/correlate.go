package conv

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoExcitation is returned when an identification input carries no
// energy.
var ErrNoExcitation = errors.New("conv: input has no excitation")

// Correlate computes the full cross-correlation of a and b.
// The result has length len(a) + len(b) - 1 and index k corresponds to
// lag k - (len(b) - 1).
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	reversed := slices.Clone(b)
	slices.Reverse(reversed)

	return Convolve(a, reversed)
}

// AutoCorrelate computes the auto-correlation of a, with zero lag at index
// len(a) - 1.
func AutoCorrelate(a []float64) ([]float64, error) {
	return Correlate(a, a)
}

// LagFromIndex converts a correlation index to a lag for a second signal
// of length lenB.
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// IndexFromLag converts a lag to a correlation index for a second signal
// of length lenB.
func IndexFromLag(lag, lenB int) int {
	return lag + (lenB - 1)
}

// EstimateImpulseResponse estimates the first n taps of the impulse
// response of a system driven by input u with measured output y.
//
// For a white input the cross-correlation of y and u at lag k, divided by
// the input energy, converges to the impulse response tap h[k]. A seeded
// ±1 PRBS is the usual excitation. u and y must have equal length.
func EstimateImpulseResponse(u, y []float64, n int) ([]float64, error) {
	if len(u) == 0 || n <= 0 {
		return nil, ErrEmptyInput
	}

	if len(u) != len(y) {
		return nil, fmt.Errorf("%w: input %d, output %d", ErrLengthMismatch, len(u), len(y))
	}

	energy := 0.0
	for _, v := range u {
		energy += v * v
	}

	if energy == 0 {
		return nil, ErrNoExcitation
	}

	ryu, err := Correlate(y, u)
	if err != nil {
		return nil, err
	}

	zero := IndexFromLag(0, len(u))
	h := make([]float64, n)
	for k := range h {
		if zero+k < len(ryu) {
			h[k] = ryu[zero+k] / energy
		}
	}

	return h, nil
}
