package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-control/dsp/filter/biquad"
	"github.com/cwbudde/algo-control/internal/polyroot"
)

// ErrInvalidTransferFunction is returned when a transfer function cannot be
// factored into second-order sections.
var ErrInvalidTransferFunction = errors.New("design: invalid transfer function")

// Cascade factors the discrete transfer function
//
//	H(z) = (b[0] + b[1] z^-1 + ... + b[m] z^-m) / (a[0] + a[1] z^-1 + ... + a[n] z^-n)
//
// into second-order sections. Roots of numerator and denominator are
// grouped into conjugate or real pairs, and an odd order leaves one
// first-order section at the end. The overall gain b[0]/a[0] is applied to
// the first section. b[0] and a[0] must be non-zero.
func Cascade(b, a []float64) ([]biquad.Coefficients, error) {
	if len(b) == 0 || len(a) == 0 || b[0] == 0 || a[0] == 0 {
		return nil, fmt.Errorf("leading coefficients must be non-zero: %w", ErrInvalidTransferFunction)
	}

	// Pad to a common length so both polynomials in z have the same degree;
	// trailing zeros become roots at the origin.
	n := max(len(b), len(a))
	num := make([]float64, n)
	den := make([]float64, n)
	copy(num, b)
	copy(den, a)

	gain := b[0] / a[0]
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		return nil, fmt.Errorf("gain %v: %w", gain, ErrInvalidTransferFunction)
	}

	zeros, err := polyroot.Factor(num)
	if err != nil {
		return nil, fmt.Errorf("numerator: %w", errors.Join(ErrInvalidTransferFunction, err))
	}

	poles, err := polyroot.Factor(den)
	if err != nil {
		return nil, fmt.Errorf("denominator: %w", errors.Join(ErrInvalidTransferFunction, err))
	}

	if len(zeros) != len(poles) || (len(zeros) > 0 && zeros[len(zeros)-1].Linear != poles[len(poles)-1].Linear) {
		return nil, fmt.Errorf("numerator and denominator factor layouts differ: %w", ErrInvalidTransferFunction)
	}

	if len(poles) == 0 {
		return []biquad.Coefficients{{B0: gain}}, nil
	}

	sections := make([]biquad.Coefficients, len(poles))
	for i := range poles {
		sections[i] = biquad.Coefficients{
			B0: 1,
			B1: zeros[i].C1,
			B2: zeros[i].C2,
			A1: poles[i].C1,
			A2: poles[i].C2,
		}
	}

	sections[0].B0 *= gain
	sections[0].B1 *= gain
	sections[0].B2 *= gain

	return sections, nil
}

// Expand multiplies a cascade back into a single transfer function and
// returns its numerator and denominator in powers of z^-1, with a[0] = 1.
func Expand(sections []biquad.Coefficients) (b, a []float64) {
	b = []float64{1}
	a = []float64{1}

	for _, s := range sections {
		b = polyroot.PolyMul(b, []float64{s.B0, s.B1, s.B2})
		a = polyroot.PolyMul(a, []float64{1, s.A1, s.A2})
	}

	return b, a
}
