package biquad

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Errors returned by the coefficient constructors.
var (
	ErrZeroLeading = errors.New("biquad: leading denominator coefficient a0 is zero")
	ErrNonFinite   = errors.New("biquad: non-finite coefficient")
	ErrComplexPoly = errors.New("biquad: root pair does not form a real polynomial")
)

// conjugateTol bounds the imaginary residue accepted when expanding a root
// pair into real polynomial coefficients.
const conjugateTol = 1e-9

// Normalize divides the unnormalized section b0..b2 / a0..a2 through by a0
// and returns the normalized coefficients.
func Normalize(b0, b1, b2, a0, a1, a2 float64) (Coefficients, error) {
	for _, v := range [...]float64{b0, b1, b2, a0, a1, a2} {
		if !core.IsFinite(v) {
			return Coefficients{}, ErrNonFinite
		}
	}

	if a0 == 0 {
		return Coefficients{}, ErrZeroLeading
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}, nil
}

// FromZPK builds coefficients from a zero pair, a pole pair and a gain k:
//
//	H(z) = k * (z - z1)(z - z2) / ((z - p1)(z - p2))
//
// Each pair must be real or complex-conjugate so the expanded polynomials
// have real coefficients.
func FromZPK(zeros, poles [2]complex128, k float64) (Coefficients, error) {
	if !core.IsFinite(k) {
		return Coefficients{}, ErrNonFinite
	}

	b1, b2, err := monicFromRoots(zeros)
	if err != nil {
		return Coefficients{}, fmt.Errorf("zeros %v: %w", zeros, err)
	}

	a1, a2, err := monicFromRoots(poles)
	if err != nil {
		return Coefficients{}, fmt.Errorf("poles %v: %w", poles, err)
	}

	return Coefficients{
		B0: k,
		B1: k * b1,
		B2: k * b2,
		A1: a1,
		A2: a2,
	}, nil
}

// monicFromRoots expands (z - r1)(z - r2) = z^2 + c1*z + c2.
func monicFromRoots(r [2]complex128) (c1, c2 float64, err error) {
	sum := r[0] + r[1]
	prod := r[0] * r[1]

	if math.Abs(imag(sum)) > conjugateTol*math.Max(1, math.Abs(real(sum))) ||
		math.Abs(imag(prod)) > conjugateTol*math.Max(1, math.Abs(real(prod))) {
		return 0, 0, ErrComplexPoly
	}

	c1 = -real(sum)
	c2 = real(prod)
	if !core.IsFinite(c1) || !core.IsFinite(c2) {
		return 0, 0, ErrNonFinite
	}

	return c1, c2, nil
}
