package biquad

import (
	"math"
	"math/cmplx"
)

// stabilityTol admits pole magnitudes computed as 1 plus a few ulps as
// marginally stable.
const stabilityTol = 1e-12

// PoleZeroPair stores the two poles and two zeros of one biquad section.
type PoleZeroPair struct {
	Poles [2]complex128
	Zeros [2]complex128
}

// Poles returns the z-plane roots of z^2 + A1*z + A2.
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the z-plane roots of B0*z^2 + B1*z + B2.
//
// When B0 is zero the numerator degrades to first order and the missing
// root is reported as cmplx.Inf(). An all-zero numerator has both zeros at
// infinity.
func (c Coefficients) Zeros() [2]complex128 {
	if c.B0 == 0 {
		if c.B1 == 0 {
			return [2]complex128{cmplx.Inf(), cmplx.Inf()}
		}

		return [2]complex128{complex(-c.B2/c.B1, 0), cmplx.Inf()}
	}

	return quadraticRoots(1, c.B1/c.B0, c.B2/c.B0)
}

// Stable reports whether both poles lie inside or on the unit circle.
// Marginal poles (|p| == 1) count as stable.
func (c Coefficients) Stable() bool {
	for _, p := range c.Poles() {
		if !(cmplx.Abs(p) <= 1+stabilityTol) {
			return false
		}
	}

	return true
}

// PoleZeroPair returns both poles and zeros for a single section.
func (c Coefficients) PoleZeroPair() PoleZeroPair {
	return PoleZeroPair{
		Poles: c.Poles(),
		Zeros: c.Zeros(),
	}
}

// PoleZeroPairs returns one pole/zero pair entry per coefficient set.
func PoleZeroPairs(coeffs []Coefficients) []PoleZeroPair {
	out := make([]PoleZeroPair, len(coeffs))
	for i := range coeffs {
		out[i] = coeffs[i].PoleZeroPair()
	}

	return out
}

// PoleZeroPairs returns one pole/zero pair entry per chain section.
func (c *Chain) PoleZeroPairs() []PoleZeroPair {
	out := make([]PoleZeroPair, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].PoleZeroPair()
	}

	return out
}

// Stable reports whether every section of the cascade is stable.
// An empty chain is stable.
func (c *Chain) Stable() bool {
	for i := range c.sections {
		if !c.sections[i].Stable() {
			return false
		}
	}

	return true
}

// SpectralRadius returns the largest pole magnitude of the section.
func (c Coefficients) SpectralRadius() float64 {
	p := c.Poles()
	return math.Max(cmplx.Abs(p[0]), cmplx.Abs(p[1]))
}

// quadraticRoots solves a*z^2 + b*z + c = 0 for a != 0.
func quadraticRoots(a, b, c float64) [2]complex128 {
	sqrtDiscriminant := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)

	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
