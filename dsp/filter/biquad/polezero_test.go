package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestPoleZeroPair_SecondOrder(t *testing.T) {
	p1 := complex(0.72, 0.19)
	p2 := cmplx.Conj(p1)
	z1 := complex(0.31, 0.44)
	z2 := cmplx.Conj(z1)

	b0 := 2.3
	c := Coefficients{
		B0: b0,
		B1: -b0 * real(z1+z2),
		B2: b0 * real(z1*z2),
		A1: -real(p1 + p2),
		A2: real(p1 * p2),
	}

	pair := c.PoleZeroPair()
	if !unorderedRootsClose(pair.Poles, p1, p2, 1e-12) {
		t.Fatalf("unexpected poles: got=%v want={%v,%v}", pair.Poles, p1, p2)
	}

	if !unorderedRootsClose(pair.Zeros, z1, z2, 1e-12) {
		t.Fatalf("unexpected zeros: got=%v want={%v,%v}", pair.Zeros, z1, z2)
	}
}

func TestZeros_LeadingZeroFallsBackToLinear(t *testing.T) {
	c := Coefficients{B1: 2, B2: -1, A1: -0.5}
	z := c.Zeros()

	if cmplx.Abs(z[0]-0.5) > 1e-12 {
		t.Fatalf("finite zero=%v, want 0.5", z[0])
	}

	if !cmplx.IsInf(z[1]) {
		t.Fatalf("second zero=%v, want infinity", z[1])
	}

	if z := (Coefficients{A1: 0.1}).Zeros(); !cmplx.IsInf(z[0]) || !cmplx.IsInf(z[1]) {
		t.Fatalf("all-zero numerator zeros=%v", z)
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{"smoothing", smoothing(), true},
		{"integrator", Coefficients{B0: 1, A1: -1}, true},
		{"marginal complex", Coefficients{B1: 1, B2: -1, A1: -1, A2: 1}, true},
		{"oscillator at nyquist", Coefficients{B0: 1, A1: 2, A2: 1}, true},
		{"unstable ramp", Coefficients{B0: 1, B1: 2, B2: 3, A1: 1, A2: 2}, false},
		{"just outside", Coefficients{B0: 1, A1: -1.001}, false},
		{"NaN feedback", Coefficients{B0: 1, A1: math.NaN()}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Stable(); got != tt.want {
				t.Fatalf("Stable()=%v, want %v (poles %v)", got, tt.want, tt.c.Poles())
			}
		})
	}
}

func TestSpectralRadius(t *testing.T) {
	c := Coefficients{A1: -1.2, A2: 0.36}
	if r := c.SpectralRadius(); !almostEqual(r, 0.6, 1e-9) {
		t.Fatalf("SpectralRadius=%v, want 0.6", r)
	}
}

func TestPoleZeroPairs_ChainAndSliceAgree(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 1, B1: -0.4, B2: 0.1, A1: -1.2, A2: 0.45},
		{B0: 0.9, B1: 0.2, B2: 0.05, A1: -0.3, A2: 0.08},
	}

	fromSlice := PoleZeroPairs(coeffs)
	fromChain := NewChain(coeffs).PoleZeroPairs()

	if len(fromSlice) != len(coeffs) || len(fromChain) != len(coeffs) {
		t.Fatalf("pair counts slice=%d chain=%d, want %d", len(fromSlice), len(fromChain), len(coeffs))
	}

	for i := range coeffs {
		if !sameRootSet(fromSlice[i].Poles, fromChain[i].Poles, 1e-12) {
			t.Fatalf("section %d poles differ: slice=%v chain=%v", i, fromSlice[i].Poles, fromChain[i].Poles)
		}

		if !sameRootSet(fromSlice[i].Zeros, fromChain[i].Zeros, 1e-12) {
			t.Fatalf("section %d zeros differ: slice=%v chain=%v", i, fromSlice[i].Zeros, fromChain[i].Zeros)
		}
	}
}

func unorderedRootsClose(got [2]complex128, want1, want2 complex128, tol float64) bool {
	return (rootsClose(got[0], want1, tol) && rootsClose(got[1], want2, tol)) ||
		(rootsClose(got[0], want2, tol) && rootsClose(got[1], want1, tol))
}

func sameRootSet(a, b [2]complex128, tol float64) bool {
	return unorderedRootsClose(a, b[0], b[1], tol)
}

func rootsClose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}
