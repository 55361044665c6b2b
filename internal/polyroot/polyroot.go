// Package polyroot provides polynomial root finding and the factorisation of
// real polynomials into real second-order factors, shared by the cascade
// designers.
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// Quad is a monic real factor z^2 + C1*z + C2. A first-order factor z + C1
// has C2 = 0 and Linear set.
type Quad struct {
	C1, C2 float64
	Linear bool
}

// Factor splits the real polynomial coeff[0]*z^n + ... + coeff[n] into
// monic real factors. Complex roots are grouped with their conjugates,
// real roots are paired in ascending order, and an odd real root is
// returned as a trailing linear factor. The leading coefficient is not part
// of the result.
func Factor(coeff []float64) ([]Quad, error) {
	if len(coeff) == 0 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	for _, c := range coeff {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, ErrDegeneratePolynomial
		}
	}

	if len(coeff) == 1 {
		return nil, nil
	}

	cc := make([]complex128, len(coeff))
	for i, c := range coeff {
		cc[i] = complex(c, 0)
	}

	roots, err := DurandKerner(cc)
	if err != nil {
		return nil, err
	}

	pairs, odd, err := PairRoots(roots)
	if err != nil {
		return nil, err
	}

	out := make([]Quad, 0, len(pairs)+1)
	for _, p := range pairs {
		c1, c2, err := QuadFromRoots(p)
		if err != nil {
			return nil, err
		}

		out = append(out, Quad{C1: c1, C2: c2})
	}

	if odd != nil {
		out = append(out, Quad{C1: -*odd, Linear: true})
	}

	return out, nil
}

// QuadFromRoots expands a conjugate or real root pair into the monic
// coefficients of (z - r1)(z - r2) = z^2 + c1*z + c2.
func QuadFromRoots(pair [2]complex128) (c1, c2 float64, err error) {
	r1, r2 := pair[0], pair[1]

	if !IsConjugate(r1, r2, ConjugateTol) && !(isReal(r1) && isReal(r2)) {
		return 0, 0, ErrDegeneratePolynomial
	}

	sum := r1 + r2
	prod := r1 * r2

	return -real(sum), real(prod), nil
}

// PairRoots groups roots into conjugate pairs and real pairs. Real roots
// are sorted ascending and paired neighbour by neighbour; if their count is
// odd the largest one is returned separately.
func PairRoots(roots []complex128) (pairs [][2]complex128, odd *float64, err error) {
	var reals []float64
	var cplx []complex128

	for _, r := range roots {
		if isReal(r) {
			reals = append(reals, real(r))
		} else {
			cplx = append(cplx, r)
		}
	}

	cp, err := PairConjugates(cplx)
	if err != nil {
		return nil, nil, err
	}

	sort.Float64s(reals)

	pairs = make([][2]complex128, 0, len(cp)+len(reals)/2)
	pairs = append(pairs, cp...)

	for i := 0; i+1 < len(reals); i += 2 {
		pairs = append(pairs, [2]complex128{complex(reals[i], 0), complex(reals[i+1], 0)})
	}

	if len(reals)%2 == 1 {
		last := reals[len(reals)-1]
		odd = &last
	}

	return pairs, odd, nil
}

// PairConjugates groups a slice of complex roots into conjugate pairs. For
// each unused root, it finds the closest match to the expected conjugate and
// validates the pairing within ConjugateTol.
func PairConjugates(roots []complex128) ([][2]complex128, error) {
	used := make([]bool, len(roots))
	pairs := make([][2]complex128, 0, len(roots)/2)

	for i := range roots {
		if used[i] {
			continue
		}

		root := roots[i]
		conj := cmplx.Conj(root)
		best := -1
		bestDist := math.MaxFloat64

		for j := range roots {
			if i == j || used[j] {
				continue
			}

			if d := cmplx.Abs(roots[j] - conj); d < bestDist {
				bestDist = d
				best = j
			}
		}

		if best == -1 || !IsConjugate(root, roots[best], ConjugateTol) {
			return nil, ErrDegeneratePolynomial
		}

		used[i] = true
		used[best] = true
		pairs = append(pairs, [2]complex128{root, roots[best]})
	}

	return pairs, nil
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
//
//nolint:cyclop
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
	}

	radius := 0.0
	for i := 1; i <= n; i++ {
		if r := cmplx.Abs(norm[i]); r > radius {
			radius = r
		}
	}

	if radius < 1 {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.3
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = complex(r*math.Cos(angle), r*math.Sin(angle))
	}

	const (
		maxIter = 500
		tol     = 1e-12
	)

	for range maxIter {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < tol {
			return polish(roots), nil
		}
	}

	maxResidual := 0.0
	for _, r := range roots {
		if res := cmplx.Abs(PolyEval(norm, r)); res > maxResidual {
			maxResidual = res
		}
	}

	if maxResidual < 1e-6 {
		return polish(roots), nil
	}

	return nil, ErrDegeneratePolynomial
}

// polish snaps imaginary parts that are numerically zero.
func polish(roots []complex128) []complex128 {
	for i, r := range roots {
		if math.Abs(imag(r)) <= ConjugateTol*math.Max(1, math.Abs(real(r))) {
			roots[i] = complex(real(r), 0)
		}
	}

	return roots
}

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// PolyMul multiplies two real polynomials given in the same power order.
func PolyMul(p, q []float64) []float64 {
	if len(p) == 0 || len(q) == 0 {
		return nil
	}

	out := make([]float64, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			out[i+j] += a * b
		}
	}

	return out
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

func isReal(r complex128) bool {
	return imag(r) == 0
}
