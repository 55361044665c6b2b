package spectrum_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-control/dsp/filter/biquad"
	"github.com/cwbudde/algo-control/dsp/spectrum"
)

func ExampleMagnitude() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i}
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%.1f %.1f %.1f\n", mag[0], mag[1], mag[2])
	// Output:
	// 1.0 1.0 1.0
}

func ExampleUnwrapPhase() {
	wrapped := []float64{2.8, -2.7, -2.6}
	unwrapped := spectrum.UnwrapPhase(wrapped)
	fmt.Printf("%.3f %.3f %.3f\n", unwrapped[0], unwrapped[1], unwrapped[2])
	// Output:
	// 2.800 3.583 3.683
}

func ExampleProbe() {
	// One-pole low-pass with unity DC gain.
	lp := biquad.NewSection(biquad.Coefficients{B0: 0.5, A1: -0.5})

	h, _ := spectrum.Probe(lp, 10, 0.01, 50, 100)
	fmt.Printf("|H(10 Hz)| = %.3f\n", cmplx.Abs(h))
	// Output:
	// |H(10 Hz)| = 0.753
}
