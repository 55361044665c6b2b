package pid

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/core"
	"github.com/cwbudde/algo-control/dsp/filter/biquad"
)

// TimeConstantsOf is the time-constant form for an arbitrary signed element
// type. Integral types have no infinity, so a zero Ti disables the integral
// action and a zero N removes the derivative filter.
type TimeConstantsOf[T core.Signed] struct {
	Kp, Ti, Td, N, Ts T
}

// TrapezoidalOf synthesizes the trapezoidal PID section directly in T.
// For integer T every product and quotient is evaluated in integer
// arithmetic, left to right, so results truncate exactly as the
// expressions are written.
func TrapezoidalOf[T core.Signed](tc TimeConstantsOf[T]) (biquad.CoefficientsOf[T], error) {
	if tc.Ts <= 0 {
		return biquad.CoefficientsOf[T]{}, fmt.Errorf("Ts=%v: %w", tc.Ts, ErrSampleTime)
	}

	if tc.Ti < 0 {
		return biquad.CoefficientsOf[T]{}, fmt.Errorf("Ti=%v: %w", tc.Ti, ErrIntegralTime)
	}

	if tc.Td < 0 {
		return biquad.CoefficientsOf[T]{}, fmt.Errorf("Td=%v: %w", tc.Td, ErrDerivativeTime)
	}

	if tc.N < 0 {
		return biquad.CoefficientsOf[T]{}, fmt.Errorf("N=%v: %w", tc.N, ErrFilterRatio)
	}

	kp, ti, td, n, ts := tc.Kp, tc.Ti, tc.Td, tc.N, tc.Ts

	// over returns x/d, or zero when d disables the term.
	over := func(x, d T) T {
		if d == 0 {
			return 0
		}

		return x / d
	}

	tdN4 := over(4*td, n)
	tdN2 := over(2*td, n)
	tsTs := over(ts*ts, ti)
	cross := over(over(2*td*ts, ti), n)

	den2 := tdN4 + 2*ts
	den1 := tdN2 + ts

	return biquad.CoefficientsOf[T]{
		B0: (kp * (tdN4 + cross + tsTs + 4*td + 2*ts)) / den2,
		B1: -(kp * (-tsTs + tdN4 + 4*td)) / den1,
		B2: (kp * (tdN4 - cross + tsTs + 4*td - 2*ts)) / den2,
		A1: -tdN4 / den1,
		A2: (tdN2 - ts) / den1,
	}, nil
}
