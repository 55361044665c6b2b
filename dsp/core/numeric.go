package core

import "math"

// Signed is the element-type constraint for the generic sample paths.
//
// Only signed types are admitted: the limiter mirrors a magnitude around zero
// and the recursions subtract feedback terms, neither of which is meaningful
// for unsigned arithmetic.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// ClampOf limits value to the inclusive range [min, max] for any Signed
// element type. Swapped bounds are reordered.
func ClampOf[T Signed](value, min, max T) T {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Long zero-input tails of a decaying filter otherwise end up in the
// subnormal range, which is slow on most FPUs.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
