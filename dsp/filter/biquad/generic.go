package biquad

import "github.com/cwbudde/algo-control/dsp/core"

// CoefficientsOf is Coefficients for an arbitrary signed element type,
// typically a fixed-point integer representation.
type CoefficientsOf[T core.Signed] struct {
	B0, B1, B2 T
	A1, A2     T
}

// Float64 widens the coefficients for analysis.
func (c CoefficientsOf[T]) Float64() Coefficients {
	return Coefficients{
		B0: float64(c.B0),
		B1: float64(c.B1),
		B2: float64(c.B2),
		A1: float64(c.A1),
		A2: float64(c.A2),
	}
}

// SectionOf runs the Direct Form II Transposed recursion in the element
// type T. For integer T all arithmetic wraps as Go integer arithmetic does;
// the caller chooses coefficient scaling so that intermediate values fit.
type SectionOf[T core.Signed] struct {
	CoefficientsOf[T]

	d0, d1 T
}

// NewSectionOf returns a SectionOf with zero state.
func NewSectionOf[T core.Signed](c CoefficientsOf[T]) *SectionOf[T] {
	return &SectionOf[T]{CoefficientsOf: c}
}

// ProcessSample filters one input sample.
func (s *SectionOf[T]) ProcessSample(x T) T {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *SectionOf[T]) ProcessBlock(buf []T) {
	for i, x := range buf {
		buf[i] = s.ProcessSample(x)
	}
}

// Reset zeroes the delay line.
func (s *SectionOf[T]) Reset() {
	s.d0, s.d1 = 0, 0
}

// State returns [d0, d1].
func (s *SectionOf[T]) State() [2]T {
	return [2]T{s.d0, s.d1}
}

// SetState restores a saved delay line.
func (s *SectionOf[T]) SetState(state [2]T) {
	s.d0, s.d1 = state[0], state[1]
}

// Poles returns the section poles, computed in float64.
func (c CoefficientsOf[T]) Poles() [2]complex128 { return c.Float64().Poles() }

// Zeros returns the section zeros, computed in float64.
func (c CoefficientsOf[T]) Zeros() [2]complex128 { return c.Float64().Zeros() }

// Stable reports whether both poles lie inside or on the unit circle.
func (c CoefficientsOf[T]) Stable() bool { return c.Float64().Stable() }
