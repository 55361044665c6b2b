//nolint:funcorder
package biquad

import (
	"strconv"
	"sync"

	"github.com/cwbudde/algo-control/dsp/core"
	archregistry "github.com/cwbudde/algo-control/dsp/filter/biquad/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored.
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II Transposed processing.
//
// A Section is not safe for concurrent use.
type Section struct {
	Coefficients

	d0, d1 float64
}

// blockKernels holds the kernel for first-order sections at index 0 and
// for full second-order sections at index 1.
var (
	blockKernels         [2]archregistry.ProcessBlockFn
	processBlockInitOnce sync.Once
)

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
// Runs in constant time; NaN and Inf propagate through the state.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
//
// First-order sections (B2 = A2 = 0) with a settled second state run a
// single-state kernel. Both state variables are flushed to zero at the end
// of the block once they fall below 1e-30, so long zero-input tails of a
// decaying section do not stay in the subnormal range.
func (s *Section) ProcessBlock(buf []float64) {
	if len(buf) == 0 {
		return
	}

	processBlockInitOnce.Do(initProcessBlockKernel)

	coeffs := archregistry.Coefficients{
		B0: s.B0,
		B1: s.B1,
		B2: s.B2,
		A1: s.A1,
		A2: s.A2,
	}

	kernel := blockKernels[s.order()-1]
	d0, d1 := kernel(coeffs, s.d0, s.d1, buf)
	s.d0, s.d1 = core.FlushDenormals(d0), core.FlushDenormals(d1)
}

// order is 1 when the section can run the first-order kernel.
func (s *Section) order() int {
	if s.B2 == 0 && s.A2 == 0 && s.d1 == 0 {
		return 1
	}

	return 2
}

func initProcessBlockKernel() {
	features := cpu.DetectFeatures()

	for order := 1; order <= 2; order++ {
		entry := archregistry.Global.Lookup(order, features)
		if entry == nil || entry.ProcessBlock == nil {
			panic("biquad: no ProcessBlock kernel registered for order " + strconv.Itoa(order))
		}

		blockKernels[order-1] = entry.ProcessBlock
	}
}

// ProcessBlockTo filters src into dst. Both slices must have the same length.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		y := s.B0*x + s.d0
		s.d0 = s.B1*x - s.A1*y + s.d1
		s.d1 = s.B2*x - s.A2*y
		dst[i] = y
	}
}

// Reset clears the delay line to zero. Coefficients are untouched.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// State returns the current delay-line state [d0, d1].
func (s *Section) State() [2]float64 {
	return [2]float64{s.d0, s.d1}
}

// Prime sets the state as if input x had been applied and output y produced
// forever. The next output for input x is then (B0+B1+B2)*x - (A1+A2)*y,
// which equals y when y is the steady-state response to x. Priming an
// integrator with x = 0 makes it hold y.
func (s *Section) Prime(x, y float64) {
	s.d1 = s.B2*x - s.A2*y
	s.d0 = s.B1*x - s.A1*y + s.d1
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state [2]float64) {
	s.d0 = state[0]
	s.d1 = state[1]
}
