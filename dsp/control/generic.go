package control

import (
	"github.com/cwbudde/algo-control/dsp/core"
	"github.com/cwbudde/algo-control/dsp/filter/biquad"
	"github.com/cwbudde/algo-control/dsp/filter/design/pid"
)

// Proportional is a limited gain u = Kp*e for any signed element type.
type Proportional[T core.Signed] struct {
	Kp      T
	limiter Limiter[T]
}

// NewProportional returns a proportional controller with gain kp.
func NewProportional[T core.Signed](kp T, limit Limit[T]) (*Proportional[T], error) {
	if err := limit.Validate(); err != nil {
		return nil, err
	}

	return &Proportional[T]{Kp: kp, limiter: Limiter[T]{limit: limit}}, nil
}

// ProcessSample returns the limited effort for error e.
func (p *Proportional[T]) ProcessSample(e T) T {
	return p.limiter.Apply(p.Kp * e)
}

// ProcessBlock replaces every error sample in buf with its effort.
func (p *Proportional[T]) ProcessBlock(buf []T) {
	for i, e := range buf {
		buf[i] = p.ProcessSample(e)
	}
}

// SetLimit replaces the output limit. The clipping state is not reset.
func (p *Proportional[T]) SetLimit(l Limit[T]) error { return p.limiter.SetLimit(l) }

// Clipping reports whether the last output was clamped.
func (p *Proportional[T]) Clipping() bool { return p.limiter.Clipping() }

// Reset is a no-op; a proportional controller has no filter state.
func (p *Proportional[T]) Reset() {}

// PIDOf is a trapezoidal PID running entirely in element type T, realized
// as one biquad section. It has no anti-windup.
//
// For integral types every coefficient is truncated once at construction,
// so parameters should be scaled such that the divisions are exact.
type PIDOf[T core.Signed] struct {
	section *biquad.SectionOf[T]
	limiter Limiter[T]
}

// NewPIDOf synthesizes tc with pid.TrapezoidalOf. A zero Ti disables the
// integral and a zero N disables the derivative filter.
func NewPIDOf[T core.Signed](tc pid.TimeConstantsOf[T], limit Limit[T]) (*PIDOf[T], error) {
	if err := limit.Validate(); err != nil {
		return nil, err
	}

	coeffs, err := pid.TrapezoidalOf(tc)
	if err != nil {
		return nil, err
	}

	return &PIDOf[T]{
		section: biquad.NewSectionOf(coeffs),
		limiter: Limiter[T]{limit: limit},
	}, nil
}

// ProcessSample advances the controller by one error sample.
func (c *PIDOf[T]) ProcessSample(e T) T {
	return c.limiter.Apply(c.section.ProcessSample(e))
}

// SetLimit replaces the output limit. The clipping state is not reset.
func (c *PIDOf[T]) SetLimit(l Limit[T]) error { return c.limiter.SetLimit(l) }

// Clipping reports whether the last output was clamped.
func (c *PIDOf[T]) Clipping() bool { return c.limiter.Clipping() }

// Reset zeroes the filter state.
func (c *PIDOf[T]) Reset() { c.section.Reset() }

// Coefficients returns the synthesized section.
func (c *PIDOf[T]) Coefficients() biquad.CoefficientsOf[T] { return c.section.CoefficientsOf }

// Poles returns the poles of the synthesized section.
func (c *PIDOf[T]) Poles() [2]complex128 { return c.section.Poles() }

// Stable reports whether both poles lie on or inside the unit circle.
func (c *PIDOf[T]) Stable() bool { return c.section.Stable() }
