package control

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-control/dsp/filter/biquad"
	"github.com/cwbudde/algo-control/dsp/filter/design/pid"
)

// ErrNoIntegral is returned by Preset for controllers without integral
// action, whose output cannot be held at zero error.
var ErrNoIntegral = errors.New("control: controller has no integral action")

// ErrAntiWindup is returned for an unknown anti-windup policy.
var ErrAntiWindup = errors.New("control: unknown anti-windup policy")

// Kind names the terms a controller is built from.
type Kind int

const (
	P Kind = iota
	PI
	PD
	PID
)

func (k Kind) String() string {
	switch k {
	case P:
		return "P"
	case PI:
		return "PI"
	case PD:
		return "PD"
	case PID:
		return "PID"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func kindOf(p pid.Params) Kind {
	switch i, d := p.HasIntegral(), p.HasDerivative(); {
	case i && d:
		return PID
	case i:
		return PI
	case d:
		return PD
	default:
		return P
	}
}

// Controller is a discrete P, PI, PD or PID controller with a hysteretic
// output limiter.
//
// The transfer function from error to raw effort is the section synthesized
// by pid.Coefficients. With integral action and AntiWindupFreeze the same
// transfer function runs as its parallel split, so the integrator can be
// held while the limiter clips.
type Controller struct {
	params     pid.Params
	method     pid.Method
	kind       Kind
	antiWindup AntiWindup

	coeffs  biquad.Coefficients
	section *biquad.Section

	integrator *biquad.Section
	derivative *biquad.Section

	limiter Limiter[float64]
}

// New builds a controller from gain-form parameters.
func New(p pid.Params, opts ...Option) (*Controller, error) {
	cfg := applyOptions(opts)

	if err := cfg.limit.Validate(); err != nil {
		return nil, err
	}

	if cfg.antiWindup != AntiWindupFreeze && cfg.antiWindup != AntiWindupNone {
		return nil, fmt.Errorf("%d: %w", int(cfg.antiWindup), ErrAntiWindup)
	}

	c := &Controller{
		params:     p,
		method:     cfg.method,
		kind:       kindOf(p),
		antiWindup: cfg.antiWindup,
		limiter:    Limiter[float64]{limit: cfg.limit},
	}

	if c.kind == P {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if !cfg.method.Valid() {
			return nil, fmt.Errorf("%v: %w", cfg.method, pid.ErrUnknownMethod)
		}

		c.coeffs = biquad.Coefficients{B0: p.Kp}

		return c, nil
	}

	coeffs, err := pid.Coefficients(p, cfg.method)
	if err != nil {
		return nil, err
	}

	c.coeffs = coeffs
	c.section = biquad.NewSection(coeffs)

	if c.antiWindup == AntiWindupFreeze && p.HasIntegral() {
		split, err := pid.Terms(p, cfg.method)
		if err != nil {
			return nil, err
		}

		c.integrator = biquad.NewSection(split.Integrator)
		if split.HasDerivative {
			c.derivative = biquad.NewSection(split.Derivative)
		}
	}

	return c, nil
}

// NewP returns a proportional controller u = kp*e.
func NewP(kp float64, opts ...Option) (*Controller, error) {
	return New(pid.Params{Kp: kp, Ts: 1}, opts...)
}

// NewPI returns a PI controller with integral time ti. ti = +Inf disables
// the integral action.
func NewPI(ts, kp, ti float64, opts ...Option) (*Controller, error) {
	return fromTimeConstants(pid.TimeConstants{Kp: kp, Ti: ti, N: math.Inf(1), Ts: ts}, opts)
}

// NewPD returns a PD controller with derivative time td and filter ratio n.
// n = +Inf leaves the derivative unfiltered.
func NewPD(ts, kp, td, n float64, opts ...Option) (*Controller, error) {
	return fromTimeConstants(pid.TimeConstants{Kp: kp, Ti: math.Inf(1), Td: td, N: n, Ts: ts}, opts)
}

// NewPID returns a PID controller in ISA time-constant form.
func NewPID(ts, kp, ti, td, n float64, opts ...Option) (*Controller, error) {
	return fromTimeConstants(pid.TimeConstants{Kp: kp, Ti: ti, Td: td, N: n, Ts: ts}, opts)
}

func fromTimeConstants(tc pid.TimeConstants, opts []Option) (*Controller, error) {
	p, err := tc.Params()
	if err != nil {
		return nil, err
	}

	return New(p, opts...)
}

// ProcessSample advances the controller by one sample of error e and returns
// the limited control effort.
func (c *Controller) ProcessSample(e float64) float64 {
	switch {
	case c.kind == P:
		return c.limiter.Apply(c.params.Kp * e)
	case c.integrator == nil:
		return c.limiter.Apply(c.section.ProcessSample(e))
	}

	held := c.integrator.State()

	u := c.params.Kp*e + c.integrator.ProcessSample(e)
	if c.derivative != nil {
		u += c.derivative.ProcessSample(e)
	}

	y := c.limiter.Apply(u)
	if c.limiter.Clipping() {
		c.integrator.SetState(held)
	}

	return y
}

// ProcessBlock replaces every error sample in buf with its control effort.
func (c *Controller) ProcessBlock(buf []float64) {
	if !c.limiter.limit.bounded {
		switch {
		case c.kind == P:
			vecmath.ScaleBlock(buf, buf, c.params.Kp)
			return
		case c.integrator == nil:
			c.section.ProcessBlock(buf)
			return
		}
	}

	for i, e := range buf {
		buf[i] = c.ProcessSample(e)
	}
}

// Reset zeroes the filter state. Coefficients, the limit and the clipping
// state are kept.
func (c *Controller) Reset() {
	if c.section != nil {
		c.section.Reset()
	}

	if c.integrator != nil {
		c.integrator.Reset()
	}

	if c.derivative != nil {
		c.derivative.Reset()
	}
}

// Preset loads the filter state so that the controller outputs u for zero
// error, for a bumpless switch from manual to automatic operation. The
// derivative state is cleared. Only controllers with integral action can
// hold an output.
func (c *Controller) Preset(u float64) error {
	if !c.params.HasIntegral() {
		return fmt.Errorf("%v: %w", c.kind, ErrNoIntegral)
	}

	c.section.Prime(0, u)

	if c.integrator != nil {
		c.integrator.Prime(0, u)
	}

	if c.derivative != nil {
		c.derivative.Reset()
	}

	return nil
}

// SetLimit replaces the output limit. The clipping state is not reset.
func (c *Controller) SetLimit(l Limit[float64]) error {
	return c.limiter.SetLimit(l)
}

// Limit returns the output limit.
func (c *Controller) Limit() Limit[float64] { return c.limiter.Limit() }

// Clipping reports whether the last output was clamped.
func (c *Controller) Clipping() bool { return c.limiter.Clipping() }

// Kind returns which terms are active.
func (c *Controller) Kind() Kind { return c.kind }

// Params returns the gain-form parameters.
func (c *Controller) Params() pid.Params { return c.params }

// Method returns the discretization method.
func (c *Controller) Method() pid.Method { return c.method }

// AntiWindup returns the anti-windup policy.
func (c *Controller) AntiWindup() AntiWindup { return c.antiWindup }

// Coefficients returns the synthesized section. A P controller reports the
// pure gain {B0: Kp}.
func (c *Controller) Coefficients() biquad.Coefficients { return c.coeffs }

// Poles returns the poles of the synthesized section.
func (c *Controller) Poles() [2]complex128 { return c.coeffs.Poles() }

// Zeros returns the zeros of the synthesized section.
func (c *Controller) Zeros() [2]complex128 { return c.coeffs.Zeros() }

// Stable reports whether both poles lie on or inside the unit circle.
func (c *Controller) Stable() bool { return c.coeffs.Stable() }
