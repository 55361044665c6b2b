package biquad

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-control/dsp/core"
)

// ResponseAt evaluates H(e^jw) at the normalized angular frequency
// w in radians per sample.
func (c Coefficients) ResponseAt(w float64) complex128 {
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// Response evaluates H(e^jw) at freqHz for a loop running at sampleRate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	return c.ResponseAt(2 * math.Pi * freqHz / sampleRate)
}

// MagnitudeSquared returns |H(f)|^2 in closed form without complex arithmetic.
func (c Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// Phase returns arg H(f) in radians, in [-pi, pi].
func (c Coefficients) Phase(freqHz, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freqHz, sampleRate))
}

// DCGain returns H(1) = (B0+B1+B2)/(1+A1+A2). A pole at z = 1 (an
// integrator) yields +Inf or -Inf; 0/0 yields NaN.
func (c Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}

// Response returns the cascade frequency response, the product of the
// section responses scaled by the chain gain.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascade magnitude response in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n samples of h[n]. The section state
// is saved and restored around the measurement.
func (s *Section) ImpulseResponse(n int) []float64 {
	return measure[[2]float64](s, n, 0)
}

// StepResponse returns the first n samples of the unit-step response. The
// section state is saved and restored around the measurement.
func (s *Section) StepResponse(n int) []float64 {
	return measure[[2]float64](s, n, 1)
}

// ImpulseResponse returns the first n samples of the cascade h[n] with the
// chain state preserved.
func (c *Chain) ImpulseResponse(n int) []float64 {
	return measure[[][2]float64](chainProbe{c}, n, 0)
}

// StepResponse returns the first n samples of the cascade unit-step
// response with the chain state preserved.
func (c *Chain) StepResponse(n int) []float64 {
	return measure[[][2]float64](chainProbe{c}, n, 1)
}

// probe is a filter whose state can be snapshotted around a measurement.
type probe[S any] interface {
	ProcessSample(x float64) float64
	Reset()
	State() S
	restore(S)
}

func (s *Section) restore(st [2]float64) { s.SetState(st) }

type chainProbe struct{ *Chain }

func (p chainProbe) restore(st [][2]float64) {
	for i := range p.sections {
		p.sections[i].SetState(st[i])
	}
}

// measure feeds 1 followed by n-1 copies of tail from zero state.
func measure[S any](p probe[S], n int, tail float64) []float64 {
	if n <= 0 {
		return nil
	}

	saved := p.State()
	p.Reset()

	out := make([]float64, n)
	out[0] = p.ProcessSample(1)
	for i := 1; i < n; i++ {
		out[i] = p.ProcessSample(tail)
	}

	p.restore(saved)

	return out
}
