package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Goertzel evaluates a single DFT term of a sample stream.
//
// The analyzer accumulates every sample processed since the last Reset.
// Leakage is avoided when the processed block spans a whole number of
// periods of the target frequency.
type Goertzel struct {
	frequency  float64
	sampleTime float64
	w          float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel creates an analyzer for freqHz on a loop with the given
// sample time. freqHz must lie in [0, 1/(2*sampleTime)].
func NewGoertzel(freqHz, sampleTime float64) (*Goertzel, error) {
	if !(sampleTime > 0) || math.IsInf(sampleTime, 0) {
		return nil, fmt.Errorf("%w: %v", ErrSampleTime, sampleTime)
	}

	if !(freqHz >= 0) || freqHz > 0.5/sampleTime {
		return nil, fmt.Errorf("goertzel: frequency must be between 0 and Nyquist: %v", freqHz)
	}

	w := 2 * math.Pi * freqHz * sampleTime

	return &Goertzel{
		frequency:  freqHz,
		sampleTime: sampleTime,
		w:          w,
		coeff:      2 * math.Cos(w),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
	g.n = 0
}

// ProcessSample updates the internal state with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.n++
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Response returns the DFT term sum x[n] exp(-j w n) over all processed
// samples.
func (g *Goertzel) Response() complex128 {
	if g.n == 0 {
		return 0
	}

	y := complex(g.s0, 0) - cmplx.Exp(complex(0, -g.w))*complex(g.s1, 0)

	return cmplx.Exp(complex(0, -g.w*float64(g.n-1))) * y
}

// Power returns the squared magnitude of the accumulated term.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the accumulated term.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// Frequency returns the target frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleTime returns the sample time in seconds.
func (g *Goertzel) SampleTime() float64 { return g.sampleTime }

// Probe measures the response of a running block at freqHz. It resets p,
// drives it with a unit sine, discards the first settle outputs and returns
// the ratio of the output to the input DFT term over the following n
// samples. n should span a whole number of periods.
func Probe(p core.SampleProcessor, freqHz, sampleTime float64, settle, n int) (complex128, error) {
	if n <= 0 || settle < 0 {
		return 0, fmt.Errorf("%w: settle %d, n %d", ErrEmptyInput, settle, n)
	}

	in, err := NewGoertzel(freqHz, sampleTime)
	if err != nil {
		return 0, err
	}

	out, _ := NewGoertzel(freqHz, sampleTime)

	w := 2 * math.Pi * freqHz * sampleTime
	x := make([]float64, settle+n)
	for k := range x {
		x[k] = math.Sin(w * float64(k))
	}

	p.Reset()
	y := core.Run(p, x)

	in.ProcessBlock(x[settle:])
	out.ProcessBlock(y[settle:])

	u := in.Response()
	if cmplx.Abs(u) == 0 {
		return 0, fmt.Errorf("spectrum: probe input has no energy at %v Hz", freqHz)
	}

	return out.Response() / u, nil
}
