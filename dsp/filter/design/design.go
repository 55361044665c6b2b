package design

import (
	"math"

	"github.com/cwbudde/algo-control/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// BilinearTransform converts an analog second-order polynomial
// c0*s^2 + c1*s + c2 into the digital z^-1-domain polynomial
// d0 + d1*z^-1 + d2*z^-2 using s = 2/Ts * (1 - z^-1)/(1 + z^-1).
//
// The returned coefficients are normalized such that d0 = 1.
func BilinearTransform(sCoeffs [3]float64, sampleTime float64) [3]float64 {
	if !(sampleTime > 0) || math.IsInf(sampleTime, 0) {
		return [3]float64{1, 0, 0}
	}

	k := 2 / sampleTime
	c0, c1, c2 := sCoeffs[0], sCoeffs[1], sCoeffs[2]

	d0 := c0*k*k + c1*k + c2
	d1 := -2*c0*k*k + 2*c2
	d2 := c0*k*k - c1*k + c2

	if d0 == 0 || math.IsNaN(d0) || math.IsInf(d0, 0) {
		return [3]float64{1, 0, 0}
	}

	return [3]float64{1, d1 / d0, d2 / d0}
}

// Bilinear maps the analog section (b0 s^2 + b1 s + b2)/(a0 s^2 + a1 s + a2)
// to a biquad with the bilinear transform at sample time ts.
func Bilinear(b, a [3]float64, ts float64) (biquad.Coefficients, error) {
	k := 2 / ts
	k2 := k * k

	return biquad.Normalize(
		b[0]*k2+b[1]*k+b[2],
		-2*b[0]*k2+2*b[2],
		b[0]*k2-b[1]*k+b[2],
		a[0]*k2+a[1]*k+a[2],
		-2*a[0]*k2+2*a[2],
		a[0]*k2-a[1]*k+a[2],
	)
}

// Lowpass designs a second-order measurement low-pass at freq (Hz) with
// quality factor q for a loop running at sampleRate.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad((1-cw)/2, 1-cw, (1-cw)/2, 1+alpha, -2*cw, 1-alpha)
}

// FirstOrderLowpass designs a first-order low-pass (B2 = A2 = 0) with unity
// DC gain and its -3 dB point at freq.
func FirstOrderLowpass(freq, sampleRate float64) biquad.Coefficients {
	k, ok := bilinearK(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	norm := 1 / (1 + k)

	return biquad.Coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

// Notch designs a notch biquad centered at freq (Hz), typically placed in
// series with a controller to suppress a structural resonance.
func Notch(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)
}

// ButterworthLP designs a low-pass Butterworth cascade.
//
// For odd orders, the final section is first-order (B2=A2=0).
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if order <= 0 {
		return nil
	}

	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}

	sections := make([]biquad.Coefficients, 0, (order+1)/2)
	for i := order/2 - 1; i >= 0; i-- {
		sections = append(sections, Lowpass(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		sections = append(sections, FirstOrderLowpass(freq, sampleRate))
	}

	return sections
}

func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

func bilinearK(freq, sampleRate float64) (float64, bool) {
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return 0, false
	}

	return math.Tan(math.Pi * freq / sampleRate), true
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

// normalizeBiquad returns the zero section when a0 is unusable, matching
// the zero-value result of the other designers on invalid input.
func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	c, err := biquad.Normalize(b0, b1, b2, a0, a1, a2)
	if err != nil {
		return biquad.Coefficients{}
	}

	return c
}
