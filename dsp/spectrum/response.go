package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by the response helpers.
var (
	ErrEmptyInput     = errors.New("spectrum: empty input")
	ErrLengthMismatch = errors.New("spectrum: length mismatch")
	ErrSampleTime     = errors.New("spectrum: sample time must be positive and finite")
)

// FrequencyResponse returns bins 0..n/2 of the n-point DFT of the impulse
// response ir. ir is zero-padded or truncated to n samples, so n should
// cover the decay of the response.
func FrequencyResponse(ir []float64, n int) ([]complex128, error) {
	if len(ir) == 0 || n <= 0 {
		return nil, ErrEmptyInput
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, n)
	for i := range min(n, len(ir)) {
		buf[i] = complex(ir[i], 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}

	return buf[:n/2+1], nil
}

// Bins returns the frequencies in Hz of bins 0..n/2 of an n-point DFT at
// the given sample time.
func Bins(n int, sampleTime float64) ([]float64, error) {
	if n <= 0 {
		return nil, ErrEmptyInput
	}
	if !(sampleTime > 0) || math.IsInf(sampleTime, 0) {
		return nil, fmt.Errorf("%w: %v", ErrSampleTime, sampleTime)
	}

	out := make([]float64, n/2+1)
	df := 1 / (float64(n) * sampleTime)
	for k := range out {
		out[k] = float64(k) * df
	}
	return out, nil
}

// StabilityMargins describes how far an open loop is from instability.
// Margins without a crossover are +Inf and their frequency is NaN.
type StabilityMargins struct {
	GainMarginDB     float64
	PhaseMarginDeg   float64
	GainCrossoverHz  float64
	PhaseCrossoverHz float64
}

// Margins reads the gain and phase margins off the open-loop response
// resp sampled at the strictly increasing frequencies freqs.
//
// The gain crossover is the first point where |L| falls through 1 and the
// phase crossover the first point where the unwrapped phase falls through
// -180°. Values between samples are interpolated linearly.
func Margins(freqs []float64, resp []complex128) (StabilityMargins, error) {
	m := StabilityMargins{
		GainMarginDB:     math.Inf(1),
		PhaseMarginDeg:   math.Inf(1),
		GainCrossoverHz:  math.NaN(),
		PhaseCrossoverHz: math.NaN(),
	}

	if len(freqs) < 2 {
		return m, ErrEmptyInput
	}
	if len(freqs) != len(resp) {
		return m, fmt.Errorf("%w: %d frequencies, %d bins", ErrLengthMismatch, len(freqs), len(resp))
	}

	mag := Magnitude(resp)
	phase := UnwrapPhase(Phase(resp))

	for i := 1; i < len(mag); i++ {
		if mag[i-1] >= 1 && mag[i] < 1 {
			t := (mag[i-1] - 1) / (mag[i-1] - mag[i])
			fc := freqs[i-1] + t*(freqs[i]-freqs[i-1])

			p, err := InterpolateLinear(freqs, phase, []float64{fc})
			if err != nil {
				return m, err
			}

			m.GainCrossoverHz = fc
			m.PhaseMarginDeg = 180 + p[0]*180/math.Pi
			break
		}
	}

	for i := 1; i < len(phase); i++ {
		if phase[i-1] > -math.Pi && phase[i] <= -math.Pi {
			t := (phase[i-1] + math.Pi) / (phase[i-1] - phase[i])
			fp := freqs[i-1] + t*(freqs[i]-freqs[i-1])

			g, err := InterpolateLinear(freqs, mag, []float64{fp})
			if err != nil {
				return m, err
			}

			m.PhaseCrossoverHz = fp
			m.GainMarginDB = -20 * math.Log10(g[0])
			break
		}
	}

	return m, nil
}
