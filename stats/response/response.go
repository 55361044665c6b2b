// Package response extracts step-response metrics and error integrals from
// sampled closed-loop traces.
package response

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by Step.
var (
	ErrEmptyInput = errors.New("response: empty input")
	ErrSampleTime = errors.New("response: sample time must be positive and finite")
	ErrNoStep     = errors.New("response: trace has no step")
)

// Info holds step-response metrics. Times are in seconds. Metrics that the
// trace never reaches are NaN.
type Info struct {
	Length    int
	Initial   float64 // first sample
	Final     float64 // last sample
	Reference float64 // level the trace is normalized to

	Peak         float64
	PeakPos      int
	PeakTime     float64
	OvershootPct float64 // peak excursion past Reference, in percent of the step

	RiseTime     float64 // between the rise levels, interpolated
	SettlingTime float64 // first time after which the trace stays in band

	SteadyStateError float64 // Reference - Final
}

type config struct {
	band      float64
	riseLow   float64
	riseHigh  float64
	reference float64
	hasRef    bool
}

// Option configures Step.
type Option func(*config)

// WithBand sets the settling band as a fraction of the step (default 0.02).
func WithBand(frac float64) Option {
	return func(c *config) { c.band = frac }
}

// WithRiseLevels sets the rise-time levels as fractions of the step
// (default 0.1 and 0.9).
func WithRiseLevels(low, high float64) Option {
	return func(c *config) {
		c.riseLow = low
		c.riseHigh = high
	}
}

// WithReference normalizes the trace to the setpoint r instead of its last
// sample.
func WithReference(r float64) Option {
	return func(c *config) {
		c.reference = r
		c.hasRef = true
	}
}

// Step computes step-response metrics of y sampled every ts seconds.
func Step(y []float64, ts float64, opts ...Option) (Info, error) {
	if len(y) == 0 {
		return Info{}, ErrEmptyInput
	}
	if !(ts > 0) || math.IsInf(ts, 0) {
		return Info{}, fmt.Errorf("%w: %v", ErrSampleTime, ts)
	}

	cfg := config{band: 0.02, riseLow: 0.1, riseHigh: 0.9}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(y)
	info := Info{
		Length:  n,
		Initial: y[0],
		Final:   y[n-1],
	}

	info.Reference = info.Final
	if cfg.hasRef {
		info.Reference = cfg.reference
	}
	info.SteadyStateError = info.Reference - info.Final

	delta := info.Reference - info.Initial
	if delta == 0 || math.IsNaN(delta) {
		return info, ErrNoStep
	}

	norm := func(i int) float64 { return (y[i] - info.Initial) / delta }

	peak := math.Inf(-1)
	for i := range y {
		if s := norm(i); s > peak {
			peak = s
			info.PeakPos = i
		}
	}

	info.Peak = y[info.PeakPos]
	info.PeakTime = float64(info.PeakPos) * ts
	info.OvershootPct = max(0, (peak-1)*100)

	lo := crossing(y, norm, cfg.riseLow)
	hi := crossing(y, norm, cfg.riseHigh)
	info.RiseTime = (hi - lo) * ts

	info.SettlingTime = 0
	for i := n - 1; i >= 0; i-- {
		if math.Abs(norm(i)-1) > cfg.band {
			if i == n-1 {
				info.SettlingTime = math.NaN()
			} else {
				info.SettlingTime = float64(i+1) * ts
			}
			break
		}
	}

	return info, nil
}

// crossing returns the fractional sample index where the normalized trace
// first reaches level, or NaN.
func crossing(y []float64, norm func(int) float64, level float64) float64 {
	for i := range y {
		s := norm(i)
		if s < level {
			continue
		}
		if i == 0 {
			return 0
		}

		prev := norm(i - 1)
		return float64(i-1) + (level-prev)/(s-prev)
	}

	return math.NaN()
}
