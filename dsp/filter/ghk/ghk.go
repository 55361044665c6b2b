// Package ghk implements the g-h-k (alpha-beta-gamma) tracking filter, a
// fixed-gain steady-state estimator for position, velocity and
// acceleration of a sampled signal.
package ghk

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned for parameters outside their domain.
var ErrInvalidParameter = errors.New("ghk: invalid parameter")

// Coeff holds the position, velocity and acceleration gains. K is half of
// the classic gamma.
type Coeff struct {
	G, H, K float64
}

// FromAlphaBetaGamma converts the alpha-beta-gamma gains.
func FromAlphaBetaGamma(alpha, beta, gamma float64) Coeff {
	return Coeff{G: alpha, H: beta, K: gamma / 2}
}

// CriticallyDamped returns the critically damped gains for discount factor
// theta in [0, 1). Smaller theta tracks faster and smooths less.
func CriticallyDamped(theta float64) (Coeff, error) {
	if !(theta >= 0 && theta < 1) {
		return Coeff{}, fmt.Errorf("theta=%v: %w", theta, ErrInvalidParameter)
	}

	return Coeff{
		G: 1 - theta*theta*theta,
		H: 1.5 * (1 - theta*theta) * (1 - theta),
		K: math.Pow(1-theta, 3) / 2,
	}, nil
}

// OptimalGaussian returns the steady-state Kalman gains for tracking index
// lambda, using the closed-form cubic solution of Gray and Murray (1993).
func OptimalGaussian(lambda float64) (Coeff, error) {
	if !(lambda > 0) || math.IsInf(lambda, 0) {
		return Coeff{}, fmt.Errorf("lambda=%v: %w", lambda, ErrInvalidParameter)
	}

	b := lambda/2 - 3
	c := lambda/2 + 3
	const d = -1.0

	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	v := math.Sqrt(q*q + 4*p*p*p/27)
	z := -math.Cbrt(q + v/2)
	s := z - p/(3*z) - b/3

	g := 1 - s*s
	h := 2*s*s - 4*s + 2

	return Coeff{G: g, H: h, K: h * h / (2 * g) / 2}, nil
}

// OptimalGaussianNoise returns the optimal gains for process noise
// deviation sigmaW, measurement noise deviation sigmaV and time step ts.
// The tracking index is sigmaW*ts²/sigmaV.
func OptimalGaussianNoise(sigmaW, sigmaV, ts float64) (Coeff, error) {
	if !(sigmaV > 0) || !(ts > 0) {
		return Coeff{}, fmt.Errorf("sigmaV=%v ts=%v: %w", sigmaV, ts, ErrInvalidParameter)
	}

	return OptimalGaussian(sigmaW * ts * ts / sigmaV)
}

// State is a position, velocity and acceleration estimate.
type State struct {
	X, V, A float64
}

// UpdatePredict corrects s with measurement z and extrapolates the
// corrected estimate by one time step ts.
func UpdatePredict(c Coeff, s State, z, ts float64) (correction, prediction State) {
	r := z - s.X

	s.X += c.G * r
	s.V += c.H / ts * r
	s.A += 2 * c.K / (ts * ts) * r

	correction = s

	s.X += s.V*ts + s.A*ts*ts/2
	s.V += s.A * ts

	return correction, s
}

// Filter runs UpdatePredict on its own predicted state.
type Filter struct {
	coeff Coeff
	ts    float64
	pred  State
	est   State
}

// NewFilter returns a filter with time step ts starting from initial.
func NewFilter(c Coeff, ts float64, initial State) (*Filter, error) {
	if !(ts > 0) || math.IsInf(ts, 0) {
		return nil, fmt.Errorf("ts=%v: %w", ts, ErrInvalidParameter)
	}

	return &Filter{coeff: c, ts: ts, pred: initial, est: initial}, nil
}

// Update feeds one measurement and returns the corrected estimate.
func (f *Filter) Update(z float64) State {
	f.est, f.pred = UpdatePredict(f.coeff, f.pred, z, f.ts)
	return f.est
}

// ProcessSample feeds one measurement and returns the smoothed position.
func (f *Filter) ProcessSample(z float64) float64 {
	return f.Update(z).X
}

// Estimate returns the last corrected estimate.
func (f *Filter) Estimate() State { return f.est }

// Prediction returns the estimate extrapolated to the next measurement.
func (f *Filter) Prediction() State { return f.pred }

// Reset clears the estimate and prediction to zero.
func (f *Filter) Reset() {
	f.pred = State{}
	f.est = State{}
}
