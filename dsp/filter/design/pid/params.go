package pid

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Errors returned by parameter validation and synthesis.
var (
	ErrSampleTime       = errors.New("pid: sample time must be positive and finite")
	ErrGain             = errors.New("pid: gain must be finite")
	ErrFilterTime       = errors.New("pid: derivative filter time must be non-negative and finite")
	ErrIntegralTime     = errors.New("pid: integral time must be positive")
	ErrDerivativeTime   = errors.New("pid: derivative time must be non-negative and finite")
	ErrFilterRatio      = errors.New("pid: derivative filter ratio N must be positive")
	ErrDerivativeFilter = errors.New("pid: forward Euler requires a derivative filter (Tf > 0) when Kd != 0")
	ErrUnknownMethod    = errors.New("pid: unknown discretization method")
)

// Params is the gain form of a PID controller
//
//	C(s) = Kp + Ki/s + Kd*s/(Tf*s + 1)
//
// sampled every Ts seconds. Tf = 0 means an unfiltered derivative.
type Params struct {
	Kp float64 // proportional gain
	Ki float64 // integral gain (1/s)
	Kd float64 // derivative gain (s)
	Tf float64 // derivative filter time constant (s)
	Ts float64 // sample time (s)
}

// Validate checks that the parameters describe a realizable controller.
func (p Params) Validate() error {
	if !(p.Ts > 0) || !core.IsFinite(p.Ts) {
		return fmt.Errorf("Ts=%v: %w", p.Ts, ErrSampleTime)
	}

	for _, g := range [...]struct {
		name string
		v    float64
	}{{"Kp", p.Kp}, {"Ki", p.Ki}, {"Kd", p.Kd}} {
		if !core.IsFinite(g.v) {
			return fmt.Errorf("%s=%v: %w", g.name, g.v, ErrGain)
		}
	}

	if !(p.Tf >= 0) || !core.IsFinite(p.Tf) {
		return fmt.Errorf("Tf=%v: %w", p.Tf, ErrFilterTime)
	}

	return nil
}

// HasIntegral reports whether the integral term is active.
func (p Params) HasIntegral() bool { return p.Ki != 0 }

// HasDerivative reports whether the derivative term is active.
func (p Params) HasDerivative() bool { return p.Kd != 0 }

// TimeConstants is the ideal (ISA) form of a PID controller
//
//	C(s) = Kp * (1 + 1/(Ti*s) + Td*s/(Td/N*s + 1))
//
// Ti = +Inf disables the integral action, Td = 0 disables the derivative
// action and N = +Inf removes the derivative filter.
type TimeConstants struct {
	Kp float64 // proportional gain
	Ti float64 // integral time (s)
	Td float64 // derivative time (s)
	N  float64 // derivative filter ratio
	Ts float64 // sample time (s)
}

// Validate checks the time constants.
func (tc TimeConstants) Validate() error {
	if !(tc.Ts > 0) || !core.IsFinite(tc.Ts) {
		return fmt.Errorf("Ts=%v: %w", tc.Ts, ErrSampleTime)
	}

	if !core.IsFinite(tc.Kp) {
		return fmt.Errorf("Kp=%v: %w", tc.Kp, ErrGain)
	}

	if !(tc.Ti > 0) {
		return fmt.Errorf("Ti=%v: %w", tc.Ti, ErrIntegralTime)
	}

	if !(tc.Td >= 0) || !core.IsFinite(tc.Td) {
		return fmt.Errorf("Td=%v: %w", tc.Td, ErrDerivativeTime)
	}

	if !(tc.N > 0) {
		return fmt.Errorf("N=%v: %w", tc.N, ErrFilterRatio)
	}

	return nil
}

// Params converts to gain form: Ki = Kp/Ti, Kd = Kp*Td, Tf = Td/N.
func (tc TimeConstants) Params() (Params, error) {
	if err := tc.Validate(); err != nil {
		return Params{}, err
	}

	return Params{
		Kp: tc.Kp,
		Ki: tc.Kp / tc.Ti,
		Kd: tc.Kp * tc.Td,
		Tf: tc.Td / tc.N,
		Ts: tc.Ts,
	}, nil
}
