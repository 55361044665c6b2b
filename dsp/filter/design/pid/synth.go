package pid

import (
	"fmt"

	"github.com/cwbudde/algo-control/dsp/filter/biquad"
)

// Coefficients discretizes p with method m into a single biquad section.
//
// ForwardEuler needs a derivative filter: with Kd != 0 and Tf == 0 it
// returns ErrDerivativeFilter. Without derivative action it substitutes
// Tf = 1, which leaves a cancelled pole/zero pair at z = 1 - Ts.
func Coefficients(p Params, m Method) (biquad.Coefficients, error) {
	if err := p.Validate(); err != nil {
		return biquad.Coefficients{}, err
	}

	kp, ki, kd, tf, ts := p.Kp, p.Ki, p.Kd, p.Tf, p.Ts

	switch m {
	case ForwardEuler:
		if kd == 0 {
			tf = 1
		} else if tf == 0 {
			return biquad.Coefficients{}, fmt.Errorf("Kd=%v: %w", kd, ErrDerivativeFilter)
		}

		return biquad.Coefficients{
			B0: (kd + kp*tf) / tf,
			B1: (kp*ts - 2*kp*tf - 2*kd + ki*tf*ts) / tf,
			B2: (kd + ki*ts*ts + kp*tf - kp*ts - ki*tf*ts) / tf,
			A1: (ts - 2*tf) / tf,
			A2: (tf - ts) / tf,
		}, nil

	case BackwardEuler:
		den := tf + ts

		return biquad.Coefficients{
			B0: (kd + ki*ts*ts + kp*tf + kp*ts + ki*tf*ts) / den,
			B1: -(2*kd + 2*kp*tf + kp*ts + ki*tf*ts) / den,
			B2: (kd + kp*tf) / den,
			A1: -(2*tf + ts) / den,
			A2: tf / den,
		}, nil

	case Trapezoidal:
		den := 2*tf + ts

		return biquad.Coefficients{
			B0: (4*kd + ki*ts*ts + 4*kp*tf + 2*kp*ts + 2*ki*tf*ts) / (2 * den),
			B1: -(4*kd - ki*ts*ts + 4*kp*tf) / den,
			B2: (4*kd + ki*ts*ts + 4*kp*tf - 2*kp*ts - 2*ki*tf*ts) / (2 * den),
			A1: -(4 * tf) / den,
			A2: (2*tf - ts) / den,
		}, nil

	default:
		return biquad.Coefficients{}, fmt.Errorf("%v: %w", m, ErrUnknownMethod)
	}
}

// Split is the parallel realization of a discretized controller:
//
//	u = Kp*e + Integrator(e) + Derivative(e)
//
// Each active term is a first-order section (B2 = A2 = 0). Its sum has the
// same transfer function as the section returned by Coefficients for the
// same parameters and method.
type Split struct {
	Kp float64

	Integrator    biquad.Coefficients
	HasIntegrator bool

	Derivative    biquad.Coefficients
	HasDerivative bool
}

// Terms discretizes p with method m into its parallel realization.
func Terms(p Params, m Method) (Split, error) {
	if err := p.Validate(); err != nil {
		return Split{}, err
	}

	if !m.Valid() {
		return Split{}, fmt.Errorf("%v: %w", m, ErrUnknownMethod)
	}

	s := Split{Kp: p.Kp}

	if p.HasIntegral() {
		s.HasIntegrator = true
		s.Integrator = integrator(p.Ki, p.Ts, m)
	}

	if p.HasDerivative() {
		d, err := derivative(p.Kd, p.Tf, p.Ts, m)
		if err != nil {
			return Split{}, err
		}

		s.HasDerivative = true
		s.Derivative = d
	}

	return s, nil
}

// integrator discretizes Ki/s.
func integrator(ki, ts float64, m Method) biquad.Coefficients {
	g := ki * ts

	switch m {
	case ForwardEuler:
		return biquad.Coefficients{B1: g, A1: -1}
	case BackwardEuler:
		return biquad.Coefficients{B0: g, A1: -1}
	default:
		return biquad.Coefficients{B0: g / 2, B1: g / 2, A1: -1}
	}
}

// derivative discretizes Kd*s/(Tf*s + 1).
func derivative(kd, tf, ts float64, m Method) (biquad.Coefficients, error) {
	var b0, a1 float64

	switch m {
	case ForwardEuler:
		if tf == 0 {
			return biquad.Coefficients{}, fmt.Errorf("Kd=%v: %w", kd, ErrDerivativeFilter)
		}

		b0 = kd / tf
		a1 = (ts - tf) / tf
	case BackwardEuler:
		b0 = kd / (tf + ts)
		a1 = -tf / (tf + ts)
	default:
		b0 = 2 * kd / (2*tf + ts)
		a1 = (ts - 2*tf) / (2*tf + ts)
	}

	return biquad.Coefficients{B0: b0, B1: -b0, A1: a1}, nil
}
