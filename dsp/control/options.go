package control

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-control/dsp/filter/design/pid"
)

// AntiWindup selects how a controller with integral action behaves while
// its output limiter clips.
type AntiWindup int

const (
	// AntiWindupFreeze holds the integrator state while the limiter clips.
	AntiWindupFreeze AntiWindup = iota
	// AntiWindupNone keeps integrating through saturation. The controller
	// then runs the single synthesized section.
	AntiWindupNone
)

func (a AntiWindup) String() string {
	switch a {
	case AntiWindupFreeze:
		return "freeze"
	case AntiWindupNone:
		return "none"
	default:
		return fmt.Sprintf("AntiWindup(%d)", int(a))
	}
}

// ParseAntiWindup parses an anti-windup policy name ("freeze" or "none").
func ParseAntiWindup(s string) (AntiWindup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "freeze", "clamp":
		return AntiWindupFreeze, nil
	case "none", "off":
		return AntiWindupNone, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrAntiWindup)
	}
}

type config struct {
	method     pid.Method
	limit      Limit[float64]
	antiWindup AntiWindup
}

// Option configures a Controller.
type Option func(*config)

func defaultConfig() config {
	return config{
		method:     pid.Trapezoidal,
		limit:      Unbounded[float64](),
		antiWindup: AntiWindupFreeze,
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithMethod selects the discretization method. The default is
// pid.Trapezoidal.
func WithMethod(m pid.Method) Option {
	return func(cfg *config) {
		cfg.method = m
	}
}

// WithLimit bounds the output to [-v, v]. +Inf leaves the output unbounded.
// A negative or NaN v makes the constructor fail with ErrLimit.
func WithLimit(v float64) Option {
	return func(cfg *config) {
		if math.IsInf(v, 1) {
			cfg.limit = Unbounded[float64]()
			return
		}

		cfg.limit = Bounded(v)
	}
}

// WithAntiWindup selects the anti-windup policy. The default is
// AntiWindupFreeze.
func WithAntiWindup(a AntiWindup) Option {
	return func(cfg *config) {
		cfg.antiWindup = a
	}
}
