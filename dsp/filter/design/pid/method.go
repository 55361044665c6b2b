package pid

import (
	"fmt"
	"strings"
)

// Method selects the continuous-to-discrete integration rule.
type Method int

const (
	// Trapezoidal uses s = 2/Ts * (z-1)/(z+1) (Tustin). It is the default.
	Trapezoidal Method = iota
	// ForwardEuler uses s = (z-1)/Ts.
	ForwardEuler
	// BackwardEuler uses s = (z-1)/(Ts*z).
	BackwardEuler
)

// Methods lists every supported method in declaration order.
var Methods = []Method{Trapezoidal, ForwardEuler, BackwardEuler}

// String returns the canonical name of m.
func (m Method) String() string {
	switch m {
	case Trapezoidal:
		return "trapezoidal"
	case ForwardEuler:
		return "forward-euler"
	case BackwardEuler:
		return "backward-euler"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	return m >= Trapezoidal && m <= BackwardEuler
}

// ParseMethod parses a method name. Besides the canonical names it accepts
// "tustin", "bilinear", "fe" and "be", case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trapezoidal", "tustin", "bilinear":
		return Trapezoidal, nil
	case "forward-euler", "forwardeuler", "fe":
		return ForwardEuler, nil
	case "backward-euler", "backwardeuler", "be":
		return BackwardEuler, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
	}
}
