package control

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-control/dsp/filter/biquad"
	"github.com/cwbudde/algo-control/dsp/filter/design/pid"
	"github.com/cwbudde/algo-control/dsp/system/statespace"
	"github.com/cwbudde/algo-control/internal/testutil"
)

const eps = 1e-12

var policies = []AntiWindup{AntiWindupFreeze, AntiWindupNone}

func run(c *Controller, in []float64) []float64 {
	out := make([]float64, len(in))
	for i, e := range in {
		out[i] = c.ProcessSample(e)
	}

	return out
}

func TestNewP(t *testing.T) {
	c, err := NewP(2)
	if err != nil {
		t.Fatal(err)
	}

	if c.Kind() != P {
		t.Fatalf("Kind = %v, want P", c.Kind())
	}

	testutil.RequireSliceNearlyEqual(t, run(c, []float64{0, 0, 1, -1}), []float64{0, 0, 2, -2}, 0)

	if c.Coefficients() != (biquad.Coefficients{B0: 2}) {
		t.Fatalf("Coefficients = %+v", c.Coefficients())
	}
}

func TestNewP_Limit(t *testing.T) {
	c, err := NewP(2)
	if err != nil {
		t.Fatal(err)
	}

	if err := c.SetLimit(Bounded(1.5)); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, run(c, []float64{0, 0.5, 1, -2}), []float64{0, 1, 1.5, -1.5}, 0)

	if !c.Clipping() {
		t.Fatal("last sample must leave the limiter clipping")
	}
}

func TestNewPI_ConstantError(t *testing.T) {
	for _, aw := range policies {
		t.Run(aw.String(), func(t *testing.T) {
			c, err := NewPI(0.1, 2, 1, WithAntiWindup(aw))
			if err != nil {
				t.Fatal(err)
			}

			if c.Kind() != PI {
				t.Fatalf("Kind = %v, want PI", c.Kind())
			}

			got := run(c, testutil.Step(1, 5))
			testutil.RequireSliceNearlyEqual(t, got, []float64{2.1, 2.3, 2.5, 2.7, 2.9}, eps)
		})
	}
}

func TestNewPI_Limit(t *testing.T) {
	for _, aw := range policies {
		t.Run(aw.String(), func(t *testing.T) {
			c, err := NewPI(0.1, 2, 1, WithLimit(2.5), WithAntiWindup(aw))
			if err != nil {
				t.Fatal(err)
			}

			got := run(c, testutil.Step(1, 5))
			testutil.RequireSliceNearlyEqual(t, got, []float64{2.1, 2.3, 2.5, 2.5, 2.5}, eps)

			if !c.Clipping() {
				t.Fatal("controller must be clipping")
			}
		})
	}
}

func TestNewPI_InfiniteIntegralTime(t *testing.T) {
	c, err := NewPI(1, 2, math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}

	if c.Kind() != P {
		t.Fatalf("Kind = %v, want P", c.Kind())
	}

	testutil.RequireSliceNearlyEqual(t, run(c, testutil.Ramp(5)), []float64{0, 2, 4, 6, 8}, 0)
}

func TestNewPID_Literal(t *testing.T) {
	for _, aw := range policies {
		t.Run(aw.String(), func(t *testing.T) {
			c, err := NewPID(2, 1, 1, 1, 1, WithAntiWindup(aw))
			if err != nil {
				t.Fatal(err)
			}

			if c.Kind() != PID {
				t.Fatalf("Kind = %v, want PID", c.Kind())
			}

			got := run(c, []float64{0, 1, 1, 2, 0})
			testutil.RequireSliceNearlyEqual(t, got, []float64{0, 2.5, 4, 8.5, 7}, eps)
		})
	}
}

func TestNewPD(t *testing.T) {
	c, err := NewPD(0.05, 2, 0.25, 5)
	if err != nil {
		t.Fatal(err)
	}

	if c.Kind() != PD {
		t.Fatalf("Kind = %v, want PD", c.Kind())
	}

	// A constant error decays to the proportional part once the filtered
	// derivative has settled.
	got := run(c, testutil.Step(1, 400))
	if math.Abs(got[len(got)-1]-2) > 1e-9 {
		t.Fatalf("settled at %v, want 2", got[len(got)-1])
	}

	if got[0] <= 2 {
		t.Fatalf("first sample %v must include the derivative kick", got[0])
	}

	if !c.Stable() {
		t.Fatalf("poles %v", c.Poles())
	}
}

func TestNew_MatchesSynthesizedSection(t *testing.T) {
	p := pid.Params{Kp: 2, Ki: 1, Kd: 0.5, Tf: 0.1, Ts: 0.05}
	in := testutil.DeterministicNoise(7, 1, 200)

	for _, m := range pid.Methods {
		for _, aw := range policies {
			c, err := New(p, WithMethod(m), WithAntiWindup(aw))
			if err != nil {
				t.Fatalf("%v/%v: %v", m, aw, err)
			}

			coeffs, err := pid.Coefficients(p, m)
			if err != nil {
				t.Fatal(err)
			}

			if c.Coefficients() != coeffs || c.Method() != m || c.AntiWindup() != aw {
				t.Fatalf("%v/%v: configuration not kept", m, aw)
			}

			want := make([]float64, len(in))
			s := biquad.NewSection(coeffs)
			for i, e := range in {
				want[i] = s.ProcessSample(e)
			}

			testutil.RequireSliceNearlyEqual(t, run(c, in), want, 1e-9)
		}
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		make func() (*Controller, error)
		want error
	}{
		{"negative limit", func() (*Controller, error) { return NewP(1, WithLimit(-1)) }, ErrLimit},
		{"NaN limit", func() (*Controller, error) { return NewPI(1, 1, 1, WithLimit(math.NaN())) }, ErrLimit},
		{"zero Ts", func() (*Controller, error) { return NewPI(0, 1, 1) }, pid.ErrSampleTime},
		{"zero Ti", func() (*Controller, error) { return NewPI(1, 1, 0) }, pid.ErrIntegralTime},
		{"zero N", func() (*Controller, error) { return NewPD(1, 1, 1, 0) }, pid.ErrFilterRatio},
		{"NaN gain", func() (*Controller, error) { return NewP(math.NaN()) }, pid.ErrGain},
		{"unknown method", func() (*Controller, error) { return NewP(1, WithMethod(pid.Method(7))) }, pid.ErrUnknownMethod},
		{"unknown method PI", func() (*Controller, error) { return NewPI(1, 1, 1, WithMethod(pid.Method(7))) }, pid.ErrUnknownMethod},
		{"unknown anti-windup", func() (*Controller, error) { return NewPI(1, 1, 1, WithAntiWindup(AntiWindup(5))) }, ErrAntiWindup},
		{
			"forward Euler without filter",
			func() (*Controller, error) {
				return NewPD(0.1, 1, 0.5, math.Inf(1), WithMethod(pid.ForwardEuler))
			},
			pid.ErrDerivativeFilter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.make()
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}

			if c != nil {
				t.Fatal("controller returned with error")
			}
		})
	}
}

func TestWithLimit_InfiniteIsUnbounded(t *testing.T) {
	c, err := NewP(1, WithLimit(math.Inf(1)))
	if err != nil {
		t.Fatal(err)
	}

	if c.Limit().IsBounded() {
		t.Fatalf("Limit = %v, want unbounded", c.Limit())
	}

	if err := c.SetLimit(Bounded(-2.0)); !errors.Is(err, ErrLimit) {
		t.Fatalf("SetLimit: got %v", err)
	}
}

func TestController_Reset(t *testing.T) {
	for _, aw := range policies {
		t.Run(aw.String(), func(t *testing.T) {
			c, err := NewPID(0.1, 2, 0.5, 0.1, 8, WithLimit(3), WithAntiWindup(aw))
			if err != nil {
				t.Fatal(err)
			}

			in := []float64{1, 0.5, -0.2, 0.1, 0.3}
			first := run(c, in)

			c.Reset()

			testutil.RequireSliceNearlyEqual(t, run(c, in), first, 0)

			if c.Limit() != Bounded(3.0) {
				t.Fatalf("Reset changed the limit to %v", c.Limit())
			}
		})
	}
}

func TestController_Preset(t *testing.T) {
	const u0 = 1.7

	for _, m := range pid.Methods {
		for _, aw := range policies {
			t.Run(m.String()+"/"+aw.String(), func(t *testing.T) {
				build := func() *Controller {
					c, err := NewPID(0.1, 2, 0.5, 0.1, 1, WithMethod(m), WithAntiWindup(aw))
					if err != nil {
						t.Fatal(err)
					}
					return c
				}

				c := build()
				c.ProcessSample(3)
				if err := c.Preset(u0); err != nil {
					t.Fatal(err)
				}

				for k := range 5 {
					if y := c.ProcessSample(0); math.Abs(y-u0) > 1e-12 {
						t.Fatalf("step %d: got %v, want %v", k, y, u0)
					}
				}

				// The preset output superposes on the zero-state response.
				in := []float64{1, 0.5, -0.2, 0.1, 0.3}
				want := run(build(), in)
				for i := range want {
					want[i] += u0
				}

				testutil.RequireSliceNearlyEqual(t, run(c, in), want, 1e-12)
			})
		}
	}
}

func TestController_PresetNeedsIntegral(t *testing.T) {
	c, _ := NewPD(0.1, 2, 0.1, 8)
	if err := c.Preset(1); !errors.Is(err, ErrNoIntegral) {
		t.Fatalf("PD: got %v, want ErrNoIntegral", err)
	}

	p, _ := NewP(2)
	if err := p.Preset(1); !errors.Is(err, ErrNoIntegral) {
		t.Fatalf("P: got %v, want ErrNoIntegral", err)
	}
}

func TestController_ResetKeepsClipping(t *testing.T) {
	c, _ := NewP(1, WithLimit(1))
	c.ProcessSample(5)
	c.Reset()

	if !c.Clipping() {
		t.Fatal("Reset must not touch the clipping state")
	}
}

func TestController_ProcessBlock(t *testing.T) {
	configs := []struct {
		name string
		make func() (*Controller, error)
	}{
		{"P", func() (*Controller, error) { return NewP(1.5) }},
		{"P limited", func() (*Controller, error) { return NewP(1.5, WithLimit(0.8)) }},
		{"PI freeze", func() (*Controller, error) { return NewPI(0.01, 2, 0.2, WithLimit(1.2)) }},
		{"PI none", func() (*Controller, error) { return NewPI(0.01, 2, 0.2, WithAntiWindup(AntiWindupNone)) }},
		{"PD", func() (*Controller, error) { return NewPD(0.01, 1, 0.05, 10) }},
		{"PID", func() (*Controller, error) { return NewPID(0.01, 1, 0.5, 0.05, 10) }},
	}

	in := testutil.Sine(3, 0.01, 1, 97)

	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			ref, err := cfg.make()
			if err != nil {
				t.Fatal(err)
			}

			got, _ := cfg.make()

			want := run(ref, in)
			buf := append([]float64(nil), in...)
			got.ProcessBlock(buf)

			testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)
		})
	}
}

func TestController_PolesAndStability(t *testing.T) {
	c, err := NewPID(2, 1, 1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	// (2.5, -1, 0.5, -1, 0): integrator pole at 1, filter pole at 0.
	poles := c.Poles()
	if math.Abs(real(poles[0])-1) > eps || math.Abs(real(poles[1])) > eps {
		t.Fatalf("poles = %v", poles)
	}

	if !c.Stable() {
		t.Fatal("a marginal integrator pole counts as stable")
	}

	zeros := c.Zeros()
	if math.Abs(real(zeros[0])+real(zeros[1])-0.4) > eps {
		t.Fatalf("zeros = %v, want sum 0.4", zeros)
	}
}

func TestKind_String(t *testing.T) {
	for k, want := range map[Kind]string{P: "P", PI: "PI", PD: "PD", PID: "PID", Kind(9): "Kind(9)"} {
		if k.String() != want {
			t.Errorf("%d: got %q, want %q", int(k), k.String(), want)
		}
	}
}

func TestParseAntiWindup(t *testing.T) {
	tests := []struct {
		in   string
		want AntiWindup
	}{
		{"freeze", AntiWindupFreeze},
		{" Clamp ", AntiWindupFreeze},
		{"NONE", AntiWindupNone},
		{"off", AntiWindupNone},
	}

	for _, tt := range tests {
		got, err := ParseAntiWindup(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseAntiWindup(%q) = %v, %v", tt.in, got, err)
		}
	}

	if _, err := ParseAntiWindup("back-calculation"); !errors.Is(err, ErrAntiWindup) {
		t.Fatalf("got %v, want ErrAntiWindup", err)
	}

	if s := AntiWindup(7).String(); s != "AntiWindup(7)" {
		t.Fatalf("String() = %q", s)
	}
}

// firstOrderPlant is x[k+1] = 0.9 x[k] + 0.1 u[k] with unity DC gain.
func firstOrderPlant(t *testing.T) *statespace.System {
	t.Helper()

	s, err := statespace.New(
		mat.NewDense(1, 1, []float64{0.9}),
		mat.NewDense(1, 1, []float64{0.1}),
		mat.NewDense(1, 1, []float64{1}),
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	return s
}

func TestClosedLoop_FreezeReducesOvershoot(t *testing.T) {
	overshoot := make(map[AntiWindup]float64)

	for _, aw := range policies {
		c, err := NewPI(0.1, 3, 0.5, WithLimit(1.5), WithAntiWindup(aw))
		if err != nil {
			t.Fatal(err)
		}

		y := testutil.ClosedLoop(c.ProcessSample, firstOrderPlant(t), 1, 300)
		testutil.RequireFinite(t, y)

		if final := y[len(y)-1]; math.Abs(final-1) > 1e-6 {
			t.Fatalf("%v: settled at %v, want 1", aw, final)
		}

		overshoot[aw] = testutil.Peak(y) - 1
	}

	if overshoot[AntiWindupFreeze] > 0.01 {
		t.Errorf("freeze overshoot %.4f, want below 1%%", overshoot[AntiWindupFreeze])
	}

	if overshoot[AntiWindupNone] < 0.2 {
		t.Errorf("no anti-windup overshoot %.4f, want above 20%%", overshoot[AntiWindupNone])
	}
}

func BenchmarkController_ProcessSample(b *testing.B) {
	for _, aw := range policies {
		b.Run(aw.String(), func(b *testing.B) {
			c, err := NewPID(1e-3, 2, 0.05, 0.01, 10, WithLimit(10), WithAntiWindup(aw))
			if err != nil {
				b.Fatal(err)
			}

			var u float64
			for b.Loop() {
				u = c.ProcessSample(0.01)
			}

			_ = u
		})
	}
}
