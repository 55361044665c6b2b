package response

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-control/dsp/control"
	"github.com/cwbudde/algo-control/dsp/system/statespace"
	"github.com/cwbudde/algo-control/internal/testutil"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func firstOrder(n int) []float64 {
	out := make([]float64, n)
	for k := range out {
		out[k] = 1 - math.Pow(0.9, float64(k))
	}
	return out
}

func TestStep_FirstOrder(t *testing.T) {
	info, err := Step(firstOrder(200), 0.1, WithReference(1))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		got, want float64
	}{
		{"initial", info.Initial, 0},
		{"overshoot", info.OvershootPct, 0},
		{"rise time", info.RiseTime, 2.0860818511144497},
		{"settling time", info.SettlingTime, 3.8},
		{"peak time", info.PeakTime, 19.9},
	}

	for _, tt := range tests {
		if !almostEqual(tt.got, tt.want, tolerance) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if info.Length != 200 || info.PeakPos != 199 {
		t.Errorf("length %d peak pos %d", info.Length, info.PeakPos)
	}

	if info.SteadyStateError <= 0 || info.SteadyStateError > 1e-8 {
		t.Errorf("steady-state error %v", info.SteadyStateError)
	}
}

func TestStep_Underdamped(t *testing.T) {
	y := []float64{0, 0.5, 1.2, 1.1, 0.985, 1.01, 1, 1}

	info, err := Step(y, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(info.OvershootPct, 20, tolerance) {
		t.Errorf("overshoot %v, want 20", info.OvershootPct)
	}
	if info.Peak != 1.2 || info.PeakPos != 2 || info.PeakTime != 1 {
		t.Errorf("peak %v at %d (%v s)", info.Peak, info.PeakPos, info.PeakTime)
	}
	if !almostEqual(info.RiseTime, 1.3714285714285717*0.5, tolerance) {
		t.Errorf("rise time %v", info.RiseTime)
	}
	if info.SettlingTime != 2 {
		t.Errorf("settling time %v, want 2", info.SettlingTime)
	}
	if info.SteadyStateError != 0 {
		t.Errorf("steady-state error %v", info.SteadyStateError)
	}
}

func TestStep_NegativeStep(t *testing.T) {
	y := []float64{2, 1.5, 0.9, 1, 1}

	info, err := Step(y, 1)
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(info.OvershootPct, 10, tolerance) || info.PeakPos != 2 {
		t.Fatalf("overshoot %v at %d", info.OvershootPct, info.PeakPos)
	}
}

func TestStep_NotReached(t *testing.T) {
	info, err := Step([]float64{0, 0.05, 0.2, 0.3}, 1, WithReference(1))
	if err != nil {
		t.Fatal(err)
	}

	if !math.IsNaN(info.RiseTime) || !math.IsNaN(info.SettlingTime) {
		t.Fatalf("rise %v settling %v, want NaN", info.RiseTime, info.SettlingTime)
	}

	if !almostEqual(info.SteadyStateError, 0.7, tolerance) {
		t.Fatalf("steady-state error %v", info.SteadyStateError)
	}
}

func TestStep_Options(t *testing.T) {
	y := firstOrder(200)

	wide, _ := Step(y, 1, WithReference(1), WithBand(0.1), WithRiseLevels(0, 1))
	narrow, _ := Step(y, 1, WithReference(1))

	if !(wide.SettlingTime < narrow.SettlingTime) {
		t.Errorf("wider band must settle earlier: %v >= %v", wide.SettlingTime, narrow.SettlingTime)
	}

	if !math.IsNaN(wide.RiseTime) {
		t.Errorf("rise to 100%% of the reference is never reached: %v", wide.RiseTime)
	}
}

func TestStep_Errors(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
		ts   float64
		want error
	}{
		{"empty", nil, 1, ErrEmptyInput},
		{"zero ts", []float64{0, 1}, 0, ErrSampleTime},
		{"inf ts", []float64{0, 1}, math.Inf(1), ErrSampleTime},
		{"flat", []float64{1, 1, 1}, 1, ErrNoStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Step(tt.y, tt.ts); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestStep_ClosedLoopAntiWindup(t *testing.T) {
	overshoot := func(aw control.AntiWindup) float64 {
		c, err := control.NewPI(0.1, 3, 0.5, control.WithLimit(1.5), control.WithAntiWindup(aw))
		if err != nil {
			t.Fatal(err)
		}

		plant, err := statespace.New(
			mat.NewDense(1, 1, []float64{0.9}),
			mat.NewDense(1, 1, []float64{0.1}),
			mat.NewDense(1, 1, []float64{1}),
			nil,
		)
		if err != nil {
			t.Fatal(err)
		}

		y := append([]float64{0}, testutil.ClosedLoop(c.ProcessSample, plant, 1, 300)...)

		info, err := Step(y, 0.1, WithReference(1))
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(info.SteadyStateError) > 1e-6 || math.IsNaN(info.SettlingTime) {
			t.Fatalf("%v: did not settle: %+v", aw, info)
		}

		return info.OvershootPct
	}

	freeze := overshoot(control.AntiWindupFreeze)
	none := overshoot(control.AntiWindupNone)

	if freeze > 1 || none < 20 {
		t.Fatalf("overshoot freeze=%v%% none=%v%%", freeze, none)
	}
}

func TestErrorIntegrals(t *testing.T) {
	e := []float64{1, -2, 0.5, 0}

	got := ErrorIntegrals(e, 0.5)
	want := Integrals{
		Length: 4,
		IAE:    3.5 * 0.5,
		ISE:    5.25 * 0.5,
		ITAE:   (0*1 + 0.5*2 + 1*0.5) * 0.5,
		MaxAbs: 2,
	}

	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAccumulator_Streaming(t *testing.T) {
	e := testutil.DeterministicNoise(5, 1, 1000)
	want := ErrorIntegrals(e, 0.01)

	acc := NewAccumulator(0.01)
	for start := 0; start < len(e); start += 128 {
		acc.Update(e[start:min(start+128, len(e))])
	}

	got := acc.Result()
	if got.Length != want.Length || got.MaxAbs != want.MaxAbs ||
		!almostEqual(got.IAE, want.IAE, tolerance) ||
		!almostEqual(got.ISE, want.ISE, tolerance) ||
		!almostEqual(got.ITAE, want.ITAE, tolerance) {
		t.Fatalf("streamed %+v, batch %+v", got, want)
	}

	acc.Reset()
	if acc.Result() != (Integrals{}) {
		t.Fatal("reset must clear the integrals")
	}
}

func BenchmarkStep(b *testing.B) {
	y := firstOrder(4096)

	for b.Loop() {
		_, _ = Step(y, 0.001, WithReference(1))
	}
}
