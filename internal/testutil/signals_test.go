package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(10, 1e-3, 1.0, 100)
	if len(s) != 100 {
		t.Fatalf("len = %d, want 100", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// A quarter period of 10 Hz at 1 kHz is 25 samples.
	if math.Abs(s[25]-1) > 1e-12 {
		t.Fatalf("s[25] = %v, want 1", s[25])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}

	for i, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestStepAndRamp(t *testing.T) {
	for i, v := range Step(0.5, 4) {
		if v != 0.5 {
			t.Fatalf("Step[%d] = %v, want 0.5", i, v)
		}
	}
	for i, v := range Ramp(5) {
		if v != float64(i) {
			t.Fatalf("Ramp[%d] = %v", i, v)
		}
	}
}

type gainPlant float64

func (g gainPlant) StepScalar(u float64) float64 { return float64(g) * u }

func TestClosedLoop(t *testing.T) {
	// Unity controller around a 0.5 static gain settles at 1/3 of the
	// setpoint, alternating around it.
	y := ClosedLoop(func(e float64) float64 { return e }, gainPlant(0.5), 1, 3)
	want := []float64{0.5, 0.25, 0.375}
	RequireSliceNearlyEqual(t, y, want, 1e-15)
}
