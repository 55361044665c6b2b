package core

import (
	"math"
	"testing"
)

func TestApplyLoopOptions(t *testing.T) {
	cfg := ApplyLoopOptions(WithSampleTime(0.01), WithBlockSize(2048))
	if cfg.SampleTime != 0.01 {
		t.Fatalf("sample time = %v, want 0.01", cfg.SampleTime)
	}
	if cfg.BlockSize != 2048 {
		t.Fatalf("block size = %d, want 2048", cfg.BlockSize)
	}
	if math.Abs(cfg.SampleRate()-100) > 1e-12 {
		t.Fatalf("sample rate = %v, want 100", cfg.SampleRate())
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyLoopOptions(WithSampleTime(0), WithSampleTime(-1), WithBlockSize(-1), nil)
	def := DefaultLoopConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
