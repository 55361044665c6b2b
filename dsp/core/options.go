package core

// LoopConfig defines the timing of a fixed-rate control loop.
type LoopConfig struct {
	// SampleTime is the loop period Ts in seconds.
	SampleTime float64
	BlockSize  int
}

// LoopOption mutates a LoopConfig.
type LoopOption func(*LoopConfig)

// DefaultLoopConfig returns a 1 kHz loop processing 256-sample blocks.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		SampleTime: 1e-3,
		BlockSize:  256,
	}
}

// WithSampleTime sets the loop period in seconds.
func WithSampleTime(ts float64) LoopOption {
	return func(cfg *LoopConfig) {
		if ts > 0 && IsFinite(ts) {
			cfg.SampleTime = ts
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) LoopOption {
	return func(cfg *LoopConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyLoopOptions applies zero or more options to the default config.
func ApplyLoopOptions(opts ...LoopOption) LoopConfig {
	cfg := DefaultLoopConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// SampleRate returns 1/SampleTime.
func (c LoopConfig) SampleRate() float64 {
	return 1 / c.SampleTime
}
