// Package signal generates deterministic stimulus signals for control
// loops: steps, impulses, sines, white noise and pseudo-random binary
// sequences for system identification.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-control/dsp/core"
)

// Generator creates deterministic signals from a shared loop configuration.
// Every call draws from a fresh generator seeded with the configured seed,
// so repeated calls return the same sequence.
type Generator struct {
	cfg  core.LoopConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise and PRBS generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for the given loop timing.
func NewGenerator(opts ...core.LoopOption) *Generator {
	return &Generator{
		cfg:  core.ApplyLoopOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a generator with loop and signal options.
func NewGeneratorWithOptions(loopOpts []core.LoopOption, opts ...Option) *Generator {
	g := NewGenerator(loopOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the loop configuration.
func (g *Generator) Config() core.LoopConfig {
	return g.cfg
}

// Seed returns the random seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

// SetSeed replaces the random seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates amplitude*sin(2*pi*freqHz*k*Ts).
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if nyquist := g.cfg.SampleRate() / 2; freqHz < 0 || freqHz > nyquist {
		return nil, fmt.Errorf("sine frequency must be in [0, %g]: %f", nyquist, freqHz)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz * g.cfg.SampleTime
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Step generates a constant signal that switches from zero to amplitude at
// sample delay.
func (g *Generator) Step(amplitude float64, samples, delay int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("step samples must be > 0: %d", samples)
	}
	if delay < 0 || delay >= samples {
		return nil, fmt.Errorf("step delay must be in [0, %d): %d", samples, delay)
	}
	out := make([]float64, samples)
	for i := delay; i < samples; i++ {
		out[i] = amplitude
	}
	return out, nil
}

// Impulse generates a single sample of the given amplitude at pos.
func (g *Generator) Impulse(amplitude float64, samples, pos int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	if pos < 0 || pos >= samples {
		return nil, fmt.Errorf("impulse position must be in [0, %d): %d", samples, pos)
	}
	out := make([]float64, samples)
	out[pos] = amplitude
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// PRBS generates a pseudo-random binary sequence of ±1 values.
func (g *Generator) PRBS(samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("prbs samples must be > 0: %d", samples)
	}
	src := NewPRBSSource[float64](g.seed)
	out := make([]float64, samples)
	for i := range out {
		out[i] = src.Next()
	}
	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}
