package biquad

import (
	"errors"
	"fmt"
)

// ErrSectionCount is returned when a coefficient or state update does not
// match the number of sections in a Chain.
var ErrSectionCount = errors.New("biquad: section count mismatch")

// Chain is an ordered cascade of biquad sections processed in series.
// The output of section i is the input of section i+1. The number of
// sections is fixed when the chain is built.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets an overall gain applied to the input before cascading.
// Default is 1.0 (unity gain).
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade from zero or more coefficient sets.
// An empty chain passes its (gain-scaled) input through.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{
		sections: make([]Section, len(coeffs)),
		gain:     cfg.gain,
	}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample feeds x through every section in order.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i, x := range buf {
			buf[i] = x * c.gain
		}
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the nominal filter order, two per section.
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the input gain.
func (c *Chain) Gain() float64 { return c.gain }

// SetGain updates the input gain.
func (c *Chain) SetGain(g float64) { c.gain = g }

// Coefficients returns a copy of every section's coefficients.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}

// UpdateCoefficients replaces the section coefficients while keeping every
// delay line, so a retuned chain continues without a state discontinuity.
// The slice length must equal NumSections.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients) error {
	if len(coeffs) != len(c.sections) {
		return fmt.Errorf("update %d sections with %d coefficient sets: %w",
			len(c.sections), len(coeffs), ErrSectionCount)
	}

	for i := range c.sections {
		c.sections[i].Coefficients = coeffs[i]
	}

	return nil
}

// Section returns a pointer to the i-th section for inspection or modification.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// State returns a snapshot of all section delay-line states.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores previously saved section states.
func (c *Chain) SetState(states [][2]float64) error {
	if len(states) != len(c.sections) {
		return fmt.Errorf("restore %d sections from %d states: %w",
			len(c.sections), len(states), ErrSectionCount)
	}

	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}

	return nil
}
