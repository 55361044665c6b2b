// Package delay models transport delay (dead time) in a sampled loop.
package delay

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Write writes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay-1 writes ago, so Read(1) is the
// latest sample and Read(Len()) the oldest.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := ((d.writePos-delay)%size + size) % size
	return d.buffer[readPos]
}

// Reset clears line state.
func (d *Line) Reset() {
	clear(d.buffer)
	d.writePos = 0
}

// DeadTime delays a signal by a possibly fractional number of samples.
// The fractional part is interpolated linearly between neighbouring taps.
type DeadTime struct {
	line    *Line
	samples float64
	whole   int
	frac    float64
}

// NewDeadTime returns a dead-time element of the given length in samples.
func NewDeadTime(samples float64) (*DeadTime, error) {
	if !(samples >= 0) || math.IsInf(samples, 0) {
		return nil, fmt.Errorf("dead time must be finite and >= 0: %v", samples)
	}

	whole := int(math.Floor(samples))

	line, err := New(whole + 2)
	if err != nil {
		return nil, err
	}

	return &DeadTime{
		line:    line,
		samples: samples,
		whole:   whole,
		frac:    samples - float64(whole),
	}, nil
}

// NewDeadTimeSeconds returns a dead-time element of delay seconds at
// sample time ts.
func NewDeadTimeSeconds(delay, ts float64) (*DeadTime, error) {
	if !(ts > 0) || math.IsInf(ts, 0) {
		return nil, fmt.Errorf("sample time must be positive and finite: %v", ts)
	}
	return NewDeadTime(delay / ts)
}

// Samples returns the delay in samples.
func (d *DeadTime) Samples() float64 { return d.samples }

// ProcessSample pushes x and returns the delayed output.
func (d *DeadTime) ProcessSample(x float64) float64 {
	d.line.Write(x)

	y := d.line.Read(d.whole + 1)
	if d.frac == 0 {
		return y
	}

	return (1-d.frac)*y + d.frac*d.line.Read(d.whole+2)
}

// ProcessBlock delays buf in place.
func (d *DeadTime) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = d.ProcessSample(x)
	}
}

// Response returns the frequency response at freqHz for sample time ts.
func (d *DeadTime) Response(freqHz, ts float64) complex128 {
	w := 2 * math.Pi * freqHz * ts
	z1 := cmplx.Exp(complex(0, -w))
	tap := cmplx.Exp(complex(0, -w*float64(d.whole)))

	return tap * (complex(1-d.frac, 0) + complex(d.frac, 0)*z1)
}

// Reset clears the delayed samples.
func (d *DeadTime) Reset() {
	d.line.Reset()
}
