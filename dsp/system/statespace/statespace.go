package statespace

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimension is returned when matrix or vector sizes disagree.
	ErrDimension = errors.New("statespace: dimension mismatch")
	// ErrSampleTime is returned for a non-positive or non-finite sample time.
	ErrSampleTime = errors.New("statespace: sample time must be positive and finite")
)

// System is a discrete LTI system with n states, p inputs and q outputs.
// The state starts at zero.
type System struct {
	a, b, c, d *mat.Dense

	x, u, y *mat.VecDense
	ax, bu  *mat.VecDense
	cx, du  *mat.VecDense
}

// New validates the shapes A (n×n), B (n×p), C (q×n) and D (q×p) and
// returns a system at rest. A nil D is the zero feed-through.
// The matrices are copied.
func New(a, b, c, d *mat.Dense) (*System, error) {
	if a == nil || b == nil || c == nil {
		return nil, fmt.Errorf("A, B and C are required: %w", ErrDimension)
	}

	n, nc := a.Dims()
	if n != nc {
		return nil, fmt.Errorf("A is %dx%d: %w", n, nc, ErrDimension)
	}

	br, p := b.Dims()
	if br != n {
		return nil, fmt.Errorf("B has %d rows, want %d: %w", br, n, ErrDimension)
	}

	q, cc := c.Dims()
	if cc != n {
		return nil, fmt.Errorf("C has %d columns, want %d: %w", cc, n, ErrDimension)
	}

	if d == nil {
		d = mat.NewDense(q, p, nil)
	} else if dr, dc := d.Dims(); dr != q || dc != p {
		return nil, fmt.Errorf("D is %dx%d, want %dx%d: %w", dr, dc, q, p, ErrDimension)
	}

	return &System{
		a:  mat.DenseCopyOf(a),
		b:  mat.DenseCopyOf(b),
		c:  mat.DenseCopyOf(c),
		d:  mat.DenseCopyOf(d),
		x:  mat.NewVecDense(n, nil),
		u:  mat.NewVecDense(p, nil),
		y:  mat.NewVecDense(q, nil),
		ax: mat.NewVecDense(n, nil),
		bu: mat.NewVecDense(n, nil),
		cx: mat.NewVecDense(q, nil),
		du: mat.NewVecDense(q, nil),
	}, nil
}

// Dims returns the number of states, inputs and outputs.
func (s *System) Dims() (states, inputs, outputs int) {
	return s.x.Len(), s.u.Len(), s.y.Len()
}

// Step applies input u for one sample and returns the new output.
func (s *System) Step(u []float64) ([]float64, error) {
	if len(u) != s.u.Len() {
		return nil, fmt.Errorf("input has %d elements, want %d: %w", len(u), s.u.Len(), ErrDimension)
	}

	for i, v := range u {
		s.u.SetVec(i, v)
	}

	s.advance()

	return mat.Col(nil, 0, s.y), nil
}

// StepScalar drives the first input with u, holds the others at zero and
// returns the first output.
func (s *System) StepScalar(u float64) float64 {
	s.u.Zero()
	s.u.SetVec(0, u)
	s.advance()

	return s.y.AtVec(0)
}

func (s *System) advance() {
	s.ax.MulVec(s.a, s.x)
	s.bu.MulVec(s.b, s.u)
	s.x.AddVec(s.ax, s.bu)

	s.cx.MulVec(s.c, s.x)
	s.du.MulVec(s.d, s.u)
	s.y.AddVec(s.cx, s.du)
}

// Output returns the output of the last step.
func (s *System) Output() []float64 {
	return mat.Col(nil, 0, s.y)
}

// State returns a copy of the state vector.
func (s *System) State() []float64 {
	return mat.Col(nil, 0, s.x)
}

// SetState replaces the state vector.
func (s *System) SetState(x []float64) error {
	if len(x) != s.x.Len() {
		return fmt.Errorf("state has %d elements, want %d: %w", len(x), s.x.Len(), ErrDimension)
	}

	for i, v := range x {
		s.x.SetVec(i, v)
	}

	return nil
}

// Reset zeroes the state and the last output.
func (s *System) Reset() {
	s.x.Zero()
	s.y.Zero()
}

// Discretize converts the continuous system x' = A x + B u to its
// zero-order-hold equivalent at sample time ts. Both blocks come out of a
// single matrix exponential of the augmented matrix [A B; 0 0]*ts.
func Discretize(a, b *mat.Dense, ts float64) (ad, bd *mat.Dense, err error) {
	if !(ts > 0) || math.IsInf(ts, 0) {
		return nil, nil, fmt.Errorf("%v: %w", ts, ErrSampleTime)
	}

	if a == nil || b == nil {
		return nil, nil, fmt.Errorf("A and B are required: %w", ErrDimension)
	}

	n, nc := a.Dims()
	if n != nc {
		return nil, nil, fmt.Errorf("A is %dx%d: %w", n, nc, ErrDimension)
	}

	br, p := b.Dims()
	if br != n {
		return nil, nil, fmt.Errorf("B has %d rows, want %d: %w", br, n, ErrDimension)
	}

	m := mat.NewDense(n+p, n+p, nil)
	m.Slice(0, n, 0, n).(*mat.Dense).Scale(ts, a)
	m.Slice(0, n, n, n+p).(*mat.Dense).Scale(ts, b)

	var e mat.Dense
	e.Exp(m)

	ad = mat.DenseCopyOf(e.Slice(0, n, 0, n))
	bd = mat.DenseCopyOf(e.Slice(0, n, n, n+p))

	return ad, bd, nil
}
