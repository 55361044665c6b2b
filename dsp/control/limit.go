package control

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-control/dsp/core"
)

// ErrLimit is returned for a negative or NaN output limit.
var ErrLimit = errors.New("control: limit must be non-negative")

// Limit is the symmetric output bound of a controller: either Bounded by a
// magnitude L, clamping to [-L, L], or Unbounded.
//
// The zero value is Bounded(0).
type Limit[T core.Signed] struct {
	value   T
	bounded bool
}

// Bounded returns the limit [-v, v].
func Bounded[T core.Signed](v T) Limit[T] {
	return Limit[T]{value: v, bounded: true}
}

// Unbounded returns a limit that never clips.
func Unbounded[T core.Signed]() Limit[T] {
	return Limit[T]{}
}

// Value returns the bound and whether the limit is bounded at all.
func (l Limit[T]) Value() (T, bool) {
	return l.value, l.bounded
}

// IsBounded reports whether the limit clips.
func (l Limit[T]) IsBounded() bool {
	return l.bounded
}

// Validate rejects bounded limits below zero. For floating-point element
// types NaN is rejected as well; +Inf is accepted and never clips.
func (l Limit[T]) Validate() error {
	if !l.bounded {
		return nil
	}

	if !(l.value >= 0) {
		return fmt.Errorf("%v: %w", l.value, ErrLimit)
	}

	return nil
}

func (l Limit[T]) String() string {
	if !l.bounded {
		return "unbounded"
	}

	return fmt.Sprintf("±%v", l.value)
}

// Limiter clamps a control effort with hysteresis.
//
// The limiter enters the clipping state when the effort leaves [-L, L] and
// leaves it only once the effort is back inside the band. An unbounded
// limiter passes every value through and never clips.
//
// NaN efforts pass through unchanged: every comparison with NaN is false, so
// the clipping state is left as it was.
type Limiter[T core.Signed] struct {
	limit    Limit[T]
	clipping bool
}

// NewLimiter returns a limiter for l in the linear state.
func NewLimiter[T core.Signed](l Limit[T]) (*Limiter[T], error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &Limiter[T]{limit: l}, nil
}

// Apply limits one control effort and updates the clipping state.
func (l *Limiter[T]) Apply(u T) T {
	if !l.limit.bounded {
		return u
	}

	lim := l.limit.value

	if !l.clipping && (u > lim || u < -lim) {
		l.clipping = true
	} else if l.clipping && u >= -lim && u <= lim {
		l.clipping = false
	}

	if !l.clipping {
		return u
	}

	// NaN compares false against both bounds and is returned as is.
	return core.ClampOf(u, -lim, lim)
}

// Clipping reports whether the last Apply clamped its input.
func (l *Limiter[T]) Clipping() bool {
	return l.clipping
}

// Limit returns the configured limit.
func (l *Limiter[T]) Limit() Limit[T] {
	return l.limit
}

// SetLimit replaces the limit. The clipping state is kept and re-evaluated
// on the next Apply; switching to Unbounded clears it.
func (l *Limiter[T]) SetLimit(limit Limit[T]) error {
	if err := limit.Validate(); err != nil {
		return err
	}

	l.limit = limit
	if !limit.bounded {
		l.clipping = false
	}

	return nil
}

// Reset returns the limiter to the linear state.
func (l *Limiter[T]) Reset() {
	l.clipping = false
}
