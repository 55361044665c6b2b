package signal

import (
	"math/rand"

	"github.com/cwbudde/algo-control/dsp/core"
)

// PRBSSource streams a pseudo-random binary sequence of ±1 values in any
// signed element type. Each source owns its generator state.
type PRBSSource[T core.Signed] struct {
	seed int64
	rng  *rand.Rand
}

// NewPRBSSource returns a source seeded with seed.
func NewPRBSSource[T core.Signed](seed int64) *PRBSSource[T] {
	return &PRBSSource[T]{seed: seed, rng: rand.New(rand.NewSource(seed))}
}

// Next returns the next value, -1 or +1.
func (p *PRBSSource[T]) Next() T {
	return T(p.rng.Intn(2)*2 - 1)
}

// Fill writes the next len(dst) values into dst.
func (p *PRBSSource[T]) Fill(dst []T) {
	for i := range dst {
		dst[i] = p.Next()
	}
}

// Reset restarts the sequence from the seed.
func (p *PRBSSource[T]) Reset() {
	p.rng.Seed(p.seed)
}
