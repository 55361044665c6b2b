package response

import "math"

// Integrals holds the classic error integrals of a tracking error e(t).
type Integrals struct {
	Length int
	IAE    float64 // ∫|e| dt
	ISE    float64 // ∫e² dt
	ITAE   float64 // ∫t|e| dt
	MaxAbs float64
}

// ErrorIntegrals computes the error integrals of e sampled every ts
// seconds with the rectangle rule, t = k*ts.
func ErrorIntegrals(e []float64, ts float64) Integrals {
	var acc Accumulator
	acc.ts = ts
	acc.Update(e)
	return acc.Result()
}

// Accumulator collects error integrals over streamed blocks, e.g. from a
// running control loop.
type Accumulator struct {
	ts  float64
	res Integrals
}

// NewAccumulator creates an accumulator for sample time ts.
func NewAccumulator(ts float64) *Accumulator {
	return &Accumulator{ts: ts}
}

// Update adds a block of error samples.
func (a *Accumulator) Update(e []float64) {
	for _, v := range e {
		abs := math.Abs(v)
		t := float64(a.res.Length) * a.ts

		a.res.IAE += abs * a.ts
		a.res.ISE += v * v * a.ts
		a.res.ITAE += t * abs * a.ts
		a.res.MaxAbs = max(a.res.MaxAbs, abs)
		a.res.Length++
	}
}

// Result returns the integrals accumulated so far.
func (a *Accumulator) Result() Integrals { return a.res }

// Reset clears the accumulated integrals.
func (a *Accumulator) Reset() { a.res = Integrals{} }
