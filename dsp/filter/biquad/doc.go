// Package biquad provides the second-order-section runtime the controllers
// are built on.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by normalized [Coefficients]. Sections can be
// cascaded via [Chain] to realize filters of order greater than two as a
// product of second-order transfer functions.
//
// Coefficients may be given directly, derived from an unnormalized
// six-coefficient form with [Normalize], or from a zero/pole/gain triple with
// [FromZPK]. [Coefficients.Poles], [Coefficients.Zeros] and
// [Coefficients.Stable] provide introspection.
//
// [SectionOf] is the same recursion for any [core.Signed] element type, for
// fixed-point use on integral types.
//
// Coefficient synthesis for PID-family controllers lives in
// dsp/filter/design/pid.
package biquad
