// Package control implements the classic feedback controllers P, PI, PD and
// PID on top of the discretized sections of dsp/filter/design/pid.
//
// A [Controller] turns an error sample into a control effort. The raw effort
// passes through a hysteretic [Limiter]: once the output leaves [-L, L] it
// stays clamped until the raw effort is back inside the band. While the
// limiter clips, the default [AntiWindupFreeze] policy stops the integrator
// from accumulating.
//
// [Proportional] and [PIDOf] are the generic variants for integral element
// types, for fixed-point loops where no floating-point synthesis is wanted
// at run time.
//
// Controllers are not safe for concurrent use.
package control
