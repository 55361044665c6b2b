// Package pid synthesizes discrete PID-family controllers as biquad
// sections.
//
// The continuous controller
//
//	C(s) = Kp + Ki/s + Kd*s/(Tf*s + 1)
//
// is discretized with one of three integration methods (see [Method]) into a
// single second-order section ([Coefficients]) or into its parallel
// realization ([Terms]). Parameters are given either in gain form
// ([Params]) or in time-constant form ([TimeConstants]), where
// Ki = Kp/Ti, Kd = Kp*Td and Tf = Td/N.
//
// Synthesis is a pure function of its inputs.
package pid
