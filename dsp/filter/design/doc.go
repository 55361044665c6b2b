// Package design provides coefficient designers for the filters placed
// around a controller.
//
// The functions in this package produce biquad coefficients consumable by
// dsp/filter/biquad for runtime processing: measurement low-passes,
// resonance notches, Butterworth cascades, the bilinear map of an analog
// section, and [Cascade], which factors an arbitrary-order transfer
// function into second-order sections.
//
// The sub-package design/pid synthesizes PID-family controllers.
package design
