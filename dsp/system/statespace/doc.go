// Package statespace steps discrete linear time-invariant systems
//
//	x[k+1] = A x[k] + B u[k]
//	y[k]   = C x[k+1] + D u[k]
//
// on gonum matrices. Systems are used as plant models around the
// controllers in dsp/control.
package statespace
