// Package spectrum analyses control loops in the frequency domain.
//
// [FrequencyResponse] transforms a measured or simulated impulse response
// with an FFT, [Probe] measures a single frequency point of a running
// block with a pair of Goertzel filters, and [Margins] reads gain and phase
// margins off an open-loop response.
package spectrum
