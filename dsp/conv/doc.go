// Package conv provides convolution and correlation of sampled responses.
//
// In a control loop these serve three purposes:
//
//   - computing the forced response of a system from its truncated impulse
//     response ([Convolve], [Direct], [OverlapAdd]);
//   - checking that a cascade of sections behaves as the convolution of the
//     individual impulse responses;
//   - estimating the impulse response of a plant from an identification
//     experiment with a white excitation such as a PRBS
//     ([EstimateImpulseResponse]).
//
// [Convolve] picks direct convolution for short kernels and FFT-based
// overlap-add otherwise.
package conv
