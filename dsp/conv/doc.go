// Package conv implements linear convolution and the centred moving average
// used to smooth QRS energy envelopes.
//
// [Convolve] picks the time-domain method for kernels up to 64 taps and
// FFT overlap-add ([BlockConvolver]) above that; both agree to rounding.
//
//	full, err := conv.Convolve(x, h)
//	env, err := conv.MovingAverage(sq, 20)
package conv
