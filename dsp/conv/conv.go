package conv

import "errors"

// Errors returned by convolution functions.
var (
	ErrEmptyInput   = errors.New("conv: empty input")
	ErrEmptyKernel  = errors.New("conv: empty kernel")
	ErrInvalidWidth = errors.New("conv: invalid smoothing width")
)

// fftCutover is the kernel length above which [Convolve] switches from the
// time domain to FFT block convolution.
const fftCutover = 64

// Direct returns the full linear convolution of x and h, len(x)+len(h)-1
// samples, computed in the time domain.
func Direct(x, h []float64) ([]float64, error) {
	if err := check(x, h); err != nil {
		return nil, err
	}

	out := make([]float64, len(x)+len(h)-1)
	for i, v := range x {
		if v == 0 {
			continue
		}
		acc := out[i : i+len(h)]
		for j, k := range h {
			acc[j] += v * k
		}
	}

	return out, nil
}

// Convolve returns the full linear convolution of x and h. The shorter of
// the two is used as the kernel; kernels longer than 64 taps are applied
// with FFT block convolution, shorter ones directly.
func Convolve(x, h []float64) ([]float64, error) {
	if err := check(x, h); err != nil {
		return nil, err
	}
	if len(h) > len(x) {
		x, h = h, x
	}
	if len(h) <= fftCutover {
		return Direct(x, h)
	}

	bc, err := NewBlockConvolver(h, 0)
	if err != nil {
		return nil, err
	}
	return bc.Apply(x)
}

func check(x, h []float64) error {
	switch {
	case len(x) == 0:
		return ErrEmptyInput
	case len(h) == 0:
		return ErrEmptyKernel
	}
	return nil
}

// fftLength returns the smallest power of two not below n.
func fftLength(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
