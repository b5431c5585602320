package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// BlockConvolver applies a fixed kernel to signals of any length by FFT
// overlap-add: the input is cut into blocks, each block is transformed,
// multiplied by the kernel spectrum and transformed back, and the tails of
// neighbouring blocks are summed.
type BlockConvolver struct {
	spectrum []complex128
	taps     int
	block    int
	plan     *algofft.Plan[complex128]
	buf      []complex128
}

// NewBlockConvolver prepares kernel for block convolution. A blockSize of
// 0 picks the larger of 256 and the kernel length rounded up to a power of
// two.
func NewBlockConvolver(kernel []float64, blockSize int) (*BlockConvolver, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		blockSize = max(fftLength(len(kernel)), 256)
	}

	size := fftLength(blockSize + len(kernel) - 1)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("conv: fft plan of size %d: %w", size, err)
	}

	bc := &BlockConvolver{
		spectrum: make([]complex128, size),
		taps:     len(kernel),
		block:    blockSize,
		plan:     plan,
		buf:      make([]complex128, size),
	}
	for i, v := range kernel {
		bc.buf[i] = complex(v, 0)
	}
	if err := plan.Forward(bc.spectrum, bc.buf); err != nil {
		return nil, fmt.Errorf("conv: kernel spectrum: %w", err)
	}

	return bc, nil
}

// Apply returns the full linear convolution of x with the kernel.
func (bc *BlockConvolver) Apply(x []float64) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]float64, len(x)+bc.taps-1)
	for off := 0; off < len(x); off += bc.block {
		seg := x[off:min(off+bc.block, len(x))]

		clear(bc.buf)
		for i, v := range seg {
			bc.buf[i] = complex(v, 0)
		}
		if err := bc.plan.Forward(bc.buf, bc.buf); err != nil {
			return nil, fmt.Errorf("conv: forward fft: %w", err)
		}
		for i, s := range bc.spectrum {
			bc.buf[i] *= s
		}
		if err := bc.plan.Inverse(bc.buf, bc.buf); err != nil {
			return nil, fmt.Errorf("conv: inverse fft: %w", err)
		}

		tail := out[off:min(off+len(seg)+bc.taps-1, len(out))]
		for i := range tail {
			tail[i] += real(bc.buf[i])
		}
	}

	return out, nil
}
