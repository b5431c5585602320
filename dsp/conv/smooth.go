package conv

import "fmt"

// Boxcar returns a normalized rectangular kernel of the given width.
func Boxcar(width int) []float64 {
	if width <= 0 {
		return nil
	}
	k := make([]float64, width)
	w := 1 / float64(width)
	for i := range k {
		k[i] = w
	}
	return k
}

// MovingAverage smooths x with a centred moving average of the given width.
// The result has len(x) samples; near the edges the window is zero-padded,
// so edge values are attenuated rather than renormalized. A width of 1
// returns a copy of x.
func MovingAverage(x []float64, width int) ([]float64, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if width == 1 {
		return append([]float64(nil), x...), nil
	}

	full, err := Convolve(x, Boxcar(width))
	if err != nil {
		return nil, err
	}
	start := (width - 1) / 2
	return full[start : start+len(x)], nil
}
