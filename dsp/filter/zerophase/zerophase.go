// Package zerophase applies biquad cascades forward and backward so the
// result carries the squared magnitude response of the cascade and no phase
// shift. Peak positions in the output line up with those in the input.
package zerophase

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

// ErrTooShort is returned when the input cannot accommodate the edge padding.
var ErrTooShort = errors.New("zerophase: signal too short for edge padding")

// ErrNoSections is returned for an empty coefficient set.
var ErrNoSections = errors.New("zerophase: no filter sections")

// PadLen returns the number of samples of odd extension added at each end
// of the signal for a cascade of n sections: three times the number of taps
// of the equivalent direct-form filter.
func PadLen(n int) int {
	return 3 * (2*n + 1)
}

// MinLength returns the shortest input Filter accepts for n sections.
func MinLength(n int) int {
	return PadLen(n) + 1
}

// Filter runs the cascade over x forward, then backward over the reversed
// result, returning a new slice of len(x).
//
// Both ends are extended by odd reflection about the edge sample and every
// pass starts from the steady state matching its first sample, which keeps
// the edges free of start-up transients.
func Filter(sections []biquad.Coefficients, x []float64) ([]float64, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	pad := PadLen(len(sections))
	if len(x) <= pad {
		return nil, fmt.Errorf("%w: %d samples, need more than %d", ErrTooShort, len(x), pad)
	}

	ext := oddExtend(x, pad)
	chain := biquad.NewChain(sections)

	chain.SettleTo(ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.SettleTo(ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	out := make([]float64, len(x))
	copy(out, ext[pad:pad+len(x)])
	return out, nil
}

// oddExtend returns x with pad samples of point-symmetric extension at each
// end: 2*x[0]-x[pad..1] before and 2*x[n-1]-x[n-2..n-1-pad] after.
func oddExtend(x []float64, pad int) []float64 {
	n := len(x)
	ext := make([]float64, n+2*pad)

	first, last := x[0], x[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - x[pad-i]
		ext[pad+n+i] = 2*last - x[n-2-i]
	}
	copy(ext[pad:], x)

	return ext
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
