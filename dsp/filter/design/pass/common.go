package pass

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrInvalidBand is returned when band edges are not ordered inside
// (0, sampleRate/2) or the prototype order is not positive.
var ErrInvalidBand = errors.New("pass: invalid band edges or order")

// prewarp maps a digital frequency (Hz) to the analog angular frequency that
// the bilinear transform sends back onto it: 2*fs*tan(pi*f/fs).
func prewarp(freq, sampleRate float64) float64 {
	return 2 * sampleRate * math.Tan(math.Pi*freq/sampleRate)
}

// bilinearPole maps an s-plane pole to the z-plane: z = (2fs + s) / (2fs - s).
func bilinearPole(s complex128, sampleRate float64) complex128 {
	k := complex(2*sampleRate, 0)
	return (k + s) / (k - s)
}

// butterworthPrototype returns the left half-plane poles of the normalized
// analog Butterworth low-pass of the given order (cutoff 1 rad/s).
func butterworthPrototype(order int) []complex128 {
	poles := make([]complex128, order)
	for k := range poles {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Rect(1, theta)
	}
	return poles
}
