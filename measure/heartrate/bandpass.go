package heartrate

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/filter/design/pass"
	"github.com/cwbudde/algo-ecg/dsp/filter/zerophase"
)

// Default band-pass parameters for QRS isolation.
const (
	DefaultLowHz  = 5.0
	DefaultHighHz = 25.0
	DefaultOrder  = 4
)

// Bandpass applies a zero-phase Butterworth band-pass of the given prototype
// order to samples. The output has the same length as the input.
//
// Errors wrap ErrFilter together with the cause: pass.ErrInvalidBand when the
// cutoffs do not fit below sampleRate/2, zerophase.ErrTooShort when samples
// cannot hold the edge padding of zerophase.MinLength(order) samples.
func Bandpass(samples []float64, sampleRate int, lowHz, highHz float64, order int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, sampleRate)
	}

	sections, err := pass.ButterworthBP(lowHz, highHz, order, float64(sampleRate))
	if err != nil {
		return nil, fmt.Errorf("%w: %.4g-%.4g Hz at %d Hz: %w", ErrFilter, lowHz, highHz, sampleRate, err)
	}

	out, err := zerophase.Filter(sections, samples)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFilter, err)
	}

	return out, nil
}
