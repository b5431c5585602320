package heartrate

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-ecg/dsp/peaks"
)

// Peak picking defaults. 300 ms between beats caps the rate at 200 BPM.
const (
	DefaultMinRRSeconds    = 0.3
	DefaultPeakHeightRatio = 0.4
)

// MinPeakDistance returns the minimum number of samples between two QRS
// peaks for a refractory span of seconds at sampleRate, never less than 1.
func MinPeakDistance(seconds float64, sampleRate int) int {
	return max(int(math.Round(seconds*float64(sampleRate))), 1)
}

// DetectPeaks returns the envelope indices of QRS complexes: local maxima
// at least 40% as tall as the tallest envelope value and at least 300 ms
// apart. A flat or all-zero envelope has no peaks.
func DetectPeaks(envelope []float64, sampleRate int) []int {
	return detectPeaks(envelope, MinPeakDistance(DefaultMinRRSeconds, sampleRate), DefaultPeakHeightRatio)
}

func detectPeaks(envelope []float64, distance int, ratio float64) []int {
	if len(envelope) == 0 {
		return nil
	}

	top := floats.Max(envelope)
	if !(top > 0) {
		return nil
	}

	return peaks.Find(envelope,
		peaks.WithHeight(ratio*top),
		peaks.WithDistance(distance),
	)
}
