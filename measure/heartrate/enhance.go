package heartrate

import (
	"math"

	"github.com/cwbudde/algo-ecg/dsp/conv"
	"github.com/cwbudde/algo-vecmath"
)

// DefaultSmoothingSeconds is the moving-average span applied to the squared
// derivative, roughly the width of a QRS complex.
const DefaultSmoothingSeconds = 0.150

// SmoothingWidth returns the moving-average width in samples for a span of
// seconds at sampleRate, never less than 1.
func SmoothingWidth(seconds float64, sampleRate int) int {
	return max(int(math.Round(seconds*float64(sampleRate))), 1)
}

// Enhance turns a band-passed ECG into an envelope whose maxima sit on the
// QRS complexes: first difference, pointwise square, then a centred moving
// average over 150 ms. The envelope has len(filtered)-1 samples.
func Enhance(filtered []float64, sampleRate int) []float64 {
	return enhance(filtered, SmoothingWidth(DefaultSmoothingSeconds, sampleRate))
}

func enhance(filtered []float64, width int) []float64 {
	if len(filtered) < 2 {
		return []float64{}
	}

	d := make([]float64, len(filtered)-1)
	for i := range d {
		d[i] = filtered[i+1] - filtered[i]
	}
	sq := make([]float64, len(d))
	vecmath.MulBlock(sq, d, d)

	env, err := conv.MovingAverage(sq, width)
	if err != nil {
		return []float64{}
	}

	return env
}
