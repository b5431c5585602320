// Package quality summarizes a stretch of ECG so that windows without a
// usable heart rate can be told apart: flat lines from disconnected leads,
// noise bursts, or a clean trace whose peaks were simply missed.
package quality

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KurtosisThreshold is the (non-excess) kurtosis above which a trace looks
// like ECG rather than noise. Sharp QRS spikes on a quiet baseline give a
// heavy-tailed amplitude distribution; Gaussian noise sits at 3.
const KurtosisThreshold = 5.0

// Summary holds time-domain statistics of a trace.
type Summary struct {
	Length            int
	Baseline          float64 // mean
	RMS               float64 // about the baseline
	Min               float64
	MinPos            int
	Max               float64
	MaxPos            int
	Range             float64 // max - min
	Skewness          float64
	Kurtosis          float64 // excess, 0 for Gaussian
	BaselineCrossings int
}

// Calculate computes a Summary of x. Moments are population moments about
// the baseline.
func Calculate(x []float64) Summary {
	n := len(x)
	if n == 0 {
		return Summary{}
	}

	mean, sd := stat.PopMeanStdDev(x, nil)
	minPos, maxPos := floats.MinIdx(x), floats.MaxIdx(x)

	crossings := 0
	for i := 1; i < n; i++ {
		if (x[i-1]-mean)*(x[i]-mean) < 0 {
			crossings++
		}
	}

	s := Summary{
		Length:            n,
		Baseline:          mean,
		RMS:               sd,
		Min:               x[minPos],
		MinPos:            minPos,
		Max:               x[maxPos],
		MaxPos:            maxPos,
		Range:             x[maxPos] - x[minPos],
		BaselineCrossings: crossings,
	}
	if sd > 0 {
		variance := sd * sd
		s.Skewness = stat.Moment(3, x, nil) / (variance * sd)
		s.Kurtosis = stat.Moment(4, x, nil)/(variance*variance) - 3
	}

	return s
}

// Flat reports whether the trace never moves by more than minRange.
func (s Summary) Flat(minRange float64) bool {
	return s.Length == 0 || s.Range <= minRange
}

// ECGLike reports whether the amplitude distribution is peaky enough to
// carry QRS complexes.
func (s Summary) ECGLike() bool {
	return s.Kurtosis+3 > KurtosisThreshold
}
