package heartrate

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// RRIntervals converts peak indices into the seconds between consecutive
// peaks.
func RRIntervals(peaks []int, sampleRate int) []float64 {
	if len(peaks) < 2 || sampleRate <= 0 {
		return nil
	}
	rr := make([]float64, len(peaks)-1)
	for i := range rr {
		rr[i] = float64(peaks[i+1]-peaks[i]) / float64(sampleRate)
	}
	return rr
}

// EstimateRate returns the heart rate implied by the mean RR interval of
// peaks, truncated toward zero to whole beats per minute.
func EstimateRate(peaks []int, sampleRate int) (int, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, sampleRate)
	}
	if len(peaks) < 2 {
		return 0, fmt.Errorf("%w: found %d", ErrTooFewPeaks, len(peaks))
	}

	meanRR := stat.Mean(RRIntervals(peaks, sampleRate), nil)
	if !(meanRR > 0) {
		return 0, fmt.Errorf("%w: non-increasing peak positions", ErrTooFewPeaks)
	}

	return int(60 / meanRR), nil
}
