package ecg

import (
	"fmt"
	"math"
	"time"
)

// Window is a contiguous slice of a Waveform. Samples aliases the parent.
type Window struct {
	Index   int
	Offset  int
	Start   time.Time
	Samples []int32
}

// Len returns the number of samples in the window.
func (w Window) Len() int { return len(w.Samples) }

// RateSample is the heart rate estimated for one window, stamped with the
// time of the window's first sample.
type RateSample struct {
	Time time.Time
	BPM  int
}

// WindowLength converts a window duration into samples, rounding to the
// nearest sample.
func WindowLength(seconds float64, sampleRate int) int {
	return int(math.Round(seconds * float64(sampleRate)))
}

// Windows cuts w into consecutive non-overlapping windows of length samples
// starting at offset 0. A trailing window shorter than half of length is
// dropped; a longer one is kept at its shorter length.
func (w Waveform) Windows(length int) ([]Window, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, length)
	}

	n := len(w.Samples)
	windows := make([]Window, 0, (n+length-1)/length)
	for off := 0; off < n; off += length {
		end := min(off+length, n)
		if float64(end-off) < float64(length)/2 {
			continue
		}
		windows = append(windows, Window{
			Index:   len(windows),
			Offset:  off,
			Start:   w.TimeAt(off),
			Samples: w.Samples[off:end],
		})
	}

	return windows, nil
}
