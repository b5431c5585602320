package ecg

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Errors reported by waveform operations.
var (
	ErrInvalidSampleRate  = errors.New("ecg: sample rate must be positive")
	ErrInvalidWindow      = errors.New("ecg: window length must be positive")
	ErrSampleRateMismatch = errors.New("ecg: recordings have different sample rates")
	ErrNoWaveforms        = errors.New("ecg: nothing to concatenate")
)

// Waveform is a continuous run of signed ECG samples taken at SampleRate Hz,
// the first of which was taken at Start.
type Waveform struct {
	Start      time.Time
	SampleRate int
	Samples    []int32
}

// Validate reports an error when the waveform cannot be interpreted.
func (w Waveform) Validate() error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, w.SampleRate)
	}
	return nil
}

// Len returns the number of samples.
func (w Waveform) Len() int { return len(w.Samples) }

// Duration returns the time covered by the samples.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return w.Offset(len(w.Samples))
}

// Offset converts a sample offset into elapsed time from Start.
func (w Waveform) Offset(samples int) time.Duration {
	return time.Duration(math.Round(float64(samples) / float64(w.SampleRate) * float64(time.Second)))
}

// TimeAt returns the absolute time of the sample at index i.
func (w Waveform) TimeAt(i int) time.Time {
	return w.Start.Add(w.Offset(i))
}

// ToFloat64 widens int32 samples to float64.
func ToFloat64(samples []int32) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = float64(v)
	}
	return out
}

// Concat joins recordings end to end into one continuous waveform. The
// result starts at the first recording's Start; gaps between recordings are
// not represented. All recordings must share the first one's sample rate.
func Concat(parts ...Waveform) (Waveform, error) {
	if len(parts) == 0 {
		return Waveform{}, ErrNoWaveforms
	}

	first := parts[0]
	if err := first.Validate(); err != nil {
		return Waveform{}, err
	}

	total := 0
	for i, p := range parts {
		if p.SampleRate != first.SampleRate {
			return Waveform{}, fmt.Errorf("%w: part %d has %d Hz, want %d Hz",
				ErrSampleRateMismatch, i, p.SampleRate, first.SampleRate)
		}
		total += len(p.Samples)
	}

	samples := make([]int32, 0, total)
	for _, p := range parts {
		samples = append(samples, p.Samples...)
	}

	return Waveform{
		Start:      first.Start,
		SampleRate: first.SampleRate,
		Samples:    samples,
	}, nil
}
