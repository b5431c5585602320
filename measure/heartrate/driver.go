package heartrate

import (
	"context"
	"fmt"
	"time"

	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/stats/quality"
)

// WindowReport describes how one window was handled.
type WindowReport struct {
	Index    int
	Offset   int // first sample of the window in the recording
	Length   int
	Start    time.Time
	Estimate Estimate // zero unless Status is StatusOK
	Status   Status
	Err      error
	Signal   quality.Summary // statistics of the raw window samples
}

// Observer receives one report per window, in window order.
type Observer func(WindowReport)

// Driver applies an Estimator to consecutive windows of a recording.
type Driver struct {
	estimator *Estimator
	observer  Observer
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithEstimator replaces the default Estimator.
func WithEstimator(e *Estimator) DriverOption {
	return func(d *Driver) {
		if e != nil {
			d.estimator = e
		}
	}
}

// WithObserver installs a callback that sees every window, including the
// ones that produce no rate.
func WithObserver(fn Observer) DriverOption {
	return func(d *Driver) { d.observer = fn }
}

// NewDriver returns a Driver with a default Estimator.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{estimator: NewEstimator()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Process is ProcessWindows starting at the waveform's own Start.
func (d *Driver) Process(wf ecg.Waveform, windowSeconds float64) ([]ecg.RateSample, error) {
	return d.ProcessWindowsContext(context.Background(), wf, windowSeconds, wf.Start)
}

// ProcessWindows cuts wf into windows of windowSeconds, estimates each one
// independently and returns the rates in time order. Window i is stamped
// start + offset_i/SampleRate. Windows without a rate are omitted; a short
// trailing window (less than half the target length) is not processed.
//
// Only a non-positive windowSeconds or sample rate fails the call, with
// ErrInvalidParameter.
func (d *Driver) ProcessWindows(wf ecg.Waveform, windowSeconds float64, start time.Time) ([]ecg.RateSample, error) {
	return d.ProcessWindowsContext(context.Background(), wf, windowSeconds, start)
}

// ProcessWindowsContext is ProcessWindows with cancellation checked between
// windows. On cancellation it returns the rates gathered so far together
// with the context error.
func (d *Driver) ProcessWindowsContext(ctx context.Context, wf ecg.Waveform, windowSeconds float64, start time.Time) ([]ecg.RateSample, error) {
	if !(windowSeconds > 0) {
		return nil, fmt.Errorf("%w: window duration %v s", ErrInvalidParameter, windowSeconds)
	}
	if wf.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d", ErrInvalidParameter, wf.SampleRate)
	}

	length := ecg.WindowLength(windowSeconds, wf.SampleRate)
	if length <= 0 {
		return nil, fmt.Errorf("%w: window duration %v s is under one sample", ErrInvalidParameter, windowSeconds)
	}

	wf.Start = start
	windows, err := wf.Windows(length)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	series := make([]ecg.RateSample, 0, len(windows))
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return series, err
		}

		x := ecg.ToFloat64(w.Samples)
		est, err := d.estimator.Estimate(x, wf.SampleRate)
		if d.observer != nil {
			d.observer(WindowReport{
				Index:    w.Index,
				Offset:   w.Offset,
				Length:   w.Len(),
				Start:    w.Start,
				Estimate: est,
				Status:   StatusOf(err),
				Err:      err,
				Signal:   quality.Calculate(x),
			})
		}
		if err != nil {
			continue
		}

		series = append(series, ecg.RateSample{Time: w.Start, BPM: est.BPM})
	}

	return series, nil
}
