package heartrate

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/internal/testutil"
)

var t0 = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func recording(bpm, seconds float64) ecg.Waveform {
	const fs = 130
	return ecg.Waveform{
		Start:      t0,
		SampleRate: fs,
		Samples:    testutil.Quantize(testutil.HeartbeatTrain(fs, bpm, seconds), 1000),
	}
}

func TestDriver_SteadyRhythm(t *testing.T) {
	series, err := NewDriver().Process(recording(72, 30), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 3 {
		t.Fatalf("got %d samples, want 3", len(series))
	}
	for i, s := range series {
		if s.BPM < 70 || s.BPM > 74 {
			t.Errorf("window %d: %d BPM", i, s.BPM)
		}
		if want := t0.Add(time.Duration(i) * 10 * time.Second); !s.Time.Equal(want) {
			t.Errorf("window %d stamped %v, want %v", i, s.Time, want)
		}
	}
}

func TestDriver_ExplicitStart(t *testing.T) {
	start := t0.Add(time.Hour)
	series, err := NewDriver().ProcessWindows(recording(60, 20), 10, start)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 || !series[0].Time.Equal(start) || !series[1].Time.Equal(start.Add(10*time.Second)) {
		t.Fatalf("series = %+v", series)
	}
}

func TestDriver_ShortTailDropped(t *testing.T) {
	// 24 s leaves a 4 s tail, under half of the 10 s window.
	var reports []WindowReport
	d := NewDriver(WithObserver(func(r WindowReport) { reports = append(reports, r) }))

	series, err := d.Process(recording(72, 24), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 || len(reports) != 2 {
		t.Fatalf("got %d samples and %d reports, want 2 and 2", len(series), len(reports))
	}
}

func TestDriver_HalfTailKept(t *testing.T) {
	series, err := NewDriver().Process(recording(72, 25), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 3 {
		t.Fatalf("got %d samples, want 3", len(series))
	}
	if want := t0.Add(20 * time.Second); !series[2].Time.Equal(want) {
		t.Fatalf("tail stamped %v, want %v", series[2].Time, want)
	}
}

func TestDriver_SkipsUndeterminedWindows(t *testing.T) {
	wf := recording(72, 30)
	flat := make([]int32, 1300)
	wf.Samples = append(wf.Samples[:1300:1300], append(flat, wf.Samples[2600:]...)...)

	var reports []WindowReport
	d := NewDriver(WithObserver(func(r WindowReport) { reports = append(reports, r) }))
	series, err := d.Process(wf, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 2 {
		t.Fatalf("got %d samples, want 2", len(series))
	}
	if !series[1].Time.Equal(t0.Add(20 * time.Second)) {
		t.Fatalf("second sample stamped %v", series[1].Time)
	}

	if len(reports) != 3 {
		t.Fatalf("got %d reports", len(reports))
	}
	r := reports[1]
	if r.Status != StatusInsufficientData || !errors.Is(r.Err, ErrTooFewPeaks) {
		t.Fatalf("flat window report = %+v", r)
	}
	if !r.Signal.Flat(0) || r.Signal.Length != 1300 {
		t.Fatalf("flat window summary = %+v", r.Signal)
	}
	if !reports[0].Signal.ECGLike() {
		t.Fatalf("first window summary = %+v", reports[0].Signal)
	}
	if r.Index != 1 || r.Offset != 1300 || r.Length != 1300 {
		t.Fatalf("flat window report = %+v", r)
	}
	if reports[0].Status != StatusOK || reports[0].Estimate.BPM != series[0].BPM {
		t.Fatalf("first report = %+v", reports[0])
	}
}

func TestDriver_InvalidWindow(t *testing.T) {
	wf := recording(72, 30)
	for _, sec := range []float64{0, -10, math.NaN(), 0.001} {
		if _, err := NewDriver().Process(wf, sec); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("window %v: err = %v, want ErrInvalidParameter", sec, err)
		}
	}
}

func TestDriver_InvalidSampleRate(t *testing.T) {
	wf := ecg.Waveform{Start: t0, SampleRate: 0, Samples: make([]int32, 100)}
	if _, err := NewDriver().Process(wf, 10); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v", err)
	}
}

func TestDriver_Empty(t *testing.T) {
	series, err := NewDriver().Process(ecg.Waveform{Start: t0, SampleRate: 130}, 10)
	if err != nil || len(series) != 0 {
		t.Fatalf("series = %v, err = %v", series, err)
	}
}

func TestDriver_WindowShorterThanMinimum(t *testing.T) {
	series, err := NewDriver().Process(recording(72, 30), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 0 {
		t.Fatalf("1 s windows produced %v", series)
	}
}

func TestDriver_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	d := NewDriver(WithObserver(func(WindowReport) {
		calls++
		cancel()
	}))

	series, err := d.ProcessWindowsContext(ctx, recording(72, 30), 10, t0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if calls != 1 || len(series) != 1 {
		t.Fatalf("calls = %d, series = %v", calls, series)
	}
}

func TestDriver_CustomEstimator(t *testing.T) {
	d := NewDriver(WithEstimator(NewEstimator(WithBand(5, 100))), WithEstimator(nil))
	var last WindowReport
	d.observer = func(r WindowReport) { last = r }

	series, err := d.Process(recording(72, 10), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 0 || last.Status != StatusFilterError {
		t.Fatalf("series = %v, last = %+v", series, last)
	}
}
