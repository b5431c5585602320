package heartrate

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/filter/design/pass"
	"github.com/cwbudde/algo-ecg/dsp/filter/zerophase"
	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func TestBandpass_PreservesLength(t *testing.T) {
	for _, n := range []int{zerophase.MinLength(DefaultOrder), 260, 1300, 1301} {
		x := testutil.DeterministicNoise(int64(n), 1, n)
		y, err := Bandpass(x, 130, DefaultLowHz, DefaultHighHz, DefaultOrder)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(y) != n {
			t.Fatalf("n=%d: got %d samples", n, len(y))
		}
		testutil.RequireFinite(t, y)
	}
}

func TestBandpass_Selectivity(t *testing.T) {
	const fs = 130
	cases := []struct {
		freq   float64
		lo, hi float64
	}{
		{15, 0.98, 1.01},   // in band
		{1, 0, 1e-4},       // baseline wander
		{50, 0, 1e-4},      // mains
		{11.2, 0.99, 1.01}, // near the band centre
	}
	for _, tc := range cases {
		x := testutil.DeterministicSine(tc.freq, fs, 1, 10*fs)
		y, err := Bandpass(x, fs, DefaultLowHz, DefaultHighHz, DefaultOrder)
		if err != nil {
			t.Fatal(err)
		}
		peak := 0.0
		for _, v := range y[300:1000] {
			peak = math.Max(peak, math.Abs(v))
		}
		if peak < tc.lo || peak > tc.hi {
			t.Errorf("%.1f Hz: amplitude %.6f, want [%g, %g]", tc.freq, peak, tc.lo, tc.hi)
		}
	}
}

func TestBandpass_InvalidBand(t *testing.T) {
	x := make([]float64, 1300)
	// 25 Hz is above Nyquist at 40 Hz.
	_, err := Bandpass(x, 40, DefaultLowHz, DefaultHighHz, DefaultOrder)
	if !errors.Is(err, ErrFilter) || !errors.Is(err, pass.ErrInvalidBand) {
		t.Fatalf("err = %v, want ErrFilter wrapping pass.ErrInvalidBand", err)
	}
	if StatusOf(err) != StatusFilterError {
		t.Fatalf("status = %v", StatusOf(err))
	}
}

func TestBandpass_TooShort(t *testing.T) {
	x := make([]float64, zerophase.PadLen(DefaultOrder))
	_, err := Bandpass(x, 130, DefaultLowHz, DefaultHighHz, DefaultOrder)
	if !errors.Is(err, ErrFilter) || !errors.Is(err, zerophase.ErrTooShort) {
		t.Fatalf("err = %v, want ErrFilter wrapping zerophase.ErrTooShort", err)
	}
}

func TestBandpass_InvalidRate(t *testing.T) {
	if _, err := Bandpass(make([]float64, 300), 0, 5, 25, 4); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}
