package heartrate

import (
	"errors"
	"testing"
)

func TestRRIntervals(t *testing.T) {
	rr := RRIntervals([]int{0, 130, 325}, 130)
	if len(rr) != 2 || rr[0] != 1 || rr[1] != 1.5 {
		t.Fatalf("got %v", rr)
	}
	if rr := RRIntervals([]int{5}, 130); rr != nil {
		t.Fatalf("single peak: got %v", rr)
	}
}

func TestEstimateRate(t *testing.T) {
	cases := []struct {
		name  string
		peaks []int
		rate  int
		want  int
	}{
		{"one per second", []int{0, 130, 260, 390}, 130, 60},
		{"truncated", []int{0, 109}, 130, 71},   // 71.56
		{"uneven", []int{10, 75, 205}, 130, 80}, // mean RR 0.75 s
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EstimateRate(tc.peaks, tc.rate)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEstimateRate_TooFewPeaks(t *testing.T) {
	for _, p := range [][]int{nil, {42}} {
		_, err := EstimateRate(p, 130)
		if !errors.Is(err, ErrTooFewPeaks) || !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("peaks %v: err = %v", p, err)
		}
	}
}

func TestEstimateRate_InvalidRate(t *testing.T) {
	if _, err := EstimateRate([]int{0, 100}, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("err = %v", err)
	}
}
