package testutil

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair differs by more than eps in absolute terms. NaN never
// matches.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
		return
	}
	within := func(a, b float64) bool { return a == b || math.Abs(a-b) <= eps }
	if floats.EqualFunc(got, want, within) {
		return
	}
	for i := range got {
		if !within(got[i], want[i]) {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], math.Abs(got[i]-want[i]), eps)
			return
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireIndices fails t unless got lists exactly the sample positions in want.
func RequireIndices(t testing.TB, got, want []int) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Fatalf("indices: got %v, want %v", got, want)
	}
}

// RequireBPM fails t if got is more than tol beats per minute from want.
func RequireBPM(t testing.TB, got, want, tol int) {
	t.Helper()
	if got < want-tol || got > want+tol {
		t.Fatalf("got %d BPM, want %d +-%d", got, want, tol)
	}
}
