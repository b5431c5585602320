package peaks

import (
	"math"
	"sort"
)

type config struct {
	height   float64
	distance int
}

// Option configures Find.
type Option func(*config)

// WithHeight discards candidates lower than h.
func WithHeight(h float64) Option {
	return func(cfg *config) { cfg.height = h }
}

// WithDistance requires at least d samples between reported peaks.
// Values below 1 are treated as 1.
func WithDistance(d int) Option {
	return func(cfg *config) { cfg.distance = max(d, 1) }
}

// Find returns the indices of peaks in x in increasing order.
func Find(x []float64, opts ...Option) []int {
	cfg := config{height: math.Inf(-1), distance: 1}
	for _, o := range opts {
		o(&cfg)
	}

	candidates := LocalMaxima(x)

	kept := candidates[:0]
	for _, i := range candidates {
		if x[i] >= cfg.height {
			kept = append(kept, i)
		}
	}

	if cfg.distance > 1 {
		kept = selectByDistance(x, kept, cfg.distance)
	}

	return kept
}

// LocalMaxima returns every sample (or plateau) strictly greater than its
// neighbours. A sample at either end of x only has to beat its single
// neighbour. A flat plateau is reported once, at its middle sample (the left
// one for even-length plateaus). A constant signal has no maxima.
func LocalMaxima(x []float64) []int {
	n := len(x)
	maxima := make([]int, 0, n/2)

	for i := 0; i < n; {
		j := i
		for j+1 < n && x[j+1] == x[i] {
			j++
		}

		atStart := i == 0
		atEnd := j == n-1
		if !(atStart && atEnd) &&
			(atStart || x[i-1] < x[i]) &&
			(atEnd || x[j+1] < x[i]) {
			maxima = append(maxima, (i+j)/2)
		}

		i = j + 1
	}

	return maxima
}

// selectByDistance visits peaks from tallest to shortest and suppresses
// every remaining peak within distance-1 samples of a kept one.
func selectByDistance(x []float64, peaks []int, distance int) []int {
	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return x[peaks[order[a]]] > x[peaks[order[b]]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}

	for _, k := range order {
		if !keep[k] {
			continue
		}
		for j := k - 1; j >= 0 && peaks[k]-peaks[j] < distance; j-- {
			keep[j] = false
		}
		for j := k + 1; j < len(peaks) && peaks[j]-peaks[k] < distance; j++ {
			keep[j] = false
		}
	}

	out := make([]int, 0, len(peaks))
	for i, p := range peaks {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
