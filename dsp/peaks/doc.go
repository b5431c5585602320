// Package peaks locates local maxima in sampled signals.
//
// [Find] applies the usual two-stage selection: candidates below a minimum
// height are discarded first, then of any two candidates closer than a
// minimum distance only the taller survives. Equal heights resolve in favour
// of the earlier sample, so results are deterministic.
//
// Basic usage:
//
//	idx := peaks.Find(envelope,
//		peaks.WithHeight(0.4*floats.Max(envelope)),
//		peaks.WithDistance(39),
//	)
package peaks
