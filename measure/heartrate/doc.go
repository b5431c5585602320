// Package heartrate estimates average heart rate from single-lead ECG.
//
// The estimate for one stretch of signal runs four stages:
//
//   - [Bandpass]: zero-phase Butterworth band-pass isolating QRS energy (5-25 Hz)
//   - [Enhance]: first difference, squaring, and a 150 ms moving average
//   - [DetectPeaks]: envelope maxima at least 40% of the tallest and 300 ms apart
//   - [EstimateRate]: mean RR interval converted to beats per minute
//
// [Estimator] chains the stages with configurable parameters and [Driver]
// applies an Estimator to consecutive fixed-length windows of a recording.
//
// # Usage
//
//	d := heartrate.NewDriver()
//	series, err := d.Process(waveform, 10) // one sample per 10 s window
//
// Windows whose rate cannot be determined are left out of the series. Their
// cause is available through [WithObserver] and classified by [StatusOf].
package heartrate
