// Package ecg holds the in-memory model of a single-lead ECG recording: the
// continuous [Waveform], the fixed-length [Window]s cut from it, and the
// [RateSample] series produced per window.
package ecg
