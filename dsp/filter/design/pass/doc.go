// Package pass designs Butterworth pass-band filters as cascaded biquad
// sections for dsp/filter/biquad.
package pass
