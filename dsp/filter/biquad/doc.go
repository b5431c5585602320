// Package biquad runs second-order IIR sections and cascades of them.
//
// A [Section] filters with one set of [Coefficients] in transposed direct
// form II; a [Chain] connects sections in series behind an input gain. Coefficient design lives in dsp/filter/design/pass and
// forward-backward filtering in dsp/filter/zerophase.
package biquad
