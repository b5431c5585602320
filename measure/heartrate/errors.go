package heartrate

import (
	"errors"
	"fmt"
)

// Error classes. Use errors.Is to test for them.
var (
	// ErrInvalidParameter rejects a non-positive window duration or sample
	// rate before any processing happens.
	ErrInvalidParameter = errors.New("heartrate: invalid parameter")

	// ErrFilter marks a band-pass that could not be designed or applied
	// (cutoffs at or above Nyquist, signal shorter than the edge padding).
	ErrFilter = errors.New("heartrate: band-pass filter failed")

	// ErrInsufficientData marks a window that does not carry enough signal
	// for an estimate.
	ErrInsufficientData = errors.New("heartrate: insufficient data")
)

// Refinements of ErrInsufficientData.
var (
	ErrWindowTooShort = fmt.Errorf("%w: window shorter than minimum duration", ErrInsufficientData)
	ErrTooFewPeaks    = fmt.Errorf("%w: fewer than two QRS peaks", ErrInsufficientData)
)

// Status classifies the outcome of one estimate.
type Status int

const (
	StatusOK Status = iota
	StatusInvalidParameter
	StatusFilterError
	StatusInsufficientData
	StatusFailed
)

// StatusOf maps an error returned by this package to its Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInvalidParameter):
		return StatusInvalidParameter
	case errors.Is(err, ErrFilter):
		return StatusFilterError
	case errors.Is(err, ErrInsufficientData):
		return StatusInsufficientData
	default:
		return StatusFailed
	}
}

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidParameter:
		return "invalid_parameter"
	case StatusFilterError:
		return "filter_error"
	case StatusInsufficientData:
		return "insufficient_data"
	default:
		return "failed"
	}
}
