package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H at freqHz for a sampling rate of sampleRate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	zi := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate) // z^-1 on the unit circle

	num := (complex(c.B2, 0)*zi+complex(c.B1, 0))*zi + complex(c.B0, 0)
	den := (complex(c.A2, 0)*zi+complex(c.A1, 0))*zi + 1

	return num / den
}

// Response evaluates the cascade, gain included, at freqHz.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.stages {
		h *= c.stages[i].Response(freqHz, sampleRate)
	}

	return h
}

// Magnitude returns |H| of the cascade at freqHz.
func (c *Chain) Magnitude(freqHz, sampleRate float64) float64 {
	return cmplx.Abs(c.Response(freqHz, sampleRate))
}
