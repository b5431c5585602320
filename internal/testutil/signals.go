package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of amplitude*sin(2*pi*f*n/fs).
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	x := make([]float64, length)
	for n := range x {
		x[n] = math.Sin(w*float64(n)) * amplitude
	}

	return x
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude). The
// same seed always yields the same samples.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	src := rand.New(rand.NewSource(seed))
	x := make([]float64, length)
	for n := range x {
		x[n] = amplitude * (2*src.Float64() - 1)
	}

	return x
}

// Impulse returns a zero signal with a single 1 at pos. Out-of-range
// positions give an all-zero signal.
func Impulse(length, pos int) []float64 {
	x := make([]float64, length)
	if 0 <= pos && pos < length {
		x[pos] = 1
	}

	return x
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	x := make([]float64, length)
	for n := range x {
		x[n] = value
	}

	return x
}

// ImpulseTrain places unit impulses every spacing samples, starting at
// offset. Positions are rounded to the nearest sample.
func ImpulseTrain(length int, spacing, offset float64) []float64 {
	out := make([]float64, length)
	if spacing <= 0 {
		return out
	}
	for pos := offset; ; pos += spacing {
		i := int(math.Round(pos))
		if i >= length {
			break
		}
		if i >= 0 {
			out[i] = 1
		}
	}
	return out
}

// HeartbeatTrain synthesizes a clean single-lead ECG-like trace at the given
// heart rate: P, Q, R, S and T waves shaped as Gaussians within each beat,
// R peak amplitude 1. The first R peak falls 0.32 beat periods after t=0.
func HeartbeatTrain(sampleRate, bpm, seconds float64) []float64 {
	n := int(math.Round(sampleRate * seconds))
	out := make([]float64, n)
	period := 60 / bpm

	for i := range out {
		t := float64(i) / sampleRate
		phase := math.Mod(t, period) / period

		out[i] = 0.08*gauss(phase, 0.18, 0.03) -
			0.12*gauss(phase, 0.30, 0.01) +
			1.00*gauss(phase, 0.32, 0.008) -
			0.25*gauss(phase, 0.35, 0.012) +
			0.25*gauss(phase, 0.60, 0.06)
	}
	return out
}

// Quantize scales x and rounds it to int32 samples, the way an ADC front end
// delivers an ECG trace.
func Quantize(x []float64, scale float64) []int32 {
	out := make([]int32, len(x))
	for i, v := range x {
		out[i] = int32(math.Round(v * scale))
	}
	return out
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
