package pass

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

// ButterworthBP designs a band-pass Butterworth cascade passing lowHz..highHz.
//
// order is the order of the analog low-pass prototype; the band-pass has
// 2*order poles and is returned as order second-order sections. Each section
// carries one zero at z=1 and one at z=-1. The overall gain is spread evenly
// across the sections so that the cascade has unit magnitude at the band
// centre (the geometric mean of the pre-warped edges).
//
// Band edges are the -3 dB points. Both must lie strictly inside
// (0, sampleRate/2) with lowHz < highHz.
func ButterworthBP(lowHz, highHz float64, order int, sampleRate float64) ([]biquad.Coefficients, error) {
	if order <= 0 || sampleRate <= 0 {
		return nil, ErrInvalidBand
	}
	if !(lowHz > 0 && lowHz < highHz && highHz < sampleRate/2) {
		return nil, ErrInvalidBand
	}

	wl := prewarp(lowHz, sampleRate)
	wh := prewarp(highHz, sampleRate)
	bw := wh - wl
	w0 := math.Sqrt(wl * wh)

	// Low-pass to band-pass: every prototype pole p becomes the two roots of
	// s^2 - p*bw*s + w0^2.
	analog := make([]complex128, 0, 2*order)
	for _, p := range butterworthPrototype(order) {
		half := p * complex(bw/2, 0)
		root := cmplx.Sqrt(half*half - complex(w0*w0, 0))
		analog = append(analog, half+root, half-root)
	}

	digital := make([]complex128, len(analog))
	for i, s := range analog {
		digital[i] = bilinearPole(s, sampleRate)
	}

	sections := pairPoles(digital)
	if len(sections) != order {
		return nil, ErrInvalidBand
	}

	center := sampleRate / math.Pi * math.Atan(w0/(2*sampleRate))
	normalizeGain(sections, center, sampleRate)

	return sections, nil
}

// pairPoles groups z-plane poles into second-order sections with the
// numerator 1 - z^-2. Complex poles are paired with their conjugates; real
// poles are paired with each other. Sections are ordered by increasing pole
// radius so the most resonant section runs last.
func pairPoles(poles []complex128) []biquad.Coefficients {
	const imagTol = 1e-12

	var upper []complex128
	var reals []float64
	for _, p := range poles {
		switch {
		case math.Abs(imag(p)) <= imagTol*math.Max(1, cmplx.Abs(p)):
			reals = append(reals, real(p))
		case imag(p) > 0:
			upper = append(upper, p)
		}
	}

	sections := make([]biquad.Coefficients, 0, len(poles)/2)
	for _, p := range upper {
		re, im := real(p), imag(p)
		sections = append(sections, biquad.Coefficients{
			B0: 1, B1: 0, B2: -1,
			A1: -2 * re,
			A2: re*re + im*im,
		})
	}

	sort.Float64s(reals)
	for i := 0; i+1 < len(reals); i += 2 {
		a, b := reals[i], reals[i+1]
		sections = append(sections, biquad.Coefficients{
			B0: 1, B1: 0, B2: -1,
			A1: -(a + b),
			A2: a * b,
		})
	}

	sort.SliceStable(sections, func(i, j int) bool { return sections[i].A2 < sections[j].A2 })

	return sections
}

// normalizeGain scales the numerators so the cascade magnitude at freq is 1.
func normalizeGain(sections []biquad.Coefficients, freq, sampleRate float64) {
	mag := biquad.NewChain(sections).Magnitude(freq, sampleRate)
	if mag == 0 || math.IsNaN(mag) || math.IsInf(mag, 0) {
		return
	}

	g := math.Pow(1/mag, 1/float64(len(sections)))
	for i := range sections {
		sections[i].B0 *= g
		sections[i].B1 *= g
		sections[i].B2 *= g
	}
}
