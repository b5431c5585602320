package biquad

// Coefficients describes one second-order section
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// with the leading denominator coefficient fixed at 1.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// DCGain returns H(1). A section with a pole at z=1 reports 0.
func (c Coefficients) DCGain() float64 {
	den := 1 + c.A1 + c.A2
	if den == 0 {
		return 0
	}

	return (c.B0 + c.B1 + c.B2) / den
}

// SteadyState returns the delay-line contents of a section that has been
// fed the constant x forever.
func (c Coefficients) SteadyState(x float64) [2]float64 {
	y := c.DCGain() * x
	z1 := c.B2*x - c.A2*y

	return [2]float64{c.B1*x - c.A1*y + z1, z1}
}

// Section runs Coefficients in transposed direct form II.
type Section struct {
	Coefficients

	z [2]float64
}

// NewSection returns a Section with an empty delay line.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample advances the section by one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.z[0]
	s.z[0] = s.B1*x - s.A1*y + s.z[1]
	s.z[1] = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.Coefficients
	z0, z1 := s.z[0], s.z[1]

	for i, x := range buf {
		y := c.B0*x + z0
		z0 = c.B1*x - c.A1*y + z1
		z1 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.z = [2]float64{z0, z1}
}
