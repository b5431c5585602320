package biquad

// Chain runs a series of sections, each feeding the next, after scaling the
// input by a fixed gain.
type Chain struct {
	stages []Section
	gain   float64
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithGain scales the chain input by g. The default is 1.
func WithGain(g float64) ChainOption {
	return func(c *Chain) { c.gain = g }
}

// NewChain builds a cascade with one Section per coefficient set, in order.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	c := &Chain{stages: make([]Section, len(coeffs)), gain: 1}
	for i, k := range coeffs {
		c.stages[i].Coefficients = k
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Len returns the number of sections.
func (c *Chain) Len() int { return len(c.stages) }

// ProcessSample pushes one sample through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	y := c.gain * x
	for i := range c.stages {
		y = c.stages[i].ProcessSample(y)
	}

	return y
}

// ProcessBlock filters buf in place, one section at a time.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		for i := range buf {
			buf[i] *= c.gain
		}
	}
	for i := range c.stages {
		c.stages[i].ProcessBlock(buf)
	}
}

// SettleTo puts the cascade in the state reached after the constant input x
// has been applied forever. Section k is settled to the DC level produced
// by sections 0..k-1.
func (c *Chain) SettleTo(x float64) {
	level := c.gain * x
	for i := range c.stages {
		st := &c.stages[i]
		st.z = st.SteadyState(level)
		level *= st.DCGain()
	}
}
