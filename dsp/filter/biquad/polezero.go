package biquad

import "math/cmplx"

// Poles returns the roots of z^2 + A1 z + A2.
func (c Coefficients) Poles() [2]complex128 {
	return quadRoots(c.A1, c.A2)
}

// Stable reports whether both poles are inside the unit circle.
func (c Coefficients) Stable() bool {
	p := c.Poles()
	return cmplx.Abs(p[0]) < 1 && cmplx.Abs(p[1]) < 1
}

// Stable reports whether every section is stable.
func (c *Chain) Stable() bool {
	for i := range c.stages {
		if !c.stages[i].Stable() {
			return false
		}
	}

	return true
}

// quadRoots solves z^2 + b z + c = 0.
func quadRoots(b, c float64) [2]complex128 {
	d := cmplx.Sqrt(complex(b*b-4*c, 0))
	return [2]complex128{(complex(-b, 0) + d) / 2, (complex(-b, 0) - d) / 2}
}
