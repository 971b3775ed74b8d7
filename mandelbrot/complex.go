package mandelbrot

import "fmt"

// Complex is a point in the complex plane.
type Complex struct {
	Real float64
	Imag float64
}

// Products are converted explicitly so they are rounded before any following
// add; the paired evaluator performs the same roundings lane by lane.

func (c Complex) Add(o Complex) Complex {
	return Complex{Real: c.Real + o.Real, Imag: c.Imag + o.Imag}
}

func (c Complex) Sub(o Complex) Complex {
	return Complex{Real: c.Real - o.Real, Imag: c.Imag - o.Imag}
}

func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Real: float64(c.Real*o.Real) - float64(c.Imag*o.Imag),
		Imag: float64(c.Imag*o.Real) + float64(c.Real*o.Imag),
	}
}

// Div divides c by o. Dividing by zero yields Inf or NaN components.
func (c Complex) Div(o Complex) Complex {
	divisor := float64(o.Real*o.Real) + float64(o.Imag*o.Imag)
	return Complex{
		Real: (float64(c.Real*o.Real) + float64(c.Imag*o.Imag)) / divisor,
		Imag: (float64(c.Imag*o.Real) - float64(c.Real*o.Imag)) / divisor,
	}
}

// Norm returns the squared magnitude |c|².
func (c Complex) Norm() float64 {
	return float64(c.Real*c.Real) + float64(c.Imag*c.Imag)
}

func (c Complex) String() string {
	return fmt.Sprintf("%g%+gi", c.Real, c.Imag)
}
