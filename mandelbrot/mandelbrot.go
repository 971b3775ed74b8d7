package mandelbrot

import (
	"math"

	"TiledMandelbrot/wide"
)

// NotEscaped marks a point that stayed within the bail out radius for every
// iteration. It can never be a valid iteration index.
const NotEscaped int32 = math.MinInt32

// Result is the outcome of iterating a single point.
type Result struct {
	Iteration int32   // iteration at which |z|² first reached the bail out, or NotEscaped
	Magnitude float64 // |z|² at that iteration, or after the last iteration
}

func (r Result) Escaped() bool {
	return r.Iteration != NotEscaped
}

type Mandelbrot struct {
	paired   bool
	settings Settings
}

// SelectEvaluator resolves Auto to the concrete evaluator for this machine.
func SelectEvaluator(kind Evaluator) Evaluator {
	switch kind {
	case Paired, Scalar:
		return kind
	}
	if HasVectorSupport() {
		return Paired
	}
	return Scalar
}

// NewMandelbrot resolves the evaluator once so the choice is not re-made per
// pixel. Settings are expected to have been verified.
func NewMandelbrot(settings Settings) Mandelbrot {
	return Mandelbrot{
		paired:   SelectEvaluator(settings.Evaluator) == Paired,
		settings: settings,
	}
}

// Paired reports whether callers should feed points two at a time through
// EscapeTimePair.
func (m *Mandelbrot) Paired() bool {
	return m.paired
}

// EscapeTime iterates z = z² + c starting from z = c.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Escape_time_algorithm
func (m *Mandelbrot) EscapeTime(c Complex) Result {
	z := c
	magnitude := 0.0
	for i := int32(0); i < m.settings.MaxIterations; i++ {
		z = z.Mul(z).Add(c)
		magnitude = z.Norm()
		if magnitude >= m.settings.BailOut {
			return Result{Iteration: i, Magnitude: magnitude}
		}
	}
	return Result{Iteration: NotEscaped, Magnitude: magnitude}
}

// lane is the per-point state of the paired evaluator. Once a lane escapes its
// z and magnitude stop being updated.
type lane struct {
	z         Complex
	magnitude float64
	iteration int32
}

func (l *lane) escaped() bool {
	return l.iteration != NotEscaped
}

// record stores the step result unless the lane already escaped.
func (l *lane) record(re, im, magnitude, bailOut float64, i int32) {
	if l.escaped() {
		return
	}
	l.z = Complex{Real: re, Imag: im}
	l.magnitude = magnitude
	if magnitude >= bailOut {
		l.iteration = i
	}
}

func (l *lane) result() Result {
	return Result{Iteration: l.iteration, Magnitude: l.magnitude}
}

// EscapeTimePair iterates two points in lockstep, packing both into one
// wide.F64x4. The loop continues until both lanes escaped or the iteration
// cap is reached; each result equals EscapeTime on that point alone.
func (m *Mandelbrot) EscapeTimePair(c1, c2 Complex) (Result, Result) {
	c := wide.Pair(c1.Real, c1.Imag, c2.Real, c2.Imag)
	lanes := [2]lane{
		{z: c1, iteration: NotEscaped},
		{z: c2, iteration: NotEscaped},
	}

	for i := int32(0); i < m.settings.MaxIterations && !(lanes[0].escaped() && lanes[1].escaped()); i++ {
		// Escaped lanes are repacked with their frozen z, so their values
		// stay finite while the other lane keeps iterating.
		z := wide.Pair(lanes[0].z.Real, lanes[0].z.Imag, lanes[1].z.Real, lanes[1].z.Imag)
		z = z.ComplexSquare().Add(c)
		magnitudes := z.SquaredMagnitudes()

		re, im := z.Low()
		lanes[0].record(re, im, magnitudes[0], m.settings.BailOut, i)
		re, im = z.High()
		lanes[1].record(re, im, magnitudes[2], m.settings.BailOut, i)
	}

	return lanes[0].result(), lanes[1].result()
}
