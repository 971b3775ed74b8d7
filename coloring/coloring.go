package coloring

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/misc"
)

// Background is the color of points that never escape.
var Background = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// SmoothColoring maps escape results onto a looping gradient using the
// normalized iteration count, so neighbouring pixels blend instead of banding.
// The gradient never changes after construction and may be read from any
// number of goroutines.
type SmoothColoring struct {
	base     []color.RGBA
	gradient []color.RGBA
}

func NewSmoothColoring(settings Settings) (*SmoothColoring, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if settings.Seed != nil {
		seed = *settings.Seed
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))

	base := make([]color.RGBA, settings.BaseColors)
	for i := range base {
		base[i] = color.RGBA{
			R: uint8(rng.IntN(256)),
			G: uint8(rng.IntN(256)),
			B: uint8(rng.IntN(256)),
			A: 255,
		}
	}

	return &SmoothColoring{
		base:     base,
		gradient: buildGradient(base, settings.GradientSize, settings.CloseLoop),
	}, nil
}

// buildGradient spreads the base colors evenly over size slots. Slot i sits at
// position i/step between base colors; the whole part picks the segment and the
// fraction blends across it. An open gradient ends exactly on the last base
// color, a closed one ends one step short of wrapping onto the first.
func buildGradient(base []color.RGBA, size int, closeLoop bool) []color.RGBA {
	gradient := make([]color.RGBA, size)
	k := len(base)
	if k == 1 {
		for i := range gradient {
			gradient[i] = base[0]
		}
		return gradient
	}

	segments, span := k-1, size-1
	if closeLoop {
		segments, span = k, size
	}

	for i := range gradient {
		// i*segments/span is i/step with step = span/segments, kept in this
		// form so segment boundaries land on exact integers.
		pos := float64(i*segments) / float64(span)
		index := int(math.Floor(pos))
		fraction := pos - float64(index)
		gradient[i] = misc.LinearInterpolationRGB(base[index%k], base[(index+1)%k], fraction)
	}
	return gradient
}

// Base returns a copy of the random base colors.
func (sc *SmoothColoring) Base() []color.RGBA {
	return append([]color.RGBA(nil), sc.base...)
}

// Gradient returns a copy of the lookup table.
func (sc *SmoothColoring) Gradient() []color.RGBA {
	return append([]color.RGBA(nil), sc.gradient...)
}

func (sc *SmoothColoring) Color(r mandelbrot.Result) color.RGBA {
	return sc.ColorFor(r.Iteration, r.Magnitude)
}

// ColorFor colors an escape result. Points that never escaped get the
// background color whatever their magnitude. An escaped point must carry a
// magnitude above 1; anything else means the evaluator is broken and panics.
// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Continuous_(smooth)_coloring
func (sc *SmoothColoring) ColorFor(iteration int32, magnitude float64) color.RGBA {
	if iteration == mandelbrot.NotEscaped {
		return Background
	}
	if !(magnitude > 0) {
		panic(fmt.Sprintf("coloring: iteration %d escaped with magnitude %g", iteration, magnitude))
	}

	logZn := math.Log(magnitude) / 2
	nu := math.Log(logZn/math.Ln2) / math.Ln2
	smoothed := float64(iteration) + 1 - nu
	if math.IsNaN(smoothed) || math.IsInf(smoothed, 0) {
		panic(fmt.Sprintf("coloring: iteration %d with magnitude %g has no smooth value", iteration, magnitude))
	}
	return sc.colorAt(smoothed)
}

// colorAt blends the two gradient slots around a smoothed iteration count.
// Negative counts wrap the same way positive ones do.
func (sc *SmoothColoring) colorAt(smoothed float64) color.RGBA {
	base := math.Floor(smoothed)
	fraction := smoothed - base

	n := len(sc.gradient)
	index := int(math.Mod(base, float64(n)))
	if index < 0 {
		index += n
	}
	return misc.LinearInterpolationRGB(sc.gradient[index], sc.gradient[(index+1)%n], fraction)
}
