package viewport

import (
	"errors"
	"fmt"
	"math"

	"TiledMandelbrot/mandelbrot"
)

// MaxCoordinate bounds every edge of a viewport. Beyond it the first
// iteration's |z|² overflows to +Inf and the point has no smooth color.
const MaxCoordinate = 1e75

var (
	ErrInvalidViewport = errors.New("invalid viewport")
	ErrInvalidGeometry = errors.New("invalid frame geometry")
)

// Viewport is the rectangle of the complex plane shown on screen. OffsetX is
// the real part of the left edge and Width extends it to the right. OffsetY is
// the imaginary part of the top edge; the imaginary axis increases upward, so
// Height extends downward from OffsetY.
type Viewport struct {
	OffsetX float64
	OffsetY float64
	Width   float64
	Height  float64
}

// Default frames the whole set: real in [-2, 1], imaginary in [-1, 1].
func Default() Viewport {
	return Viewport{OffsetX: -2, OffsetY: 1, Width: 3, Height: 2}
}

func (v Viewport) String() string {
	return fmt.Sprintf("offset (%g, %g) size %g x %g", v.OffsetX, v.OffsetY, v.Width, v.Height)
}

// Validate rejects empty, inverted and non finite extents, and rectangles
// reaching past MaxCoordinate.
func (v Viewport) Validate() error {
	if !(v.Width > 0) || !(v.Height > 0) {
		return fmt.Errorf("%w: width %g and height %g must be positive", ErrInvalidViewport, v.Width, v.Height)
	}
	for _, f := range []float64{v.OffsetX, v.OffsetY, v.Width, v.Height} {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("%w: %v is not finite", ErrInvalidViewport, v)
		}
	}
	for _, edge := range []float64{v.OffsetX, v.OffsetX + v.Width, v.OffsetY, v.OffsetY - v.Height} {
		if math.Abs(edge) >= MaxCoordinate {
			return fmt.Errorf("%w: %v reaches past %g", ErrInvalidViewport, v, MaxCoordinate)
		}
	}
	return nil
}

// CheckGeometry reports frames too small for the pixel mapping, which divides
// by width-1 and height-1.
func CheckGeometry(width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: %dx%d, need at least 2x2", ErrInvalidGeometry, width, height)
	}
	return nil
}

// MapPixel returns the complex number at pixel (x, y) of a width x height
// frame. The first and last row/column land exactly on the viewport edges.
// The expression order is fixed so every caller gets the same bits.
func MapPixel(x, y, width, height int, v Viewport) mandelbrot.Complex {
	return mandelbrot.Complex{
		Real: v.OffsetX + (float64(x)/float64(width-1))*v.Width,
		Imag: v.OffsetY - (float64(y)/float64(height-1))*v.Height,
	}
}

// UnmapPixel is the inverse of MapPixel with fractional pixel coordinates.
func UnmapPixel(c mandelbrot.Complex, width, height int, v Viewport) (x, y float64) {
	x = (c.Real - v.OffsetX) / v.Width * float64(width-1)
	y = (v.OffsetY - c.Imag) / v.Height * float64(height-1)
	return x, y
}
