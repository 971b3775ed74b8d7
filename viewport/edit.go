package viewport

// Pan shifts the viewport so the point under the pointer at press time follows
// the pointer. dx is pressX - x and dy is y - pressY, in pixels of a
// width x height frame.
func (v Viewport) Pan(dx, dy float64, width, height int) Viewport {
	v.OffsetX += dx / float64(width) * v.Width
	v.OffsetY += dy / float64(height) * v.Height
	return v
}

// Zoom scales the viewport by a wheel delta around pixel (x, y), which keeps
// mapping to the same complex number. A positive delta divides the extents by
// delta/100, a negative one multiplies them by -delta/100. Zero delta is a
// no-op.
func (v Viewport) Zoom(x, y float64, width, height int, delta int) Viewport {
	if delta == 0 {
		return v
	}
	realRatio := x / float64(width-1)
	imagRatio := y / float64(height-1)
	focalReal := v.OffsetX + realRatio*v.Width
	focalImag := v.OffsetY - imagRatio*v.Height

	zoom := float64(delta) / 100
	if zoom > 0 {
		v.Width /= zoom
		v.Height /= zoom
	} else {
		v.Width *= -zoom
		v.Height *= -zoom
	}

	v.OffsetX = focalReal - realRatio*v.Width
	v.OffsetY = focalImag + imagRatio*v.Height
	return v
}
