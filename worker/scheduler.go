package worker

import (
	"fmt"
	"sync/atomic"
	"time"

	"TiledMandelbrot/coloring"
	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/tile"
	"TiledMandelbrot/viewport"

	"github.com/BrugadaSyndrome/bslogger"
	"golang.org/x/sync/errgroup"
)

// Scheduler renders frames split into horizontal tiles, one goroutine per
// tile. Each goroutine writes only to its own tile; the viewport, evaluator
// and gradient are shared read only.
type Scheduler struct {
	coloring       *coloring.SmoothColoring
	framesRendered atomic.Int64
	logger         bslogger.Logger
	mandelbrot     mandelbrot.Mandelbrot
}

func NewScheduler(m mandelbrot.Mandelbrot, c *coloring.SmoothColoring) *Scheduler {
	s := &Scheduler{
		coloring:   c,
		logger:     bslogger.NewLogger("Scheduler", bslogger.Normal, nil),
		mandelbrot: m,
	}
	evaluator := mandelbrot.Scalar
	if m.Paired() {
		evaluator = mandelbrot.Paired
	}
	s.logger.Debugf("Using the %s evaluator", evaluator)
	return s
}

// FramesRendered counts completed Render calls that drew at least one tile.
func (s *Scheduler) FramesRendered() int64 {
	return s.framesRendered.Load()
}

// Render fills every tile with its band of the frame seen through v and
// returns once all tiles are done. Rendering no tiles does nothing. A broken
// invariant while rendering a tile is returned as an error and the frame is
// not counted.
func (s *Scheduler) Render(tiles []tile.Tile, v viewport.Viewport) error {
	if len(tiles) == 0 {
		return nil
	}
	width, height, err := tile.FrameSize(tiles)
	if err != nil {
		return err
	}
	if err := viewport.CheckGeometry(width, height); err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}

	startTime := time.Now()
	var g errgroup.Group
	for i, offset := range tile.Offsets(tiles) {
		g.Go(func() (err error) {
			// Invariant panics become the tile's error.
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("tile %d at row %d: %v", i, offset, r)
				}
			}()
			s.renderTile(tiles[i], offset, width, height, v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("rendering %d tiles: %w", len(tiles), err)
	}

	s.framesRendered.Add(1)
	s.logger.Debugf("Rendered %dx%d frame in %d tiles in %s", width, height, len(tiles), time.Since(startTime))
	return nil
}

// RenderShared renders with the viewport held by store at the time of the
// call. Later edits to the store do not affect this frame.
func (s *Scheduler) RenderShared(tiles []tile.Tile, store *viewport.Store) error {
	return s.Render(tiles, store.Snapshot())
}

// renderTile draws frame rows [offset, offset+tile height). With the paired
// evaluator pixels go through two at a time and an odd last pixel of a row
// falls back to the scalar path.
func (s *Scheduler) renderTile(t tile.Tile, offset, width, height int, v viewport.Viewport) {
	img := t.Image
	origin := img.Bounds().Min

	for row := 0; row < t.Height(); row++ {
		y := offset + row
		x := 0
		if s.mandelbrot.Paired() {
			for ; x+1 < width; x += 2 {
				r1, r2 := s.mandelbrot.EscapeTimePair(
					viewport.MapPixel(x, y, width, height, v),
					viewport.MapPixel(x+1, y, width, height, v),
				)
				img.SetRGBA(origin.X+x, origin.Y+row, s.coloring.Color(r1))
				img.SetRGBA(origin.X+x+1, origin.Y+row, s.coloring.Color(r2))
			}
		}
		for ; x < width; x++ {
			r := s.mandelbrot.EscapeTime(viewport.MapPixel(x, y, width, height, v))
			img.SetRGBA(origin.X+x, origin.Y+row, s.coloring.Color(r))
		}
	}
}
