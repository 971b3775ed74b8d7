// Package canvas models the display surface that drives the renderer: it owns
// the tile buffers, turns pointer input into viewport edits and renders a
// cheap preview while the view is being dragged.
package canvas

import (
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"

	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/tile"
	"TiledMandelbrot/viewport"
	"TiledMandelbrot/worker"

	"github.com/BrugadaSyndrome/bslogger"
)

// PreviewPixels is the approximate pixel count of the preview rendered while
// dragging.
const PreviewPixels = 30000

type Settings struct {
	Width    int
	Height   int
	Threads  int
	Viewport viewport.Viewport
}

// Verify fills unset fields. Sizes are checked when the tiles are built.
func (s *Settings) Verify() error {
	if s.Width == 0 {
		s.Width = 800
	}
	if s.Height == 0 {
		s.Height = 533
	}
	if s.Threads == 0 {
		s.Threads = runtime.NumCPU()
	}
	if s.Viewport == (viewport.Viewport{}) {
		s.Viewport = viewport.Default()
	}
	return s.Viewport.Validate()
}

type Canvas struct {
	mu        sync.Mutex
	logger    bslogger.Logger
	scheduler *worker.Scheduler
	store     *viewport.Store

	width   int
	height  int
	threads int
	tiles   []tile.Tile
	preview []tile.Tile

	pressed  bool
	pressX   int
	pressY   int
	released viewport.Viewport
}

func New(settings Settings, scheduler *worker.Scheduler) (*Canvas, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	store, err := viewport.NewStore(settings.Viewport)
	if err != nil {
		return nil, err
	}

	c := &Canvas{
		logger:    bslogger.NewLogger("Canvas", bslogger.Normal, nil),
		scheduler: scheduler,
		store:     store,
		threads:   settings.Threads,
	}
	if err := c.rebuild(settings.Width, settings.Height, settings.Threads); err != nil {
		return nil, err
	}
	return c, nil
}

// PreviewSize keeps the frame's aspect ratio at about PreviewPixels pixels.
// The height never drops below one row per thread, or below 2 rows, so very
// wide frames and large thread counts still get a preview.
func PreviewSize(width, height, threads int) (int, int) {
	ratio := float64(width) / float64(height)
	pw := int(math.Sqrt(PreviewPixels))
	ph := int(math.Sqrt(PreviewPixels / (ratio * ratio)))
	return pw, max(ph, threads, 2)
}

// rebuild replaces both tile sets. On error the old tiles stay in use.
func (c *Canvas) rebuild(width, height, threads int) error {
	tiles, err := tile.Split(threads, width, height)
	if err != nil {
		return err
	}
	pw, ph := PreviewSize(width, height, threads)
	preview, err := tile.Split(threads, pw, ph)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	c.width, c.height, c.threads = width, height, threads
	c.tiles, c.preview = tiles, preview
	c.logger.Debugf("%d tiles for %dx%d, preview %dx%d", threads, width, height, pw, ph)
	return nil
}

func (c *Canvas) Resize(width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuild(width, height, c.threads)
}

func (c *Canvas) SetThreads(threads int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rebuild(c.width, c.height, threads)
}

func (c *Canvas) Size() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *Canvas) Threads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.threads
}

func (c *Canvas) Viewport() viewport.Viewport {
	return c.store.Snapshot()
}

func (c *Canvas) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pressed
}

// Paint renders the current view. While dragging only the preview tiles are
// rendered and the result is stretched to the frame size.
func (c *Canvas) Paint() (*image.RGBA, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.pressed {
		if err := c.scheduler.RenderShared(c.tiles, c.store); err != nil {
			return nil, err
		}
		return tile.Compose(c.tiles)
	}

	if err := c.scheduler.RenderShared(c.preview, c.store); err != nil {
		return nil, err
	}
	preview, err := tile.Compose(c.preview)
	if err != nil {
		return nil, err
	}
	return tile.Scale(preview, c.width, c.height), nil
}

func (c *Canvas) Press(x, y int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pressed = true
	c.pressX, c.pressY = x, y
	c.released = c.store.Snapshot()
}

// Move returns the complex number under the pointer. While pressed it also
// pans the view so the point grabbed at Press follows the pointer.
func (c *Canvas) Move(x, y int) (mandelbrot.Complex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	position := viewport.MapPixel(x, y, c.width, c.height, c.store.Snapshot())
	if !c.pressed {
		return position, nil
	}

	dragged := c.released.Pan(float64(c.pressX-x), float64(y-c.pressY), c.width, c.height)
	return position, c.store.Update(dragged)
}

func (c *Canvas) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pressed {
		return
	}
	c.pressed = false
	c.logger.Debugf("Viewport %v", c.store.Snapshot())
}

// Wheel zooms around the pointer by delta/100, the way a mouse wheel reports
// 120 per notch. Zero delta is ignored.
func (c *Canvas) Wheel(x, y, delta int) error {
	if delta == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.store.Edit(func(v viewport.Viewport) viewport.Viewport {
		return v.Zoom(float64(x), float64(y), c.width, c.height, delta)
	})
	return err
}
