package tile

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

var ErrInvalidTiles = errors.New("invalid tiles")

// Tile is one horizontal band of a frame. Its place in the frame is not stored:
// tiles are stacked top to bottom in slice order.
type Tile struct {
	Image *image.RGBA
}

func New(width, height int) Tile {
	return Tile{Image: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (t Tile) Width() int {
	return t.Image.Bounds().Dx()
}

func (t Tile) Height() int {
	return t.Image.Bounds().Dy()
}

func (t Tile) String() string {
	return fmt.Sprintf("{Tile %dx%d}", t.Width(), t.Height())
}

// Split cuts a width x height frame into count bands of height/count rows. The
// last band also takes the rows left over by the division.
func Split(count, width, height int) ([]Tile, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: tile count %d must be at least 1", ErrInvalidTiles, count)
	}
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: frame %dx%d must be at least 2x2", ErrInvalidTiles, width, height)
	}
	if count > height {
		return nil, fmt.Errorf("%w: %d tiles do not fit in %d rows", ErrInvalidTiles, count, height)
	}

	band := height / count
	tiles := make([]Tile, count)
	for i := range tiles {
		rows := band
		if i == count-1 {
			rows = height - (count-1)*band
		}
		tiles[i] = New(width, rows)
	}
	return tiles, nil
}

// Offsets returns the first frame row of every tile.
func Offsets(tiles []Tile) []int {
	offsets := make([]int, len(tiles))
	row := 0
	for i, t := range tiles {
		offsets[i] = row
		row += t.Height()
	}
	return offsets
}

// FrameSize returns the size of the frame the tiles make up. All tiles must
// share one width.
func FrameSize(tiles []Tile) (width, height int, err error) {
	for i, t := range tiles {
		if t.Image == nil {
			return 0, 0, fmt.Errorf("%w: tile %d has no image", ErrInvalidTiles, i)
		}
		if i == 0 {
			width = t.Width()
		} else if t.Width() != width {
			return 0, 0, fmt.Errorf("%w: tile %d is %d wide, tile 0 is %d", ErrInvalidTiles, i, t.Width(), width)
		}
		height += t.Height()
	}
	return width, height, nil
}

// Compose stacks the tiles into a single frame image.
func Compose(tiles []Tile) (*image.RGBA, error) {
	width, height, err := FrameSize(tiles)
	if err != nil {
		return nil, err
	}

	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, offset := range Offsets(tiles) {
		src := tiles[i].Image
		dst := image.Rect(0, offset, width, offset+tiles[i].Height())
		draw.Draw(frame, dst, src, src.Bounds().Min, draw.Src)
	}
	return frame, nil
}

// Scale resizes src to width x height. Used to stretch a low resolution
// preview over the full frame.
func Scale(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
