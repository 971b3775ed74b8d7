package coloring

import (
	"errors"
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	DefaultBaseColors   = 4
	DefaultGradientSize = 50
)

var ErrInvalidGradient = errors.New("invalid gradient")

type Settings struct {
	logger bslogger.Logger

	// BaseColors is the number of random colors the gradient blends between.
	BaseColors int
	// GradientSize is the number of slots in the lookup table.
	GradientSize int
	// Seed fixes the base colors. Nil seeds from the wall clock.
	Seed *int64
	// CloseLoop blends the last base color back into the first so the
	// gradient has no seam where the lookup wraps around.
	CloseLoop bool
}

func (s *Settings) String() string {
	output := "\nColoring settings\n"
	output += fmt.Sprintf("Base Colors: %d\n", s.BaseColors)
	output += fmt.Sprintf("Gradient Size: %d\n", s.GradientSize)
	if s.Seed != nil {
		output += fmt.Sprintf("Seed: %d\n", *s.Seed)
	} else {
		output += "Seed: wall clock\n"
	}
	output += fmt.Sprintf("Close Loop: %t\n", s.CloseLoop)
	return output
}

// Verify fills unset counts with defaults and rejects gradients that cannot be
// built.
func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("ColoringSettings", bslogger.Normal, nil)

	if s.BaseColors == 0 {
		s.BaseColors = DefaultBaseColors
	}
	if s.GradientSize == 0 {
		s.GradientSize = DefaultGradientSize
	}

	if s.BaseColors < 1 {
		return fmt.Errorf("%w: need at least one base color, got %d", ErrInvalidGradient, s.BaseColors)
	}
	if s.GradientSize < s.BaseColors {
		return fmt.Errorf("%w: gradient size %d is smaller than %d base colors", ErrInvalidGradient, s.GradientSize, s.BaseColors)
	}

	if s.Seed == nil {
		s.logger.Debug("No seed given. Base colors will change on every run.")
	}
	return nil
}
