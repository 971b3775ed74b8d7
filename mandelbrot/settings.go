package mandelbrot

import (
	"fmt"

	"github.com/BrugadaSyndrome/bslogger"
)

const (
	DefaultBailOut       = 32
	DefaultMaxIterations = 100
)

// Evaluator selects which escape-time implementation renders a frame.
type Evaluator string

const (
	Auto   Evaluator = "auto"
	Scalar Evaluator = "scalar"
	Paired Evaluator = "paired"
)

type Settings struct {
	logger bslogger.Logger

	BailOut       float64
	Evaluator     Evaluator
	MaxIterations int32
}

func (s *Settings) String() string {
	output := "\nMandelbrot settings\n"
	output += fmt.Sprintf("Bail Out: %g\n", s.BailOut)
	output += fmt.Sprintf("Evaluator: %s\n", s.Evaluator)
	output += fmt.Sprintf("Max Iterations: %d\n", s.MaxIterations)
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("MandelbrotSettings", bslogger.Normal, nil)

	if s.BailOut <= 0 {
		s.BailOut = DefaultBailOut
	}
	// Smooth coloring takes log(log(|z|²)), which needs |z|² > 1 at escape.
	if s.BailOut <= 1 {
		return fmt.Errorf("bail out %g must be greater than 1", s.BailOut)
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = DefaultMaxIterations
	}
	switch s.Evaluator {
	case "":
		s.Evaluator = Auto
	case Auto, Scalar, Paired:
	default:
		return fmt.Errorf("unknown evaluator %q", s.Evaluator)
	}

	if s.Evaluator == Auto && !HasVectorSupport() {
		s.logger.Info("No vector instruction support detected. Using the scalar evaluator.")
	}
	return nil
}
