package viewer

import (
	"encoding/json"
	"fmt"
	"runtime"

	"TiledMandelbrot/canvas"
	"TiledMandelbrot/coloring"
	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/viewport"

	"github.com/BrugadaSyndrome/bslogger"
)

const DefaultPort = 51000

type Settings struct {
	logger bslogger.Logger

	Coloring      coloring.Settings
	Height        int
	Mandelbrot    mandelbrot.Settings
	ServerAddress string
	Threads       int
	Verbose       bool
	Viewport      viewport.Viewport
	Width         int
}

// NewSettings loads a JSON settings file. An empty file name gives the
// defaults.
func NewSettings(settingsFile string) (Settings, error) {
	var s Settings
	if settingsFile != "" {
		fileBytes, err := misc.ReadFile(settingsFile)
		if err != nil {
			return s, err
		}
		if err := json.Unmarshal(fileBytes, &s); err != nil {
			return s, fmt.Errorf("parsing %s: %w", settingsFile, err)
		}
	}
	if err := s.Verify(); err != nil {
		return s, err
	}
	s.logger.Debug(s.String())
	return s, nil
}

func (s *Settings) String() string {
	output := "\nViewer settings\n"
	output += fmt.Sprintf("Server Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Frame: %dx%d\n", s.Width, s.Height)
	output += fmt.Sprintf("Threads: %d\n", s.Threads)
	output += fmt.Sprintf("Verbose: %t\n", s.Verbose)
	output += fmt.Sprintf("Viewport: %v", s.Viewport)
	output += s.Mandelbrot.String()
	output += s.Coloring.String()
	return output
}

func (s *Settings) Verify() error {
	s.logger = bslogger.NewLogger("ViewerSettings", bslogger.Normal, nil)

	if s.ServerAddress == "" {
		host, err := misc.GetLocalAddress()
		if misc.CheckError(err, s.logger, misc.Warning) {
			host = "localhost"
		}
		s.ServerAddress = fmt.Sprintf("%s:%d", host, DefaultPort)
	}
	if s.Threads == 0 {
		s.Threads = runtime.NumCPU()
	}

	canvasSettings := s.Canvas()
	if err := canvasSettings.Verify(); err != nil {
		return err
	}
	s.Width, s.Height, s.Viewport = canvasSettings.Width, canvasSettings.Height, canvasSettings.Viewport

	if err := s.Mandelbrot.Verify(); err != nil {
		return err
	}
	return s.Coloring.Verify()
}

// Canvas returns the part of the settings that sizes the display.
func (s *Settings) Canvas() canvas.Settings {
	return canvas.Settings{
		Width:    s.Width,
		Height:   s.Height,
		Threads:  s.Threads,
		Viewport: s.Viewport,
	}
}
