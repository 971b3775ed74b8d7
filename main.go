package main

import (
	"os"
	"os/signal"
	"syscall"

	"TiledMandelbrot/canvas"
	"TiledMandelbrot/coloring"
	"TiledMandelbrot/mandelbrot"
	"TiledMandelbrot/misc"
	"TiledMandelbrot/viewer"
	"TiledMandelbrot/worker"

	"github.com/BrugadaSyndrome/bslogger"
)

func main() {
	parseArguments()
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)

	settings, err := viewer.NewSettings(settingsFile)
	misc.CheckError(err, logger, misc.Fatal)
	if address != "" {
		settings.ServerAddress = address
	}
	if threads > 0 {
		settings.Threads = threads
	}
	if settings.Verbose {
		logger.Info(settings.String())
	}

	coloringEngine, err := coloring.NewSmoothColoring(settings.Coloring)
	misc.CheckError(err, logger, misc.Fatal)
	scheduler := worker.NewScheduler(mandelbrot.NewMandelbrot(settings.Mandelbrot), coloringEngine)

	display, err := canvas.New(settings.Canvas(), scheduler)
	misc.CheckError(err, logger, misc.Fatal)

	server := viewer.NewServer(settings.ServerAddress, display)
	misc.CheckError(server.Run(), logger, misc.Fatal)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	received := <-signals
	logger.Infof("Received %s", received)

	misc.CheckError(server.Stop(), logger, misc.Warning)
	logger.Infof("Rendered %d frames", scheduler.FramesRendered())
}
