package main

import "flag"

var (
	address      string
	settingsFile string
	threads      int
)

func parseArguments() {
	flag.StringVar(&settingsFile, "settings", "", "Json file with viewer settings, defaults are used when empty")
	flag.StringVar(&address, "address", "", "Address to serve the viewer on, overrides the settings file")
	flag.IntVar(&threads, "threads", 0, "Number of tiles rendered in parallel, overrides the settings file")

	flag.Parse()
}
