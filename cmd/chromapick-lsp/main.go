package main

import (
	"flag"
	"os"

	"github.com/jsvensson/chromapick/internal/lsp"
)

var version = "dev"

func main() {
	verbosity := flag.Int("v", 1, "log verbosity")
	logFile := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	var path *string
	if *logFile != "" {
		path = logFile
	}

	s := lsp.NewServer(version, *verbosity, path)
	if err := s.Run(); err != nil {
		os.Exit(1)
	}
}
