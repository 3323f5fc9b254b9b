package main

import (
	"os"

	"github.com/yigit/gradtracker/internal/pkg/logger"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("gradctl failed")
		os.Exit(1)
	}
}
