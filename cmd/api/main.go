package main

import (
	"context"
	"os"

	"github.com/yigit/gradtracker/internal/pkg/logger"
	"github.com/yigit/gradtracker/internal/server"
)

// @title Graduate Tracker API
// @version 1.0
// @description Register where graduates went, search classmates and reveal details behind a security question.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
