// Command auth-service registers users and issues and verifies bearer tokens.
package main

import (
	"os"

	"expense-services/internal/config"
	"expense-services/internal/server"
	"expense-services/pkg/logging"
)

func main() {
	logger := logging.Setup("auth-service")

	cfg := config.Load(config.ServiceAuth)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	deps, cleanup, err := server.OpenDependencies(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := server.Run(server.NewAuthServer(cfg, deps), cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		cleanup()
		os.Exit(1)
	}
}
