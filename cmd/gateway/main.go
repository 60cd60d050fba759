// Command gateway fronts the auth, data and analytics services on one port.
package main

import (
	"os"

	"expense-services/internal/config"
	"expense-services/internal/server"
	"expense-services/pkg/logging"
)

func main() {
	logger := logging.Setup("gateway")

	cfg := config.Load(config.ServiceGateway)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration error", "error", err)
		os.Exit(1)
	}

	deps, _, err := server.OpenDependencies(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize gateway", "error", err)
		os.Exit(1)
	}

	e, err := server.NewGateway(cfg, deps)
	if err != nil {
		logger.Error("Invalid gateway routes", "error", err)
		os.Exit(1)
	}

	if err := server.Run(e, cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
