// Command analytics-service reports aggregates and chart data over a user's expenses.
package main

import (
	"os"

	"expense-services/internal/config"
	"expense-services/internal/server"
	"expense-services/pkg/logging"
)

func main() {
	logger := logging.Setup("analytics-service")

	cfg := config.Load(config.ServiceAnalytics)
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

	if err := server.Run(server.NewAnalyticsServer(cfg, deps), cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		cleanup()
		os.Exit(1)
	}
}
