package server

import (
	"log/slog"

	"expense-services/internal/config"
	"expense-services/internal/database"
	"expense-services/internal/handlers"
	"expense-services/internal/repositories"
	"expense-services/internal/repositories/memory"
	"expense-services/internal/services"

	"github.com/prometheus/client_golang/prometheus"
)

// Repositories groups the storage a service may need. A service only uses
// the members its routes touch.
type Repositories struct {
	Users      repositories.UserRepositoryInterface
	Categories repositories.CategoryRepositoryInterface
	Expenses   repositories.ExpenseRepositoryInterface
	Stats      repositories.StatsRepositoryInterface
}

func DatabaseRepositories(db *database.DB) Repositories {
	return Repositories{
		Users:      repositories.NewUserRepository(db.DB),
		Categories: repositories.NewCategoryRepository(db.DB),
		Expenses:   repositories.NewExpenseRepository(db.DB),
		Stats:      repositories.NewStatsRepository(db.DB),
	}
}

func MemoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:      store.Users(),
		Categories: store.Categories(),
		Expenses:   store.Expenses(),
		Stats:      store.Stats(),
	}
}

// Dependencies is everything a service needs besides its configuration.
type Dependencies struct {
	Repositories

	// Authenticator resolves bearer tokens on the data and analytics
	// services. When nil a RemoteAuthenticator is built from the config.
	Authenticator services.Authenticator

	// DB is pinged by /health; nil for the memory backend.
	DB handlers.Pinger

	Registry *prometheus.Registry
	Logger   *slog.Logger
}

func (d *Dependencies) defaults() {
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
}

// OpenDependencies connects the storage backend selected by cfg. The
// returned cleanup releases it.
func OpenDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	deps := &Dependencies{
		Registry: prometheus.NewRegistry(),
		Logger:   logger,
	}

	if cfg.Service == config.ServiceGateway {
		return deps, func() {}, nil
	}

	if !cfg.UsesDatabase() {
		deps.Repositories = MemoryRepositories(memory.NewStore())
		logger.Info("Initialized memory backend")
		return deps, func() {}, nil
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		return nil, nil, err
	}

	deps.Repositories = DatabaseRepositories(db)
	deps.DB = db

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}
	return deps, cleanup, nil
}
