package handlers

import (
	"context"
	"net/http"
	"time"

	"expense-services/internal/errors"

	"github.com/labstack/echo/v4"
)

// Pinger is satisfied by *database.DB
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	service string
	db      Pinger
}

// NewHealthCheckHandler creates a health handler. db may be nil for services
// that keep no database.
func NewHealthCheckHandler(service string, db Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{service: service, db: db}
}

// HealthCheck handles GET /health
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := h.db.HealthCheck(ctx); err != nil {
			return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": h.service,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
