package handlers

import (
	"log/slog"
	"net/http"

	"expense-services/internal/errors"

	"github.com/labstack/echo/v4"
)

// Handlers report failures through two helpers only:
//
// SendError for client and business errors (4xx), e.g.
// SendError(c, errors.CategoryInUse) or
// SendError(c, errors.ValidationInvalidID, errors.WithDetails("id must be a positive integer")).
//
// SendSystemError for anything unexpected coming out of a service. The
// internal error is logged and the client only sees SYSTEM_001.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message and logs the internal error
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, internal := errors.WrapSystemError(err, traceID)

	slog.Error("request failed",
		"trace_id", traceID,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"error", internal,
	)

	return c.JSON(http.StatusInternalServerError, errorResponse)
}
