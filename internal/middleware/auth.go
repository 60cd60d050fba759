package middleware

import (
	stderrors "errors"
	"log/slog"

	"expense-services/internal/errors"
	"expense-services/internal/handlers"
	"expense-services/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	UserIDContextKey   = "user_id"
	UsernameContextKey = "username"
)

// RequireBearer resolves the bearer token through authenticator and stores the
// caller's identity on the context. The wrapped handler only runs for a
// resolved identity.
func RequireBearer(authenticator services.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := services.ExtractBearerToken(c.Request().Header.Get("Authorization"))
			if err != nil {
				if stderrors.Is(err, services.ErrEmptyToken) {
					return handlers.SendError(c, errors.AuthMissingToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			identity, err := authenticator.Resolve(c.Request().Context(), token)
			if err != nil {
				slog.Warn("bearer token rejected",
					"trace_id", GetTraceID(c),
					"path", c.Request().URL.Path,
					"error", err.Error(),
				)
				return handlers.SendError(c, errors.AuthInvalidToken)
			}

			c.Set(UserIDContextKey, identity.UserID)
			c.Set(UsernameContextKey, identity.Username)

			return next(c)
		}
	}
}
