package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext returns the identity stored by the bearer middleware.
func getUserIDFromContext(c echo.Context) (uint, error) {
	userID, ok := c.Get("user_id").(uint)
	if !ok || userID == 0 {
		return 0, ErrUnauthorized
	}

	return userID, nil
}

// parseIDParam reads a positive integer path parameter. Ids are bounded by
// the signed 64-bit range of the id columns.
func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}

	return uint(id), nil
}

// getIntParam returns the integer query parameter name, or defaultValue when
// it is absent or not a number.
func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}

	return value
}
