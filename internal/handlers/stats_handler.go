package handlers

import (
	"net/http"

	"expense-services/internal/errors"
	"expense-services/internal/services"

	"github.com/labstack/echo/v4"
)

// StatsHandler serves the /stats and /chart reports of the caller's expenses
type StatsHandler struct {
	analyticsService services.AnalyticsServiceInterface
}

func NewStatsHandler(analyticsService services.AnalyticsServiceInterface) *StatsHandler {
	return &StatsHandler{analyticsService: analyticsService}
}

// Root answers the liveness probe of the analytics service
func (h *StatsHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Analytics service is running")
}

// Summary handles GET /stats/summary
func (h *StatsHandler) Summary(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	summary, err := h.analyticsService.Summary(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// ByCategory handles GET /stats/by-category
func (h *StatsHandler) ByCategory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	totals, err := h.analyticsService.ByCategory(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, totals)
}

// Monthly handles GET /stats/monthly
func (h *StatsHandler) Monthly(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	totals, err := h.analyticsService.Monthly(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, totals)
}

// TopExpenses handles GET /stats/top-expenses?n=5
func (h *StatsHandler) TopExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	n := getIntParam(c, "n", services.DefaultTopExpenses)

	top, err := h.analyticsService.TopExpenses(c.Request().Context(), userID, n)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, top)
}

// BarCategoryChart handles GET /chart/bar-category
func (h *StatsHandler) BarCategoryChart(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	chart, err := h.analyticsService.BarCategoryChart(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, chart)
}

// LineMonthlyChart handles GET /chart/line-monthly
func (h *StatsHandler) LineMonthlyChart(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	chart, err := h.analyticsService.LineMonthlyChart(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, chart)
}

// PieCategoryChart handles GET /chart/pie-category
func (h *StatsHandler) PieCategoryChart(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	chart, err := h.analyticsService.PieCategoryChart(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, chart)
}
