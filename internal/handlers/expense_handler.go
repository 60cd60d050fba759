package handlers

import (
	stderrors "errors"
	"net/http"

	"expense-services/internal/dto"
	"expense-services/internal/errors"
	"expense-services/internal/services"

	"github.com/labstack/echo/v4"
)

// ExpenseHandler serves the caller's expenses
type ExpenseHandler struct {
	expenseService services.ExpenseServiceInterface
}

func NewExpenseHandler(expenseService services.ExpenseServiceInterface) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpense handles POST /expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	expense, err := h.expenseService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrInvalidDate):
			return SendError(c, errors.ValidationInvalidDate)
		case stderrors.Is(err, services.ErrAmountOutOfRange):
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("amount: "+services.ErrAmountOutOfRange.Error()))
		case stderrors.Is(err, services.ErrInvalidCategory):
			return SendError(c, errors.ExpenseInvalidCategory)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.NewExpenseResponse(expense))
}

// ListExpenses handles GET /expenses
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenses, err := h.expenseService.List(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewExpenseListResponse(expenses))
}

// DeleteExpense handles DELETE /expenses/:id. Deleting an expense that does
// not exist or belongs to someone else still answers 204.
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	expenseID, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidID, errors.WithDetails(err.Error()))
	}

	if err := h.expenseService.Delete(c.Request().Context(), userID, expenseID); err != nil {
		return SendSystemError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
