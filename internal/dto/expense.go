package dto

import (
	"expense-services/internal/models"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the body of POST /expenses. Amount may be negative
// (refunds) but must be present.
type CreateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" validate:"required"`
	Description string           `json:"description" validate:"max=255"`
	Date        string           `json:"date" validate:"required,expense_date"`
	CategoryID  uint             `json:"category_id" validate:"required"`
}

// ExpenseResponse is the wire form of an expense.
type ExpenseResponse struct {
	ID          uint    `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CategoryID  uint    `json:"category_id"`
	UserID      uint    `json:"user_id"`
}

// CreateCategoryRequest is the body of POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"not_blank,max=100"`
}

// CategoryResponse is the wire form of a category.
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount.InexactFloat64(),
		Description: e.Description,
		Date:        e.Date.Format(models.DateLayout),
		CategoryID:  e.CategoryID,
		UserID:      e.UserID,
	}
}

func NewExpenseListResponse(expenses []models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, NewExpenseResponse(&expenses[i]))
	}
	return out
}

func NewCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}

func NewCategoryListResponse(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}
