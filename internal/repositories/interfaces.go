package repositories

import (
	"context"

	"expense-services/internal/models"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// CategoryRepositoryInterface defines the contract for category repository operations.
// Categories are shared by every user.
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, id uint) error
}

// ExpenseRepositoryInterface defines the contract for expense repository operations.
// Every read and delete is scoped to one owner.
type ExpenseRepositoryInterface interface {
	Create(ctx context.Context, expense *models.Expense) error
	ListByUser(ctx context.Context, userID uint) ([]models.Expense, error)
	DeleteForUser(ctx context.Context, id, userID uint) error
}

// StatsRepositoryInterface defines the read-only aggregations over one user's expenses
type StatsRepositoryInterface interface {
	Summary(ctx context.Context, userID uint) (*models.ExpenseSummary, error)
	TotalsByCategory(ctx context.Context, userID uint) ([]models.CategoryTotal, error)
	MonthlyTotals(ctx context.Context, userID uint) ([]models.MonthlyTotal, error)
	TopExpenses(ctx context.Context, userID uint, limit int) ([]models.Expense, error)
}
