package repositories

import (
	"context"
	"errors"
	"fmt"

	"expense-services/internal/models"

	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepositoryInterface {
	return &expenseRepository{db: db}
}

// Create stores the expense. A category id that does not exist yields
// ErrInvalidCategory.
func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Category{}).Where("id = ?", expense.CategoryID).Count(&exists).Error; err != nil {
			return fmt.Errorf("failed to look up category: %w", err)
		}
		if exists == 0 {
			return ErrInvalidCategory
		}

		return tx.Omit("Category").Create(expense).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidCategory), isForeignKeyError(err):
		return ErrInvalidCategory
	default:
		return fmt.Errorf("failed to create expense: %w", err)
	}
}

func (r *expenseRepository) ListByUser(ctx context.Context, userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return expenses, nil
}

// DeleteForUser removes the expense only when it belongs to userID. Zero
// affected rows is not an error.
func (r *expenseRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete expense: %w", result.Error)
	}

	return nil
}
