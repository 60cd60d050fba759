package repositories

import (
	"context"
	"errors"
	"fmt"

	"expense-services/internal/models"

	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepositoryInterface {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// Delete removes a category unless an expense still references it. Deleting
// an unknown id succeeds.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var references int64
		if err := tx.Model(&models.Expense{}).Where("category_id = ?", id).Count(&references).Error; err != nil {
			return fmt.Errorf("failed to count category references: %w", err)
		}
		if references > 0 {
			return ErrCategoryInUse
		}

		return tx.Delete(&models.Category{}, id).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrCategoryInUse), isForeignKeyError(err):
		return ErrCategoryInUse
	default:
		return fmt.Errorf("failed to delete category: %w", err)
	}
}
