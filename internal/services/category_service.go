package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"expense-services/internal/dto"
	"expense-services/internal/models"
	"expense-services/internal/repositories"
)

var (
	ErrCategoryInUse = errors.New("category is referenced by expenses")
)

type categoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewCategoryService creates a new CategoryServiceInterface instance
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &categoryService{
		categoryRepo: categoryRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create adds a category. Names are not unique.
func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{Name: strings.TrimSpace(req.Name)}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.metrics.IncrementCounter(MetricCategoryCreated, nil)
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Delete(ctx context.Context, categoryID uint) error {
	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryInUse) {
			s.logger.Info("refused to delete referenced category", "category_id", categoryID)
			return ErrCategoryInUse
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.metrics.IncrementCounter(MetricCategoryDeleted, nil)
	return nil
}
