package repositories

import (
	"context"
	"fmt"

	"expense-services/internal/models"

	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a repository computing aggregations in SQL
func NewStatsRepository(db *gorm.DB) StatsRepositoryInterface {
	return &statsRepository{db: db}
}

func (r *statsRepository) Summary(ctx context.Context, userID uint) (*models.ExpenseSummary, error) {
	var summary models.ExpenseSummary
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	return &summary, nil
}

func (r *statsRepository) TotalsByCategory(ctx context.Context, userID uint) ([]models.CategoryTotal, error) {
	totals := []models.CategoryTotal{}
	err := r.db.WithContext(ctx).
		Table("expenses AS e").
		Select("c.name AS category, SUM(e.amount) AS total").
		Joins("JOIN categories AS c ON c.id = e.category_id").
		Where("e.user_id = ?", userID).
		Group("c.name").
		Order("total DESC, c.name ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals by category: %w", err)
	}

	return totals, nil
}

func (r *statsRepository) MonthlyTotals(ctx context.Context, userID uint) ([]models.MonthlyTotal, error) {
	month := monthExpression(r.db)

	totals := []models.MonthlyTotal{}
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select(month + " AS month, SUM(amount) AS total").
		Where("user_id = ?", userID).
		Group(month).
		Order("month ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly totals: %w", err)
	}

	return totals, nil
}

// TopExpenses returns at most limit expenses ordered by amount, largest first
func (r *statsRepository) TopExpenses(ctx context.Context, userID uint, limit int) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("amount DESC, date DESC, id ASC").
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list top expenses: %w", err)
	}

	return expenses, nil
}

// monthExpression renders the "YYYY-MM" bucket of expenses.date for the
// connected dialect.
func monthExpression(db *gorm.DB) string {
	if db.Dialector.Name() == "sqlite" {
		return "strftime('%Y-%m', date)"
	}
	return "to_char(date_trunc('month', date), 'YYYY-MM')"
}
