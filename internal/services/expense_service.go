package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"expense-services/internal/dto"
	"expense-services/internal/models"
	"expense-services/internal/repositories"
)

var (
	ErrInvalidCategory  = errors.New("category does not exist")
	ErrInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD")
	ErrAmountOutOfRange = fmt.Errorf("amount must be less than %s in absolute value", models.MaxAbsAmount)
)

type expenseService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewExpenseService creates a new ExpenseServiceInterface instance
func NewExpenseService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ExpenseServiceInterface {
	return &expenseService{
		expenseRepo: expenseRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// Create stores a new expense owned by userID
func (s *expenseService) Create(ctx context.Context, userID uint, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	date, err := models.ParseExpenseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	amount := req.Amount.Round(2)
	if !models.AmountInRange(amount) {
		return nil, ErrAmountOutOfRange
	}

	expense := &models.Expense{
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		CategoryID:  req.CategoryID,
		UserID:      userID,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		if errors.Is(err, repositories.ErrInvalidCategory) {
			return nil, ErrInvalidCategory
		}
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	s.metrics.IncrementCounter(MetricExpenseCreated, nil)
	s.logger.Debug("expense created", "expense_id", expense.ID, "user_id", userID, "category_id", expense.CategoryID)

	return expense, nil
}

func (s *expenseService) List(ctx context.Context, userID uint) ([]models.Expense, error) {
	expenses, err := s.expenseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Delete removes the caller's expense. An id the caller does not own is
// silently ignored.
func (s *expenseService) Delete(ctx context.Context, userID, expenseID uint) error {
	if err := s.expenseRepo.DeleteForUser(ctx, expenseID, userID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.metrics.IncrementCounter(MetricExpenseDeleted, nil)
	return nil
}
