package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"expense-services/internal/dto"
	"expense-services/internal/models"
	"expense-services/internal/repositories"
	"expense-services/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExpenseServiceTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	expenseRepo *repository_mocks.MockExpenseRepositoryInterface
	service     ExpenseServiceInterface
	ctx         context.Context
}

func (s *ExpenseServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.expenseRepo = repository_mocks.NewMockExpenseRepositoryInterface(s.ctrl)
	s.service = NewExpenseService(s.expenseRepo, NewNoopMetrics(), slog.Default())
	s.ctx = context.Background()
}

func (s *ExpenseServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestExpenseServiceSuite(t *testing.T) {
	suite.Run(t, new(ExpenseServiceTestSuite))
}

func (s *ExpenseServiceTestSuite) request(amount string, date string, categoryID uint) *dto.CreateExpenseRequest {
	d := decimal.RequireFromString(amount)
	return &dto.CreateExpenseRequest{
		Amount:      &d,
		Description: "lunch",
		Date:        date,
		CategoryID:  categoryID,
	}
}

func (s *ExpenseServiceTestSuite) TestCreate_Success() {
	s.expenseRepo.EXPECT().Create(s.ctx, gomock.Any()).DoAndReturn(func(_ context.Context, e *models.Expense) error {
		s.Equal(uint(7), e.UserID)
		s.Equal(uint(1), e.CategoryID)
		s.Equal("lunch", e.Description)
		s.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), e.Date)
		s.True(decimal.RequireFromString("12.35").Equal(e.Amount))
		e.ID = 10
		return nil
	})

	expense, err := s.service.Create(s.ctx, 7, s.request("12.345", "2024-01-15", 1))

	s.Require().NoError(err)
	s.Equal(uint(10), expense.ID)
}

func (s *ExpenseServiceTestSuite) TestCreate_NegativeAmountAllowed() {
	s.expenseRepo.EXPECT().Create(s.ctx, gomock.Any()).Return(nil)

	expense, err := s.service.Create(s.ctx, 7, s.request("-3.50", "2024-01-15", 1))

	s.Require().NoError(err)
	s.True(decimal.RequireFromString("-3.5").Equal(expense.Amount))
}

func (s *ExpenseServiceTestSuite) TestCreate_InvalidDate() {
	_, err := s.service.Create(s.ctx, 7, s.request("1", "15/01/2024", 1))
	s.Equal(ErrInvalidDate, err)
}

func (s *ExpenseServiceTestSuite) TestCreate_AmountOutOfRange() {
	for _, amount := range []string{"10000000000", "-10000000000", "9999999999.995", "1e12"} {
		_, err := s.service.Create(s.ctx, 7, s.request(amount, "2024-01-15", 1))
		s.Equal(ErrAmountOutOfRange, err, amount)
	}
}

func (s *ExpenseServiceTestSuite) TestCreate_LargestAmount() {
	s.expenseRepo.EXPECT().Create(s.ctx, gomock.Any()).Return(nil)

	expense, err := s.service.Create(s.ctx, 7, s.request("-9999999999.99", "2024-01-15", 1))

	s.Require().NoError(err)
	s.True(decimal.RequireFromString("-9999999999.99").Equal(expense.Amount))
}

func (s *ExpenseServiceTestSuite) TestCreate_UnknownCategory() {
	s.expenseRepo.EXPECT().Create(s.ctx, gomock.Any()).Return(repositories.ErrInvalidCategory)

	_, err := s.service.Create(s.ctx, 7, s.request("1", "2024-01-15", 99))
	s.Equal(ErrInvalidCategory, err)
}

func (s *ExpenseServiceTestSuite) TestList() {
	expenses := []models.Expense{{ID: 2, UserID: 7}, {ID: 1, UserID: 7}}
	s.expenseRepo.EXPECT().ListByUser(s.ctx, uint(7)).Return(expenses, nil)

	got, err := s.service.List(s.ctx, 7)

	s.NoError(err)
	s.Equal(expenses, got)
}

func (s *ExpenseServiceTestSuite) TestList_Error() {
	s.expenseRepo.EXPECT().ListByUser(s.ctx, uint(7)).Return(nil, errors.New("boom"))

	_, err := s.service.List(s.ctx, 7)
	s.ErrorContains(err, "failed to list expenses")
}

func (s *ExpenseServiceTestSuite) TestDelete_ScopedToOwner() {
	s.expenseRepo.EXPECT().DeleteForUser(s.ctx, uint(3), uint(7)).Return(nil)

	s.NoError(s.service.Delete(s.ctx, 7, 3))
}
