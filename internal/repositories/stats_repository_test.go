package repositories

import (
	"context"
	"testing"

	"expense-services/internal/database"
	"expense-services/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestStatsRepository(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}

type StatsRepositorySuite struct {
	suite.Suite
	db        *database.DB
	repo      StatsRepositoryInterface
	ctx       context.Context
	food      *models.Category
	transport *models.Category
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewStatsRepository(s.db.DB)
	s.ctx = context.Background()
	s.food = database.CreateTestCategory(s.T(), s.db, "Food")
	s.transport = database.CreateTestCategory(s.T(), s.db, "Transport")
}

func (s *StatsRepositorySuite) seedAlice() {
	database.CreateTestExpense(s.T(), s.db, 1, s.food.ID, 10, "2024-01-05")
	database.CreateTestExpense(s.T(), s.db, 1, s.food.ID, 20, "2024-01-20")
	database.CreateTestExpense(s.T(), s.db, 1, s.transport.ID, 30, "2024-02-03")
	// another user's expense must never show up
	database.CreateTestExpense(s.T(), s.db, 2, s.food.ID, 1000, "2024-01-01")
}

func (s *StatsRepositorySuite) TestSummary() {
	s.seedAlice()

	summary, err := s.repo.Summary(s.ctx, 1)
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(60).Equal(summary.Total), summary.Total.String())
	s.Equal(int64(3), summary.Count)
	s.True(decimal.NewFromInt(20).Equal(summary.Average()))
}

func (s *StatsRepositorySuite) TestSummary_NoExpenses() {
	summary, err := s.repo.Summary(s.ctx, 42)
	s.Require().NoError(err)
	s.True(summary.Total.IsZero())
	s.Zero(summary.Count)
}

func (s *StatsRepositorySuite) TestTotalsByCategory() {
	s.seedAlice()

	totals, err := s.repo.TotalsByCategory(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(totals, 2)

	// 30 each: ties are broken by name
	s.Equal("Food", totals[0].Category)
	s.True(decimal.NewFromInt(30).Equal(totals[0].Total))
	s.Equal("Transport", totals[1].Category)
}

func (s *StatsRepositorySuite) TestTotalsByCategory_OrderedByTotal() {
	database.CreateTestExpense(s.T(), s.db, 1, s.food.ID, 5, "2024-01-05")
	database.CreateTestExpense(s.T(), s.db, 1, s.transport.ID, 50, "2024-01-06")

	totals, err := s.repo.TotalsByCategory(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(totals, 2)
	s.Equal("Transport", totals[0].Category)
	s.Equal("Food", totals[1].Category)
}

func (s *StatsRepositorySuite) TestTotalsByCategory_Empty() {
	totals, err := s.repo.TotalsByCategory(s.ctx, 1)
	s.Require().NoError(err)
	s.NotNil(totals)
	s.Empty(totals)
}

func (s *StatsRepositorySuite) TestMonthlyTotals() {
	s.seedAlice()

	totals, err := s.repo.MonthlyTotals(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(totals, 2)
	s.Equal("2024-01", totals[0].Month)
	s.True(decimal.NewFromInt(30).Equal(totals[0].Total))
	s.Equal("2024-02", totals[1].Month)
	s.True(decimal.NewFromInt(30).Equal(totals[1].Total))
}

func (s *StatsRepositorySuite) TestTopExpenses() {
	s.seedAlice()

	top, err := s.repo.TopExpenses(s.ctx, 1, 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.True(decimal.NewFromInt(30).Equal(top[0].Amount))
	s.True(decimal.NewFromInt(20).Equal(top[1].Amount))

	all, err := s.repo.TopExpenses(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func TestMonthlyTotals_PostgresDialect(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT to_char\(date_trunc\('month', date\), 'YYYY-MM'\) AS month, SUM\(amount\) AS total FROM "expenses" WHERE user_id = .+ GROUP BY to_char`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"month", "total"}).
			AddRow("2024-01", "30.00").
			AddRow("2024-02", "12.50"))

	totals, err := NewStatsRepository(db).MonthlyTotals(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "2024-01", totals[0].Month)
	assert.True(t, decimal.RequireFromString("12.5").Equal(totals[1].Total))
	assert.NoError(t, mock.ExpectationsWereMet())
}
