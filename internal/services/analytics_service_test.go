package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"expense-services/internal/dto"
	"expense-services/internal/models"
	"expense-services/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	statsRepo *repository_mocks.MockStatsRepositoryInterface
	service   AnalyticsServiceInterface
	ctx       context.Context
}

func (s *AnalyticsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.statsRepo = repository_mocks.NewMockStatsRepositoryInterface(s.ctrl)
	s.service = NewAnalyticsService(s.statsRepo, NewNoopMetrics(), slog.Default())
	s.ctx = context.Background()
}

func (s *AnalyticsServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAnalyticsServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (s *AnalyticsServiceTestSuite) categoryTotals() []models.CategoryTotal {
	return []models.CategoryTotal{
		{Category: "Transport", Total: decimal.RequireFromString("30.00")},
		{Category: "Food", Total: decimal.RequireFromString("15.50")},
	}
}

func (s *AnalyticsServiceTestSuite) TestSummary() {
	s.statsRepo.EXPECT().Summary(s.ctx, uint(1)).Return(&models.ExpenseSummary{
		Total: decimal.RequireFromString("45.50"),
		Count: 3,
	}, nil)

	summary, err := s.service.Summary(s.ctx, 1)

	s.Require().NoError(err)
	s.Equal(45.5, summary.Total)
	s.Equal(int64(3), summary.Count)
	s.InDelta(45.5/3, summary.Average, 1e-9)
}

func (s *AnalyticsServiceTestSuite) TestSummary_AverageNotRounded() {
	s.statsRepo.EXPECT().Summary(s.ctx, uint(1)).Return(&models.ExpenseSummary{
		Total: decimal.RequireFromString("30.01"),
		Count: 3,
	}, nil)

	summary, err := s.service.Summary(s.ctx, 1)

	s.Require().NoError(err)
	s.InDelta(10.003333, summary.Average, 1e-6)
	s.NotEqual(10.0, summary.Average)
}

func (s *AnalyticsServiceTestSuite) TestSummary_Empty() {
	s.statsRepo.EXPECT().Summary(s.ctx, uint(1)).Return(&models.ExpenseSummary{}, nil)

	summary, err := s.service.Summary(s.ctx, 1)

	s.Require().NoError(err)
	s.Equal(&dto.SummaryResponse{}, summary)
}

func (s *AnalyticsServiceTestSuite) TestByCategory() {
	s.statsRepo.EXPECT().TotalsByCategory(s.ctx, uint(1)).Return(s.categoryTotals(), nil)

	totals, err := s.service.ByCategory(s.ctx, 1)

	s.Require().NoError(err)
	s.Equal([]dto.CategoryTotalResponse{
		{Category: "Transport", Total: 30},
		{Category: "Food", Total: 15.5},
	}, totals)
}

func (s *AnalyticsServiceTestSuite) TestByCategory_EmptyIsNotNil() {
	s.statsRepo.EXPECT().TotalsByCategory(s.ctx, uint(1)).Return(nil, nil)

	totals, err := s.service.ByCategory(s.ctx, 1)

	s.Require().NoError(err)
	s.NotNil(totals)
	s.Empty(totals)
}

func (s *AnalyticsServiceTestSuite) TestMonthly() {
	s.statsRepo.EXPECT().MonthlyTotals(s.ctx, uint(1)).Return([]models.MonthlyTotal{
		{Month: "2024-01", Total: decimal.NewFromInt(25)},
		{Month: "2024-02", Total: decimal.RequireFromString("5.25")},
	}, nil)

	totals, err := s.service.Monthly(s.ctx, 1)

	s.Require().NoError(err)
	s.Equal([]dto.MonthlyTotalResponse{
		{Month: "2024-01", Total: 25},
		{Month: "2024-02", Total: 5.25},
	}, totals)
}

func (s *AnalyticsServiceTestSuite) TestTopExpenses() {
	s.statsRepo.EXPECT().TopExpenses(s.ctx, uint(1), 2).Return([]models.Expense{
		{Amount: decimal.NewFromInt(30), Description: "taxi", Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), CategoryID: 3},
		{Amount: decimal.NewFromInt(10), Description: "coffee", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), CategoryID: 2},
	}, nil)

	top, err := s.service.TopExpenses(s.ctx, 1, 2)

	s.Require().NoError(err)
	s.Equal([]dto.TopExpenseResponse{
		{Amount: 30, Description: "taxi", Date: "2024-01-20", CategoryID: 3},
		{Amount: 10, Description: "coffee", Date: "2024-01-15", CategoryID: 2},
	}, top)
}

func (s *AnalyticsServiceTestSuite) TestTopExpenses_NormalizesN() {
	s.statsRepo.EXPECT().TopExpenses(s.ctx, uint(1), DefaultTopExpenses).Return(nil, nil)
	_, err := s.service.TopExpenses(s.ctx, 1, 0)
	s.NoError(err)

	s.statsRepo.EXPECT().TopExpenses(s.ctx, uint(1), MaxTopExpenses).Return(nil, nil)
	_, err = s.service.TopExpenses(s.ctx, 1, 5000)
	s.NoError(err)
}

func (s *AnalyticsServiceTestSuite) TestCharts() {
	s.statsRepo.EXPECT().TotalsByCategory(s.ctx, uint(1)).Return(s.categoryTotals(), nil).Times(2)
	s.statsRepo.EXPECT().MonthlyTotals(s.ctx, uint(1)).Return([]models.MonthlyTotal{
		{Month: "2024-01", Total: decimal.NewFromInt(25)},
	}, nil)

	bar, err := s.service.BarCategoryChart(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(ChartBar, bar.Type)
	s.Equal([]string{"Transport", "Food"}, bar.Data.Labels)
	s.Equal([]float64{30, 15.5}, bar.Data.Datasets[0].Data)

	pie, err := s.service.PieCategoryChart(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(ChartPie, pie.Type)

	line, err := s.service.LineMonthlyChart(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(ChartLine, line.Type)
	s.Equal([]string{"2024-01"}, line.Data.Labels)
}

func (s *AnalyticsServiceTestSuite) TestRepositoryError() {
	s.statsRepo.EXPECT().Summary(s.ctx, uint(1)).Return(nil, errors.New("db down"))

	_, err := s.service.Summary(s.ctx, 1)
	s.ErrorContains(err, "failed to compute summary")
}

func TestNormalizeTopN(t *testing.T) {
	cases := map[int]int{-1: 5, 0: 5, 1: 1, 3: 3, 100: 100, 101: 100}
	for in, want := range cases {
		if got := NormalizeTopN(in); got != want {
			t.Errorf("NormalizeTopN(%d) = %d, want %d", in, got, want)
		}
	}
}
