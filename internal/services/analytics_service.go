package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expense-services/internal/dto"
	"expense-services/internal/models"
	"expense-services/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	DefaultTopExpenses = 5
	MaxTopExpenses     = 100
)

type analyticsService struct {
	statsRepo repositories.StatsRepositoryInterface
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
}

// NewAnalyticsService creates a new AnalyticsServiceInterface instance
func NewAnalyticsService(
	statsRepo repositories.StatsRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AnalyticsServiceInterface {
	return &analyticsService{
		statsRepo: statsRepo,
		metrics:   metrics,
		logger:    logger,
	}
}

// Summary returns total, mean and count. The mean is not rounded. No
// expenses yields all zeros.
func (s *analyticsService) Summary(ctx context.Context, userID uint) (*dto.SummaryResponse, error) {
	defer s.observe("summary", time.Now())

	summary, err := s.statsRepo.Summary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}

	return &dto.SummaryResponse{
		Total:   money(summary.Total),
		Average: summary.Average().InexactFloat64(),
		Count:   summary.Count,
	}, nil
}

func (s *analyticsService) ByCategory(ctx context.Context, userID uint) ([]dto.CategoryTotalResponse, error) {
	defer s.observe("by_category", time.Now())
	return s.byCategory(ctx, userID)
}

func (s *analyticsService) byCategory(ctx context.Context, userID uint) ([]dto.CategoryTotalResponse, error) {
	totals, err := s.statsRepo.TotalsByCategory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals by category: %w", err)
	}

	out := make([]dto.CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.CategoryTotalResponse{Category: t.Category, Total: money(t.Total)})
	}
	return out, nil
}

func (s *analyticsService) Monthly(ctx context.Context, userID uint) ([]dto.MonthlyTotalResponse, error) {
	defer s.observe("monthly", time.Now())
	return s.monthly(ctx, userID)
}

func (s *analyticsService) monthly(ctx context.Context, userID uint) ([]dto.MonthlyTotalResponse, error) {
	totals, err := s.statsRepo.MonthlyTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly totals: %w", err)
	}

	out := make([]dto.MonthlyTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dto.MonthlyTotalResponse{Month: t.Month, Total: money(t.Total)})
	}
	return out, nil
}

// TopExpenses returns the n largest expenses. n outside 1..MaxTopExpenses is
// replaced by the default or clamped.
func (s *analyticsService) TopExpenses(ctx context.Context, userID uint, n int) ([]dto.TopExpenseResponse, error) {
	defer s.observe("top_expenses", time.Now())

	expenses, err := s.statsRepo.TopExpenses(ctx, userID, NormalizeTopN(n))
	if err != nil {
		return nil, fmt.Errorf("failed to list top expenses: %w", err)
	}

	out := make([]dto.TopExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, dto.TopExpenseResponse{
			Amount:      money(e.Amount),
			Description: e.Description,
			Date:        e.Date.Format(models.DateLayout),
			CategoryID:  e.CategoryID,
		})
	}
	return out, nil
}

func (s *analyticsService) BarCategoryChart(ctx context.Context, userID uint) (*dto.ChartResponse, error) {
	defer s.observe("chart_bar_category", time.Now())

	totals, err := s.byCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildBarCategoryChart(totals), nil
}

func (s *analyticsService) LineMonthlyChart(ctx context.Context, userID uint) (*dto.ChartResponse, error) {
	defer s.observe("chart_line_monthly", time.Now())

	totals, err := s.monthly(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildLineMonthlyChart(totals), nil
}

func (s *analyticsService) PieCategoryChart(ctx context.Context, userID uint) (*dto.ChartResponse, error) {
	defer s.observe("chart_pie_category", time.Now())

	totals, err := s.byCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildPieCategoryChart(totals), nil
}

func (s *analyticsService) observe(report string, start time.Time) {
	s.metrics.IncrementCounter(MetricReportGenerated, map[string]string{"report": report})
	s.metrics.RecordProcessingTime(MetricReportTime, time.Since(start))
}

// NormalizeTopN maps a requested result size onto 1..MaxTopExpenses
func NormalizeTopN(n int) int {
	switch {
	case n <= 0:
		return DefaultTopExpenses
	case n > MaxTopExpenses:
		return MaxTopExpenses
	default:
		return n
	}
}

// money rounds to cents before leaving the decimal domain
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
