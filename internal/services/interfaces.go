package services

import (
	"context"
	"time"

	"expense-services/internal/dto"
	"expense-services/internal/models"
)

// Authenticator resolves a bearer token to the identity it was issued for.
// Any failure, whatever its cause, is reported as ErrUnauthorized.
type Authenticator interface {
	Resolve(ctx context.Context, token string) (*models.Identity, error)
}

type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Verify(tokenString string) (*models.CustomClaims, error)
	Profile(ctx context.Context, userID uint) (*models.User, error)
}

type TokenServiceInterface interface {
	GenerateAccessToken(user *models.User) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

// ExpenseServiceInterface manages the expenses of one owner at a time
type ExpenseServiceInterface interface {
	Create(ctx context.Context, userID uint, req *dto.CreateExpenseRequest) (*models.Expense, error)
	List(ctx context.Context, userID uint) ([]models.Expense, error)
	Delete(ctx context.Context, userID, expenseID uint) error
}

// CategoryServiceInterface manages the global category list
type CategoryServiceInterface interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Delete(ctx context.Context, categoryID uint) error
}

// AnalyticsServiceInterface computes read-only reports over one user's expenses
type AnalyticsServiceInterface interface {
	Summary(ctx context.Context, userID uint) (*dto.SummaryResponse, error)
	ByCategory(ctx context.Context, userID uint) ([]dto.CategoryTotalResponse, error)
	Monthly(ctx context.Context, userID uint) ([]dto.MonthlyTotalResponse, error)
	TopExpenses(ctx context.Context, userID uint, n int) ([]dto.TopExpenseResponse, error)
	BarCategoryChart(ctx context.Context, userID uint) (*dto.ChartResponse, error)
	LineMonthlyChart(ctx context.Context, userID uint) (*dto.ChartResponse, error)
	PieCategoryChart(ctx context.Context, userID uint) (*dto.ChartResponse, error)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
