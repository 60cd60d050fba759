// Package memory keeps users, categories and expenses in process memory. It
// honours the same contracts as the gorm repositories, including the category
// reference checks the database enforces with foreign keys.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"expense-services/internal/models"
	"expense-services/internal/repositories"

	"github.com/shopspring/decimal"
)

// Store is safe for concurrent use. Every record handed out is a copy.
type Store struct {
	mu sync.RWMutex

	users      []models.User
	categories []models.Category
	expenses   []models.Expense

	nextUserID     uint
	nextCategoryID uint
	nextExpenseID  uint
}

// NewStore returns a store holding only the default category.
func NewStore() *Store {
	s := &Store{
		nextUserID:     1,
		nextCategoryID: 1,
		nextExpenseID:  1,
	}
	s.categories = append(s.categories, models.Category{
		ID:        s.nextCategoryID,
		Name:      models.DefaultCategoryName,
		CreatedAt: time.Now().UTC(),
	})
	s.nextCategoryID++
	return s
}

func (s *Store) Users() repositories.UserRepositoryInterface {
	return userRepository{s}
}

func (s *Store) Categories() repositories.CategoryRepositoryInterface {
	return categoryRepository{s}
}

func (s *Store) Expenses() repositories.ExpenseRepositoryInterface {
	return expenseRepository{s}
}

func (s *Store) Stats() repositories.StatsRepositoryInterface {
	return statsRepository{s}
}

type userRepository struct{ s *Store }

func (r userRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("user cannot be nil")
	}
	if err := user.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return repositories.ErrUserAlreadyExists
		}
	}

	user.ID = r.s.nextUserID
	r.s.nextUserID++
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.s.users = append(r.s.users, *user)
	return nil
}

func (r userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type categoryRepository struct{ s *Store }

func (r categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category == nil {
		return errors.New("category cannot be nil")
	}
	if err := category.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	category.ID = r.s.nextCategoryID
	r.s.nextCategoryID++
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	r.s.categories = append(r.s.categories, *category)
	return nil
}

func (r categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]models.Category, len(r.s.categories))
	copy(out, r.s.categories)
	return out, nil
}

func (r categoryRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.expenses {
		if e.CategoryID == id {
			return repositories.ErrCategoryInUse
		}
	}

	for i, c := range r.s.categories {
		if c.ID == id {
			r.s.categories = append(r.s.categories[:i], r.s.categories[i+1:]...)
			break
		}
	}
	return nil
}

type expenseRepository struct{ s *Store }

func (r expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return errors.New("expense cannot be nil")
	}
	if err := expense.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.hasCategory(expense.CategoryID) {
		return repositories.ErrInvalidCategory
	}

	expense.ID = r.s.nextExpenseID
	r.s.nextExpenseID++
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}
	stored := *expense
	stored.Category = nil
	r.s.expenses = append(r.s.expenses, stored)
	return nil
}

func (r expenseRepository) ListByUser(ctx context.Context, userID uint) ([]models.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.s.expensesOf(userID)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r expenseRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.expenses {
		if e.ID == id && e.UserID == userID {
			r.s.expenses = append(r.s.expenses[:i], r.s.expenses[i+1:]...)
			break
		}
	}
	return nil
}

type statsRepository struct{ s *Store }

func (r statsRepository) Summary(ctx context.Context, userID uint) (*models.ExpenseSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	summary := &models.ExpenseSummary{Total: decimal.Zero}
	for _, e := range r.s.expensesOf(userID) {
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++
	}
	return summary, nil
}

func (r statsRepository) TotalsByCategory(ctx context.Context, userID uint) ([]models.CategoryTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	names := make(map[uint]string, len(r.s.categories))
	for _, c := range r.s.categories {
		names[c.ID] = c.Name
	}

	byName := make(map[string]decimal.Decimal)
	for _, e := range r.s.expensesOf(userID) {
		name := names[e.CategoryID]
		byName[name] = byName[name].Add(e.Amount)
	}

	totals := make([]models.CategoryTotal, 0, len(byName))
	for name, total := range byName {
		totals = append(totals, models.CategoryTotal{Category: name, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total); c != 0 {
			return c > 0
		}
		return strings.Compare(totals[i].Category, totals[j].Category) < 0
	})
	return totals, nil
}

func (r statsRepository) MonthlyTotals(ctx context.Context, userID uint) ([]models.MonthlyTotal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byMonth := make(map[string]decimal.Decimal)
	for _, e := range r.s.expensesOf(userID) {
		month := e.Month()
		byMonth[month] = byMonth[month].Add(e.Amount)
	}

	totals := make([]models.MonthlyTotal, 0, len(byMonth))
	for month, total := range byMonth {
		totals = append(totals, models.MonthlyTotal{Month: month, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month < totals[j].Month
	})
	return totals, nil
}

func (r statsRepository) TopExpenses(ctx context.Context, userID uint, limit int) ([]models.Expense, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := r.s.expensesOf(userID)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// callers hold the lock
func (s *Store) hasCategory(id uint) bool {
	for _, c := range s.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) expensesOf(userID uint) []models.Expense {
	out := []models.Expense{}
	for _, e := range s.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}
