package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DateLayout is the wire format of expense dates.
const DateLayout = "2006-01-02"

// MaxAbsAmount is the exclusive bound of decimal(12,2) amounts.
var MaxAbsAmount = decimal.New(1, 10)

// AmountInRange reports whether amount fits the amount column.
func AmountInRange(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(MaxAbsAmount)
}

// Expense belongs to exactly one user and one category. The category
// reference is enforced by a RESTRICT foreign key; the owner is the user id
// issued by the auth service and is never reassigned.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Description string          `gorm:"type:varchar(255);not null;default:''" json:"description"`
	Date        time.Time       `gorm:"type:date;not null;index" json:"date"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time       `gorm:"not null" json:"-"`

	Category *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	return e.Validate()
}

func (e *Expense) Validate() error {
	if e.UserID == 0 {
		return errors.New("expense owner is required")
	}

	if e.CategoryID == 0 {
		return errors.New("expense category is required")
	}

	if e.Date.IsZero() {
		return errors.New("expense date is required")
	}

	return nil
}

// Month returns the "YYYY-MM" bucket the expense is reported under.
func (e *Expense) Month() string {
	return e.Date.Format("2006-01")
}

func (e *Expense) TableName() string {
	return "expenses"
}

// ParseExpenseDate parses a YYYY-MM-DD date. A full RFC 3339 timestamp is
// accepted too and truncated to its calendar day.
func ParseExpenseDate(value string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.New("date must be formatted as YYYY-MM-DD")
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
