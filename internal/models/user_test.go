package models

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid user",
			user:    User{Username: "alice", PasswordHash: "hash"},
			wantErr: false,
		},
		{
			name:    "empty username",
			user:    User{Username: "  ", PasswordHash: "hash"},
			wantErr: true,
			errMsg:  "username is required",
		},
		{
			name:    "username too long",
			user:    User{Username: strings.Repeat("a", MaxUsernameLength+1), PasswordHash: "hash"},
			wantErr: true,
			errMsg:  "username is too long",
		},
		{
			name:    "missing hash",
			user:    User{Username: "alice"},
			wantErr: true,
			errMsg:  "password hash is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_Identity(t *testing.T) {
	user := User{ID: 7, Username: "bob", PasswordHash: "x"}

	assert.Equal(t, Identity{UserID: 7, Username: "bob"}, user.Identity())
	assert.Equal(t, "users", user.TableName())
}

func TestCategory_Validate(t *testing.T) {
	assert.NoError(t, (&Category{Name: "Food"}).Validate())
	assert.EqualError(t, (&Category{Name: ""}).Validate(), "category name is required")
}

func TestExpense_Validate(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expense Expense
		errMsg  string
	}{
		{"valid", Expense{UserID: 1, CategoryID: 1, Date: date, Amount: decimal.NewFromFloat(12.5)}, ""},
		{"negative amounts are allowed", Expense{UserID: 1, CategoryID: 1, Date: date, Amount: decimal.NewFromInt(-3)}, ""},
		{"missing owner", Expense{CategoryID: 1, Date: date}, "expense owner is required"},
		{"missing category", Expense{UserID: 1, Date: date}, "expense category is required"},
		{"missing date", Expense{UserID: 1, CategoryID: 1}, "expense date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.expense.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.errMsg)
			}
		})
	}
}

func TestExpense_Month(t *testing.T) {
	expense := Expense{Date: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03", expense.Month())
}

func TestParseExpenseDate(t *testing.T) {
	d, err := ParseExpenseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseExpenseDate("2024-02-03T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseExpenseDate("15/01/2024")
	assert.Error(t, err)
}

func TestExpenseSummary_Average(t *testing.T) {
	assert.True(t, ExpenseSummary{}.Average().IsZero())

	summary := ExpenseSummary{Total: decimal.NewFromInt(30), Count: 4}
	assert.True(t, decimal.NewFromFloat(7.5).Equal(summary.Average()))
}
