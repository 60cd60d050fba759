package models

import "github.com/shopspring/decimal"

// CategoryTotal is one row of the per-category aggregation.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyTotal is one row of the per-month aggregation, Month being "YYYY-MM".
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// ExpenseSummary holds the overall totals of a user's expenses.
type ExpenseSummary struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// Average is Total/Count, or zero when there is nothing to average.
func (s ExpenseSummary) Average() decimal.Decimal {
	if s.Count == 0 {
		return decimal.Zero
	}
	return s.Total.Div(decimal.NewFromInt(s.Count))
}
