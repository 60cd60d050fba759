package dto

// SummaryResponse is returned by GET /stats/summary.
type SummaryResponse struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// CategoryTotalResponse is one entry of GET /stats/by-category.
type CategoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthlyTotalResponse is one entry of GET /stats/monthly.
type MonthlyTotalResponse struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// TopExpenseResponse is one entry of GET /stats/top-expenses.
type TopExpenseResponse struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CategoryID  uint    `json:"category_id"`
}

// ChartResponse is a chart descriptor ready to hand to a charting library.
type ChartResponse struct {
	Type string    `json:"type"`
	Data ChartData `json:"data"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// ChartDataset carries one numeric series. BackgroundColor is a single colour
// for bar charts and a palette for pie charts; line charts use BorderColor.
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor any       `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            *bool     `json:"fill,omitempty"`
}
