package services

import "expense-services/internal/dto"

const (
	ChartBar  = "bar"
	ChartLine = "line"
	ChartPie  = "pie"

	barColor  = "#4e79a7"
	lineColor = "#f28e2b"
)

// pieColors is cycled when there are more slices than colours.
var pieColors = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc949"}

// BuildBarCategoryChart renders per-category totals as a single-colour bar chart.
func BuildBarCategoryChart(totals []dto.CategoryTotalResponse) *dto.ChartResponse {
	labels, values := splitCategoryTotals(totals)

	return &dto.ChartResponse{
		Type: ChartBar,
		Data: dto.ChartData{
			Labels: labels,
			Datasets: []dto.ChartDataset{{
				Label:           "Spending by category",
				Data:            values,
				BackgroundColor: barColor,
			}},
		},
	}
}

// BuildLineMonthlyChart renders monthly totals as an unfilled line.
func BuildLineMonthlyChart(totals []dto.MonthlyTotalResponse) *dto.ChartResponse {
	labels := make([]string, 0, len(totals))
	values := make([]float64, 0, len(totals))
	for _, t := range totals {
		labels = append(labels, t.Month)
		values = append(values, t.Total)
	}

	fill := false
	return &dto.ChartResponse{
		Type: ChartLine,
		Data: dto.ChartData{
			Labels: labels,
			Datasets: []dto.ChartDataset{{
				Label:       "Monthly spending",
				Data:        values,
				BorderColor: lineColor,
				Fill:        &fill,
			}},
		},
	}
}

// BuildPieCategoryChart renders per-category totals with one colour per slice.
func BuildPieCategoryChart(totals []dto.CategoryTotalResponse) *dto.ChartResponse {
	labels, values := splitCategoryTotals(totals)

	colors := make([]string, len(values))
	for i := range values {
		colors[i] = pieColors[i%len(pieColors)]
	}

	return &dto.ChartResponse{
		Type: ChartPie,
		Data: dto.ChartData{
			Labels: labels,
			Datasets: []dto.ChartDataset{{
				Label:           "Category distribution",
				Data:            values,
				BackgroundColor: colors,
			}},
		},
	}
}

func splitCategoryTotals(totals []dto.CategoryTotalResponse) ([]string, []float64) {
	labels := make([]string, 0, len(totals))
	values := make([]float64, 0, len(totals))
	for _, t := range totals {
		labels = append(labels, t.Category)
		values = append(values, t.Total)
	}
	return labels, values
}
