package finance

import (
	"time"

	"github.com/mycash-plus/backend/internal/models"
	"github.com/mycash-plus/backend/internal/types"
	"github.com/shopspring/decimal"
)

// DefaultSeriesWindow is the number of trailing months shown in the
// financial flow chart.
const DefaultSeriesWindow = 6

// MonthlyFlow is one month of the income/expense time series.
type MonthlyFlow struct {
	Month   types.Month     `json:"month" example:"2024-06-01T00:00:00Z"`
	Income  decimal.Decimal `json:"income" example:"8450.20"`
	Expense decimal.Decimal `json:"expense" example:"3120.77"`
}

// MonthlySeries buckets transactions into a trailing window of calendar
// months ending at the month of now, applying every filter except the date
// range. Months without transactions are present with zero sums so charts
// stay continuous, ordered chronologically.
func MonthlySeries(transactions []models.Transaction, f FilterSet, categories []models.Category, window int, now time.Time) []MonthlyFlow {
	if window < 1 {
		window = DefaultSeriesWindow
	}

	matching := Filter(transactions, f.withoutDates(), categories)

	series := make([]MonthlyFlow, 0, window)
	for offset := window - 1; offset >= 0; offset-- {
		month := types.MonthOf(now).AddDate(0, -offset)

		flow := MonthlyFlow{
			Month:   month,
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}

		for _, t := range matching {
			if !month.Contains(t.Date) {
				continue
			}

			switch t.Type {
			case models.TransactionTypeIncome:
				flow.Income = flow.Income.Add(t.Amount)
			case models.TransactionTypeExpense:
				flow.Expense = flow.Expense.Add(t.Amount)
			}
		}

		series = append(series, flow)
	}

	return series
}
