package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

const (
	minForecastTransactions   = 30
	minProjectionTransactions = 10
)

// Trend labels the direction of the monthly trend.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// MonthTotal is the spend of one calendar month (YYYY-MM).
type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

// Forecast predicts next month's spending.
type Forecast struct {
	Predicted  decimal.Decimal
	Average    decimal.Decimal
	Slope      decimal.Decimal
	Trend      Trend
	Confidence float64
	Months     []MonthTotal
}

// Forecast buckets the last 90 days by month and extrapolates one step. The slope
// is (last bucket - first bucket) / bucket count, a two-point estimate rather
// than a regression. Returns nil below 30 transactions or when the window is empty.
func (e *Engine) Forecast(txs []ledger.Transaction) *Forecast {
	if len(txs) < minForecastTransactions {
		return nil
	}

	months := MonthlyTotals(e.LastNDays(txs, 90))
	if len(months) == 0 {
		return nil
	}

	count := decimal.NewFromInt(int64(len(months)))
	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(m.Total)
	}
	average := sum.Div(count)
	slope := months[len(months)-1].Total.Sub(months[0].Total).Div(count)

	trend := TrendStable
	switch slope.Sign() {
	case 1:
		trend = TrendIncreasing
	case -1:
		trend = TrendDecreasing
	}

	return &Forecast{
		Predicted:  average.Add(slope),
		Average:    average,
		Slope:      slope,
		Trend:      trend,
		Confidence: math.Min(float64(len(months))/12*100, 90),
		Months:     months,
	}
}

// MonthlyTotals sums transactions per calendar month, ordered by month.
func MonthlyTotals(txs []ledger.Transaction) []MonthTotal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		key := tx.Date.MonthKey()
		totals[key] = totals[key].Add(tx.Amount)
	}
	out := make([]MonthTotal, 0, len(totals))
	for month, total := range totals {
		out = append(out, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryProjection estimates a category's monthly spend from the last 30 days.
type CategoryProjection struct {
	Category          ledger.Category
	DailyAverage      decimal.Decimal
	MonthlyProjection decimal.Decimal
	Percentage        float64
}

// ProjectCategory returns nil when the category has fewer than 10 transactions overall.
func (e *Engine) ProjectCategory(txs []ledger.Transaction, category ledger.Category) *CategoryProjection {
	var inCategory []ledger.Transaction
	for _, tx := range txs {
		if tx.Category == category {
			inCategory = append(inCategory, tx)
		}
	}
	if len(inCategory) < minProjectionTransactions {
		return nil
	}

	categoryTotal := Total(e.LastNDays(inCategory, 30))
	daily := categoryTotal.Div(decimal.NewFromInt(30))

	return &CategoryProjection{
		Category:          category,
		DailyAverage:      daily,
		MonthlyProjection: daily.Mul(decimal.NewFromInt(30)),
		Percentage:        percentOf(categoryTotal, Total(e.LastNDays(txs, 30))),
	}
}
