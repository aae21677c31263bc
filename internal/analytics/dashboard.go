package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Dashboard is the month-at-a-glance summary.
type Dashboard struct {
	MonthTotal         decimal.Decimal
	PreviousMonthTotal decimal.Decimal
	MonthChange        float64
	MonthCount         int
	DailyAverage       decimal.Decimal
	Budget             decimal.NullDecimal
	BudgetLeft         decimal.NullDecimal
	BudgetProgress     float64
	AllTime            Stats
}

// Dashboard summarizes the current month. budget is ignored unless positive.
func (e *Engine) Dashboard(txs []ledger.Transaction, budget decimal.Decimal) Dashboard {
	month := e.CurrentMonth(txs)
	monthTotal := Total(month)
	previousTotal := Total(e.PreviousMonth(txs))

	d := Dashboard{
		MonthTotal:         monthTotal,
		PreviousMonthTotal: previousTotal,
		MonthChange:        PercentageChange(monthTotal, previousTotal),
		MonthCount:         len(month),
		DailyAverage:       DailyAverage(e.LastNDays(txs, 30), 30),
		AllTime:            ComputeStats(txs),
	}

	if budget.IsPositive() {
		d.Budget = decimal.NewNullDecimal(budget)
		d.BudgetLeft = decimal.NewNullDecimal(decimal.Max(decimal.Zero, budget.Sub(monthTotal)))
		progress := percentOf(monthTotal, budget)
		if progress > 100 {
			progress = 100
		}
		d.BudgetProgress = progress
	}
	return d
}

// DailyPoint is one day of a spending series.
type DailyPoint struct {
	Date  ledger.Date
	Total decimal.Decimal
}

// DailySeries returns one zero-filled point per day, oldest first, ending today.
func (e *Engine) DailySeries(txs []ledger.Transaction, days int) []DailyPoint {
	if days <= 0 {
		return []DailyPoint{}
	}
	today := e.Today()
	from := today.AddDays(-(days - 1))

	byDate := GroupByDate(txs)
	points := make([]DailyPoint, 0, days)
	for d := from; !d.After(today); d = d.AddDays(1) {
		points = append(points, DailyPoint{Date: d, Total: Total(byDate[d.String()])})
	}
	return points
}

// CategoryAmount is one slice of a category breakdown.
type CategoryAmount struct {
	Category   ledger.Category
	Total      decimal.Decimal
	Percentage float64
}

// CategoryBreakdown orders category totals from largest to smallest.
func CategoryBreakdown(txs []ledger.Transaction) []CategoryAmount {
	totals := CategoryTotals(txs)
	all := Total(txs)

	out := make([]CategoryAmount, 0, len(totals))
	for _, category := range presentCategories(totals) {
		out = append(out, CategoryAmount{
			Category:   category,
			Total:      totals[category],
			Percentage: percentOf(totals[category], all),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}
