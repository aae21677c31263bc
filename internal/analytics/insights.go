package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// InsightKind identifies which rule produced an insight.
type InsightKind string

const (
	InsightGettingStarted    InsightKind = "getting_started"
	InsightTopCategory       InsightKind = "top_category"
	InsightSpendingTrend     InsightKind = "spending_trend"
	InsightWeekendSpending   InsightKind = "weekend_spending"
	InsightSavingOpportunity InsightKind = "saving_opportunity"
)

// Insight is a short observation about recent spending.
type Insight struct {
	Kind     InsightKind
	Category ledger.Category
	Title    string
	Message  string
	Priority Severity
}

var savingRate = decimal.RequireFromString("0.15")

// GenerateInsights always returns at least one insight, ordered high, medium, low
// with ties kept in emission order.
func (e *Engine) GenerateInsights(txs []ledger.Transaction) []Insight {
	if len(txs) == 0 {
		return []Insight{{
			Kind:     InsightGettingStarted,
			Title:    "Getting Started",
			Message:  "Start adding your expenses to unlock spending insights!",
			Priority: SeverityLow,
		}}
	}

	var insights []Insight
	last30 := e.LastNDays(txs, 30)
	total := Total(last30)

	if top, amount, ok := topCategory(CategoryTotals(last30)); ok {
		insights = append(insights, Insight{
			Kind:     InsightTopCategory,
			Category: top,
			Title:    "Top Spending Category",
			Message: fmt.Sprintf("%s accounts for %.0f%% of your monthly spending (%s)",
				top.DisplayName(), percentOf(amount, total), formatCurrency(amount)),
			Priority: SeverityHigh,
		})
	}

	if insight, ok := e.trendInsight(txs); ok {
		insights = append(insights, insight)
	}

	var weekend []ledger.Transaction
	for _, tx := range last30 {
		if tx.Date.IsWeekend() {
			weekend = append(weekend, tx)
		}
	}
	if len(weekend) > 0 {
		weekendTotal := Total(weekend)
		if share := percentOf(weekendTotal, total); share > 30 {
			insights = append(insights, Insight{
				Kind:  InsightWeekendSpending,
				Title: "Weekend Spending",
				Message: fmt.Sprintf("%.0f%% of your spending happens on weekends (%s)",
					share, formatCurrency(weekendTotal)),
				Priority: SeverityMedium,
			})
		}
	}

	savings := DailyAverage(last30, 30).Mul(savingRate).Mul(decimal.NewFromInt(30))
	insights = append(insights, Insight{
		Kind:     InsightSavingOpportunity,
		Title:    "Saving Opportunity",
		Message:  fmt.Sprintf("Reducing daily spending by 15%% could save you %s per month", formatCurrency(savings)),
		Priority: SeverityMedium,
	})

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Priority.rank() < insights[j].Priority.rank()
	})
	return insights
}

// trendInsight compares the 30 days before the last 30 with the last 30.
// Changes of 10% or less are not reported; increases above 20% are high priority.
func (e *Engine) trendInsight(txs []ledger.Transaction) (Insight, bool) {
	today := e.Today()
	recentFrom := today.AddDays(-30)
	previousFrom := today.AddDays(-60)

	previous := filterDates(txs, func(d ledger.Date) bool {
		return !d.Before(previousFrom) && d.Before(recentFrom)
	})
	recent := filterDates(txs, func(d ledger.Date) bool { return !d.Before(recentFrom) })

	previousTotal := Total(previous)
	if !previousTotal.IsPositive() {
		return Insight{}, false
	}
	change := PercentageChange(Total(recent), previousTotal)
	if math.Abs(change) <= 10 {
		return Insight{}, false
	}

	direction := "decreased"
	if change > 0 {
		direction = "increased"
	}
	priority := SeverityMedium
	if change > 20 {
		priority = SeverityHigh
	}
	return Insight{
		Kind:  InsightSpendingTrend,
		Title: "Spending Trend",
		Message: fmt.Sprintf("Your spending has %s by %.0f%% compared to the previous month",
			direction, math.Abs(change)),
		Priority: priority,
	}, true
}

// topCategory picks the highest total; ties go to the earlier category.
func topCategory(totals map[ledger.Category]decimal.Decimal) (ledger.Category, decimal.Decimal, bool) {
	var (
		best   ledger.Category
		amount decimal.Decimal
		found  bool
	)
	for _, category := range presentCategories(totals) {
		total := totals[category]
		if !total.IsPositive() {
			continue
		}
		if !found || total.GreaterThan(amount) {
			best, amount, found = category, total, true
		}
	}
	return best, amount, found
}
