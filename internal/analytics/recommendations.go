package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

const minRecommendationTransactions = 30

// RecommendationType distinguishes the overall budget from per-category ones.
type RecommendationType string

const (
	RecommendationTotal    RecommendationType = "total"
	RecommendationCategory RecommendationType = "category"
)

// Recommendation is a suggested monthly budget.
type Recommendation struct {
	Type       RecommendationType
	Category   ledger.Category
	Title      string
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Reason     string
}

// BudgetRecommendations carries the recommendations, or a message explaining why
// there are none.
type BudgetRecommendations struct {
	Recommendations []Recommendation
	Message         string
}

var (
	totalBuffer    = decimal.RequireFromString("1.10")
	categoryBuffer = decimal.RequireFromString("1.05")
	three          = decimal.NewFromInt(3)
)

// RecommendBudgets derives monthly budgets from the last 90 days: the overall
// monthly average plus 10%, and each category's monthly average plus 5%.
func (e *Engine) RecommendBudgets(txs []ledger.Transaction) BudgetRecommendations {
	if len(txs) < minRecommendationTransactions {
		return BudgetRecommendations{
			Recommendations: []Recommendation{},
			Message:         "Add more transactions to get personalized budget recommendations",
		}
	}

	window := e.LastNDays(txs, 90)
	monthlyAverage := Total(window).Div(three)

	recs := []Recommendation{{
		Type:   RecommendationTotal,
		Title:  "Monthly Budget Recommendation",
		Amount: monthlyAverage.Mul(totalBuffer).Ceil(),
		Reason: "Based on your average monthly spending plus 10% buffer",
	}}

	totals := CategoryTotals(window)
	for _, category := range presentCategories(totals) {
		categoryMonthly := totals[category].Div(three)
		share := decimal.Zero
		if !monthlyAverage.IsZero() {
			share = categoryMonthly.Div(monthlyAverage).Mul(hundred)
		}
		recs = append(recs, Recommendation{
			Type:       RecommendationCategory,
			Category:   category,
			Title:      category.DisplayName() + " Budget",
			Amount:     categoryMonthly.Mul(categoryBuffer).Ceil(),
			Percentage: share.Round(1),
			Reason:     fmt.Sprintf("Currently %s%% of your spending", share.Round(0).String()),
		})
	}

	return BudgetRecommendations{Recommendations: recs}
}
