package service

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/analytics"
	"github.com/carson-networks/expense-tracker/internal/categorizer"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// InsightsService runs the analytics engine over the current ledger.
type InsightsService struct {
	*core
	settings    *SettingsService
	categorizer *categorizer.Categorizer
}

func (s *InsightsService) budget() decimal.Decimal {
	budget, _ := s.settings.MonthlyBudget()
	return budget
}

// Dashboard summarizes the current month against the saved budget.
func (s *InsightsService) Dashboard() analytics.Dashboard {
	return s.engine.Dashboard(s.state.snapshot(), s.budget())
}

// DailySeries returns the last days of spending, one point per day.
func (s *InsightsService) DailySeries(days int) []analytics.DailyPoint {
	return s.engine.DailySeries(s.state.snapshot(), days)
}

// CategoryBreakdown ranks categories by spend within period.
func (s *InsightsService) CategoryBreakdown(period analytics.Period) []analytics.CategoryAmount {
	return analytics.CategoryBreakdown(s.engine.FilterByPeriod(s.state.snapshot(), period))
}

// Forecast is nil until there is enough history.
func (s *InsightsService) Forecast() *analytics.Forecast {
	return s.engine.Forecast(s.state.snapshot())
}

func (s *InsightsService) ProjectCategory(category ledger.Category) *analytics.CategoryProjection {
	return s.engine.ProjectCategory(s.state.snapshot(), category)
}

func (s *InsightsService) RecommendBudgets() analytics.BudgetRecommendations {
	return s.engine.RecommendBudgets(s.state.snapshot())
}

func (s *InsightsService) DetectAnomalies() []analytics.Anomaly {
	return s.engine.DetectAnomalies(s.state.snapshot())
}

func (s *InsightsService) GenerateInsights() []analytics.Insight {
	return s.engine.GenerateInsights(s.state.snapshot())
}

// CheckBudgetAlerts compares this month's spend with the saved budget.
func (s *InsightsService) CheckBudgetAlerts() []analytics.Alert {
	return s.engine.CheckBudgetAlerts(s.state.snapshot(), s.budget())
}

// SuggestCategory classifies a free-text description.
func (s *InsightsService) SuggestCategory(description string) categorizer.Suggestion {
	return s.categorizer.Suggestion(description)
}
