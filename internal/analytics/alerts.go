package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

const (
	highAlertPercent   = 90
	mediumAlertPercent = 75
)

// Alert warns about budget utilization.
type Alert struct {
	Type       string
	Severity   Severity
	Percentage float64
	Message    string
}

// BudgetAlert evaluates spent against budget. It returns nil below 75%, when the
// budget is not positive, or when nothing was spent.
func BudgetAlert(budget, spent decimal.Decimal) *Alert {
	if !budget.IsPositive() || !spent.IsPositive() {
		return nil
	}
	percentage := percentOf(spent, budget)
	switch {
	case percentage >= highAlertPercent:
		return &Alert{
			Type:       "budget",
			Severity:   SeverityHigh,
			Percentage: percentage,
			Message:    fmt.Sprintf("You've used %.0f%% of your monthly budget!", percentage),
		}
	case percentage >= mediumAlertPercent:
		return &Alert{
			Type:       "budget",
			Severity:   SeverityMedium,
			Percentage: percentage,
			Message:    fmt.Sprintf("You've used %.0f%% of your monthly budget", percentage),
		}
	}
	return nil
}

// CheckBudgetAlerts evaluates the current calendar month against the monthly budget.
func (e *Engine) CheckBudgetAlerts(txs []ledger.Transaction, budget decimal.Decimal) []Alert {
	alerts := []Alert{}
	if alert := BudgetAlert(budget, Total(e.CurrentMonth(txs))); alert != nil {
		alerts = append(alerts, *alert)
	}
	return alerts
}
