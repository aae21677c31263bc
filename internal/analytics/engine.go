// Package analytics derives aggregates, forecasts, anomalies and insights from an
// in-memory set of transactions. Every function is pure: inputs are never
// modified and the only ambient input is the engine's clock.
package analytics

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Severity ranks anomalies, insights and alerts.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// Engine evaluates moving time windows against a clock and a calendar location.
type Engine struct {
	Now      func() time.Time
	Location *time.Location
}

// NewEngine returns an Engine on the wall clock in loc (Local when nil).
func NewEngine(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{Now: time.Now, Location: loc}
}

// Today is the current calendar date in the engine's location.
func (e *Engine) Today() ledger.Date {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	loc := e.Location
	if loc == nil {
		loc = time.Local
	}
	return ledger.DateOf(now().In(loc))
}

var hundred = decimal.NewFromInt(100)

func formatCurrency(amount decimal.Decimal) string {
	f := amount.Round(2).InexactFloat64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -f)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}

// percentOf returns part/whole*100, or 0 when whole is zero.
func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
