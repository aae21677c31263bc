package analytics

import (
	"fmt"
	"time"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Period names a dashboard filter window.
type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod accepts the period names above; the empty string means all.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	case "":
		return PeriodAll, nil
	default:
		return "", fmt.Errorf("unknown period %q", s)
	}
}

func filterDates(txs []ledger.Transaction, keep func(ledger.Date) bool) []ledger.Transaction {
	var out []ledger.Transaction
	for _, tx := range txs {
		if keep(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// LastNDays keeps transactions dated on or after today minus n days.
func (e *Engine) LastNDays(txs []ledger.Transaction, n int) []ledger.Transaction {
	cutoff := e.Today().AddDays(-n)
	return filterDates(txs, func(d ledger.Date) bool { return !d.Before(cutoff) })
}

// monthBounds returns the first and last day of the month offset months from today.
func (e *Engine) monthBounds(offset int) (ledger.Date, ledger.Date) {
	today := e.Today()
	start := ledger.NewDate(today.Year(), today.Month()+time.Month(offset), 1)
	end := ledger.Date{Time: start.AddDate(0, 1, -1)}
	return start, end
}

// CurrentMonth keeps transactions dated within the current calendar month.
func (e *Engine) CurrentMonth(txs []ledger.Transaction) []ledger.Transaction {
	start, end := e.monthBounds(0)
	return filterDates(txs, func(d ledger.Date) bool { return d.Between(start, end) })
}

// PreviousMonth keeps transactions dated within the previous calendar month.
func (e *Engine) PreviousMonth(txs []ledger.Transaction) []ledger.Transaction {
	start, end := e.monthBounds(-1)
	return filterDates(txs, func(d ledger.Date) bool { return d.Between(start, end) })
}

// FilterByPeriod applies a dashboard period. Windows are open-ended towards the future.
func (e *Engine) FilterByPeriod(txs []ledger.Transaction, period Period) []ledger.Transaction {
	today := e.Today()
	var from ledger.Date
	switch period {
	case PeriodToday:
		from = today
	case PeriodWeek:
		from = today.AddDays(-7)
	case PeriodMonth:
		from = ledger.NewDate(today.Year(), today.Month(), 1)
	case PeriodYear:
		from = ledger.NewDate(today.Year(), 1, 1)
	default:
		out := make([]ledger.Transaction, len(txs))
		copy(out, txs)
		return out
	}
	return filterDates(txs, func(d ledger.Date) bool { return !d.Before(from) })
}
