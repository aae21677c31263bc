package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// fixedNow is Wednesday 2025-06-18.
var fixedNow = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return &Engine{
		Now:      func() time.Time { return fixedNow },
		Location: time.UTC,
	}
}

var txCounter int

func makeTx(amount string, category ledger.Category, date ledger.Date) ledger.Transaction {
	txCounter++
	return ledger.Transaction{
		ID:          fmt.Sprintf("tx-%d", txCounter),
		Description: string(category) + " expense",
		Amount:      decimal.RequireFromString(amount),
		Date:        date,
		Category:    category,
		CreatedAt:   fixedNow,
	}
}

func daysAgo(n int) ledger.Date {
	return ledger.DateOf(fixedNow).AddDays(-n)
}

func repeatTx(n int, amount string, category ledger.Category, date ledger.Date) []ledger.Transaction {
	out := make([]ledger.Transaction, n)
	for i := range out {
		out[i] = makeTx(amount, category, date)
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
