package service

import (
	"time"

	"github.com/aarondl/opt/omit"

	"github.com/carson-networks/expense-tracker/internal/analytics"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// TransactionFilter narrows a transaction listing. Unset fields match everything.
type TransactionFilter struct {
	Category omit.Val[ledger.Category]
	Period   omit.Val[analytics.Period]
	Search   omit.Val[string]
}

// TransactionCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type TransactionCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func transactionToStorage(tx ledger.Transaction) *sqlconfig.Transaction {
	return &sqlconfig.Transaction{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Category:    string(tx.Category),
		Date:        tx.Date.Time,
		CreatedAt:   tx.CreatedAt,
	}
}

func transactionFromStorage(row *sqlconfig.Transaction) (ledger.Transaction, error) {
	category, err := ledger.ParseCategory(row.Category)
	if err != nil {
		return ledger.Transaction{}, err
	}
	return ledger.Transaction{
		ID:          row.ID,
		Description: row.Description,
		Amount:      row.Amount,
		Date:        ledger.DateOf(row.Date.UTC()),
		Category:    category,
		CreatedAt:   row.CreatedAt,
	}, nil
}
