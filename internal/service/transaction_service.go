package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/analytics"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidCursor       = errors.New("cursor position must be non-negative")
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	*core
}

// CreateTransaction validates the draft, stores it and returns the new transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, draft ledger.Draft) (ledger.Transaction, error) {
	tx, err := ledger.New(draft, s.engine.Now())
	if err != nil {
		return ledger.Transaction{}, err
	}

	add := &actions.AddTransaction{Transaction: transactionToStorage(tx)}
	if err := s.write(ctx, add, func() { s.state.add(tx) }); err != nil {
		return ledger.Transaction{}, fmt.Errorf("store transaction: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"transactionID": tx.ID,
		"category":      tx.Category,
	}).Debug("Service.Transaction.Created")
	return tx, nil
}

// DeleteTransaction removes a transaction by id.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	err := s.write(ctx, &actions.DeleteTransaction{ID: id}, func() { s.state.remove(id) })
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// Clear deletes every transaction and returns how many were removed. Settings
// are kept.
func (s *TransactionService) Clear(ctx context.Context) (int64, error) {
	action := &actions.ClearTransactions{}
	if err := s.write(ctx, action, s.state.clearTransactions); err != nil {
		return 0, fmt.Errorf("clear transactions: %w", err)
	}
	s.log.WithField("removed", action.Removed).Info("Service.Transaction.Cleared")
	return action.Removed, nil
}

// GetTransaction returns one transaction by id.
func (s *TransactionService) GetTransaction(_ context.Context, id string) (ledger.Transaction, error) {
	tx, ok := s.state.find(id)
	if !ok {
		return ledger.Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

// All returns every transaction, newest date first.
func (s *TransactionService) All() []ledger.Transaction {
	return s.state.snapshot()
}

// ListTransactions returns a page of transactions matching filter using
// cursor-based pagination. Transactions created after the first page was served
// are excluded from later pages so positions stay stable.
func (s *TransactionService) ListTransactions(_ context.Context, filter TransactionFilter, cursor *TransactionCursor) ([]ledger.Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	maxCreationTime := s.engine.Now()
	if cursor != nil {
		if cursor.Position < 0 {
			return nil, nil, ErrInvalidCursor
		}
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
		maxCreationTime = cursor.MaxCreationTime
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	txs := s.filter(s.state.snapshot(), filter)

	rows := txs[:0]
	for _, tx := range txs {
		if !tx.CreatedAt.After(maxCreationTime) {
			rows = append(rows, tx)
		}
	}

	if offset >= len(rows) {
		return nil, nil, nil
	}
	rows = rows[offset:]

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: maxCreationTime,
		}
	}

	page := make([]ledger.Transaction, len(rows))
	copy(page, rows)
	return page, nextCursor, nil
}

func (s *TransactionService) filter(txs []ledger.Transaction, filter TransactionFilter) []ledger.Transaction {
	if period, ok := filter.Period.Get(); ok {
		txs = s.engine.FilterByPeriod(txs, period)
	}
	if category, ok := filter.Category.Get(); ok {
		var kept []ledger.Transaction
		for _, tx := range txs {
			if tx.Category == category {
				kept = append(kept, tx)
			}
		}
		txs = kept
	}
	if query, ok := filter.Search.Get(); ok {
		txs = analytics.Search(txs, query)
	}
	return txs
}

// Count returns the number of transactions in the ledger.
func (s *TransactionService) Count() int {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()
	return len(s.state.transactions)
}
