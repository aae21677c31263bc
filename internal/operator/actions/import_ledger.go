package actions

import (
	"context"
	"fmt"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// ImportLedger replaces every transaction with the given ones and then writes
// the settings key by key. Inserts are best effort: a record the store rejects
// is counted in Failed and the import carries on. Settings are not cleared.
type ImportLedger struct {
	Transactions []*sqlconfig.Transaction
	Settings     map[string]string

	// Set by Perform.
	Removed  int64
	Imported int
	Failed   []error
}

func (a *ImportLedger) Perform(ctx context.Context, writer *storage.Writer) error {
	a.Imported, a.Failed = 0, nil

	removed, err := writer.Transactions.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	a.Removed = removed

	for _, tx := range a.Transactions {
		if err := writer.Transactions.Insert(ctx, tx); err != nil {
			a.Failed = append(a.Failed, fmt.Errorf("transaction %s: %w", tx.ID, err))
			continue
		}
		a.Imported++
	}

	for key, value := range a.Settings {
		if err := writer.Settings.Put(ctx, key, value); err != nil {
			return fmt.Errorf("save setting %s: %w", key, err)
		}
	}
	return nil
}
