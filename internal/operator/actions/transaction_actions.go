package actions

import (
	"context"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

type AddTransaction struct {
	Transaction *sqlconfig.Transaction
}

func (a *AddTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Insert(ctx, a.Transaction)
}

type DeleteTransaction struct {
	ID string
}

func (a *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Delete(ctx, a.ID)
}

// ClearTransactions deletes every transaction. Removed is set by Perform.
type ClearTransactions struct {
	Removed int64
}

func (a *ClearTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	removed, err := writer.Transactions.Clear(ctx)
	if err != nil {
		return err
	}
	a.Removed = removed
	return nil
}

type SaveSetting struct {
	Key   string
	Value string
}

func (a *SaveSetting) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Settings.Put(ctx, a.Key, a.Value)
}
