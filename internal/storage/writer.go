package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/storage/memory"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// Writer is a unit of work. Its tables see their own uncommitted writes and
// nothing is visible to readers until Commit.
type Writer struct {
	Reader
	commit   func() error
	rollback func() error
}

func newSQLWriter(tx bob.Tx) *Writer {
	return &Writer{
		Reader: Reader{
			Transactions: sqlconfig.NewTransactionsTable(tx),
			Settings:     sqlconfig.NewSettingsTable(tx),
		},
		commit:   func() error { return tx.Commit(context.Background()) },
		rollback: func() error { return tx.Rollback(context.Background()) },
	}
}

func newMemoryWriter(tx *memory.Tx) *Writer {
	return &Writer{
		Reader: Reader{
			Transactions: tx.Transactions(),
			Settings:     tx.Settings(),
		},
		commit:   tx.Commit,
		rollback: tx.Rollback,
	}
}

func (w *Writer) Commit() error {
	return w.commit()
}

func (w *Writer) Rollback() error {
	return w.rollback()
}
