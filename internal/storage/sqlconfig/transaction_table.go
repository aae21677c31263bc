package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"
)

const (
	transactionsTable = "transactions"
	dateLayout        = "2006-01-02"
)

var transactionColumns = []any{"id", "description", "amount", "category", "date", "created_at"}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

// NewTransactionsTable binds the table to a database handle or an open transaction.
func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

type transactionRow struct {
	ID          string          `db:"id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Date        string          `db:"date"`
	CreatedAt   string          `db:"created_at"`
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id string) (*Transaction, error) {
	q := sqlite.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rowToTransaction(row)
}

// Insert stores a new transaction. An existing id yields ErrDuplicateID.
func (t *TransactionsTable) Insert(ctx context.Context, tx *Transaction) error {
	q := sqlite.Insert(
		im.Into(transactionsTable, "id", "description", "amount", "category", "date", "created_at"),
		im.Values(
			sqlite.Arg(tx.ID),
			sqlite.Arg(tx.Description),
			sqlite.Arg(tx.Amount.String()),
			sqlite.Arg(tx.Category),
			sqlite.Arg(tx.Date.UTC().Format(dateLayout)),
			sqlite.Arg(tx.CreatedAt.UTC().Format(time.RFC3339Nano)),
		),
	)
	if _, err := bob.Exec(ctx, t.exec, q); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, tx.ID)
		}
		return err
	}
	return nil
}

// List returns all transactions ordered by date, then creation time, newest first.
func (t *TransactionsTable) List(ctx context.Context) ([]*Transaction, error) {
	q := sqlite.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.OrderBy("date").Desc(),
		sm.OrderBy("created_at").Desc(),
		sm.OrderBy("id").Asc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := rowToTransaction(row)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, nil
}

// Delete removes a transaction. A missing id yields ErrNotFound.
func (t *TransactionsTable) Delete(ctx context.Context, id string) error {
	q := sqlite.Delete(
		dm.From(transactionsTable),
		dm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear deletes every transaction and reports how many were removed.
func (t *TransactionsTable) Clear(ctx context.Context) (int64, error) {
	res, err := bob.Exec(ctx, t.exec, sqlite.Delete(dm.From(transactionsTable)))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func rowToTransaction(row transactionRow) (*Transaction, error) {
	date, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: bad date %q: %w", row.ID, row.Date, err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: bad created_at %q: %w", row.ID, row.CreatedAt, err)
	}
	return &Transaction{
		ID:          row.ID,
		Description: row.Description,
		Amount:      row.Amount,
		Category:    row.Category,
		Date:        date,
		CreatedAt:   createdAt,
	}, nil
}
