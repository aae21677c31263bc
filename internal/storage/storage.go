package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/storage/memory"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// Storage is the ledger store. Reads go straight to the embedded tables;
// mutations go through a Writer obtained from Write.
type Storage struct {
	Reader
	Backend string

	begin func(ctx context.Context) (*Writer, error)
	close func() error
}

// NewStorage opens the backend selected by the configuration.
func NewStorage(env *config.Config) (*Storage, error) {
	switch env.DataBackend {
	case config.BackendMemory:
		return NewMemoryStorage(), nil
	case config.BackendSQLite:
		return NewSQLiteStorage(env.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unknown data backend %q", env.DataBackend)
	}
}

// NewSQLiteStorage opens (creating and migrating if needed) the database file at path.
func NewSQLiteStorage(path string) (*Storage, error) {
	db, err := sqlconfig.Open(path)
	if err != nil {
		return nil, err
	}
	return newSQLStorage(db), nil
}

func newSQLStorage(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		Reader: Reader{
			Transactions: sqlconfig.NewTransactionsTable(exec),
			Settings:     sqlconfig.NewSettingsTable(exec),
		},
		Backend: config.BackendSQLite,
		begin: func(ctx context.Context) (*Writer, error) {
			tx, err := exec.BeginTx(ctx, nil)
			if err != nil {
				return nil, fmt.Errorf("begin transaction: %w", err)
			}
			return newSQLWriter(tx), nil
		},
		close: db.Close,
	}
}

// NewMemoryStorage returns an empty store that lives as long as the process.
func NewMemoryStorage() *Storage {
	db := memory.New()
	return &Storage{
		Reader: Reader{
			Transactions: db.Transactions(),
			Settings:     db.Settings(),
		},
		Backend: config.BackendMemory,
		begin: func(ctx context.Context) (*Writer, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return newMemoryWriter(db.Begin()), nil
		},
		close: func() error { return nil },
	}
}

// Write opens a unit of work. The caller must Commit or Rollback it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	return s.begin(ctx)
}

func (s *Storage) Close() error {
	return s.close()
}
