package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

var defaultNow = time.Now

var _ sqlconfig.ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	handle
}

func (t *TransactionsTable) FindByID(_ context.Context, id string) (*sqlconfig.Transaction, error) {
	var found *sqlconfig.Transaction
	err := t.read(func(d *data) error {
		tx, ok := d.transactions[id]
		if !ok {
			return sqlconfig.ErrNotFound
		}
		found = &tx
		return nil
	})
	return found, err
}

func (t *TransactionsTable) Insert(_ context.Context, tx *sqlconfig.Transaction) error {
	return t.write(func(d *data) error {
		if _, ok := d.transactions[tx.ID]; ok {
			return fmt.Errorf("%w: %s", sqlconfig.ErrDuplicateID, tx.ID)
		}
		d.transactions[tx.ID] = *tx
		return nil
	})
}

// List orders like the SQLite table: date desc, created_at desc, id asc.
func (t *TransactionsTable) List(_ context.Context) ([]*sqlconfig.Transaction, error) {
	var out []*sqlconfig.Transaction
	err := t.read(func(d *data) error {
		out = make([]*sqlconfig.Transaction, 0, len(d.transactions))
		for _, tx := range d.transactions {
			out = append(out, &tx)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, err
}

func (t *TransactionsTable) Delete(_ context.Context, id string) error {
	return t.write(func(d *data) error {
		if _, ok := d.transactions[id]; !ok {
			return sqlconfig.ErrNotFound
		}
		delete(d.transactions, id)
		return nil
	})
}

func (t *TransactionsTable) Clear(_ context.Context) (int64, error) {
	var removed int64
	err := t.write(func(d *data) error {
		removed = int64(len(d.transactions))
		d.transactions = map[string]sqlconfig.Transaction{}
		return nil
	})
	return removed, err
}

var _ sqlconfig.ISettingTable = (*SettingsTable)(nil)

type SettingsTable struct {
	handle
	now func() time.Time
}

func (s *SettingsTable) Get(_ context.Context, key string) (*sqlconfig.Setting, error) {
	var found *sqlconfig.Setting
	err := s.read(func(d *data) error {
		setting, ok := d.settings[key]
		if !ok {
			return sqlconfig.ErrNotFound
		}
		found = &setting
		return nil
	})
	return found, err
}

func (s *SettingsTable) Put(_ context.Context, key, value string) error {
	return s.write(func(d *data) error {
		d.settings[key] = sqlconfig.Setting{Key: key, Value: value, UpdatedAt: s.now().UTC()}
		return nil
	})
}

func (s *SettingsTable) List(_ context.Context) ([]*sqlconfig.Setting, error) {
	var out []*sqlconfig.Setting
	err := s.read(func(d *data) error {
		out = make([]*sqlconfig.Setting, 0, len(d.settings))
		for _, setting := range d.settings {
			out = append(out, &setting)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, err
}
