// Package memory is a map-backed ledger store for tests and ephemeral runs. It
// follows the same contract as the SQLite tables, including commit and
// rollback of staged writes.
package memory

import (
	"errors"
	"sync"

	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

var ErrTxDone = errors.New("memory: transaction already committed or rolled back")

type data struct {
	transactions map[string]sqlconfig.Transaction
	settings     map[string]sqlconfig.Setting
}

func newData() *data {
	return &data{
		transactions: map[string]sqlconfig.Transaction{},
		settings:     map[string]sqlconfig.Setting{},
	}
}

func (d *data) clone() *data {
	out := &data{
		transactions: make(map[string]sqlconfig.Transaction, len(d.transactions)),
		settings:     make(map[string]sqlconfig.Setting, len(d.settings)),
	}
	for k, v := range d.transactions {
		out.transactions[k] = v
	}
	for k, v := range d.settings {
		out.settings[k] = v
	}
	return out
}

// DB holds the committed state. Writes made through its tables apply
// immediately; writes made through a Tx are visible only after Commit.
type DB struct {
	mu      sync.RWMutex
	current *data

	// writer admits one open Tx at a time.
	writer sync.Mutex
}

func New() *DB {
	return &DB{current: newData()}
}

// handle routes table access either to the committed state, under the DB lock,
// or to a transaction's private copy.
type handle struct {
	db     *DB
	staged *data
}

func (h handle) read(fn func(*data) error) error {
	if h.staged != nil {
		return fn(h.staged)
	}
	h.db.mu.RLock()
	defer h.db.mu.RUnlock()
	return fn(h.db.current)
}

func (h handle) write(fn func(*data) error) error {
	if h.staged != nil {
		return fn(h.staged)
	}
	h.db.mu.Lock()
	defer h.db.mu.Unlock()
	return fn(h.db.current)
}

func (db *DB) Transactions() *TransactionsTable {
	return &TransactionsTable{handle: handle{db: db}}
}

func (db *DB) Settings() *SettingsTable {
	return &SettingsTable{handle: handle{db: db}, now: defaultNow}
}

// Tx is a unit of work over a private copy of the data.
type Tx struct {
	db     *DB
	staged *data
	done   bool
}

// Begin blocks until no other Tx is open.
func (db *DB) Begin() *Tx {
	db.writer.Lock()
	db.mu.RLock()
	staged := db.current.clone()
	db.mu.RUnlock()
	return &Tx{db: db, staged: staged}
}

func (tx *Tx) Transactions() *TransactionsTable {
	return &TransactionsTable{handle: handle{db: tx.db, staged: tx.staged}}
}

func (tx *Tx) Settings() *SettingsTable {
	return &SettingsTable{handle: handle{db: tx.db, staged: tx.staged}, now: defaultNow}
}

func (tx *Tx) Commit() error {
	if tx.done {
		return ErrTxDone
	}
	tx.db.mu.Lock()
	tx.db.current = tx.staged
	tx.db.mu.Unlock()
	tx.finish()
	return nil
}

// Rollback discards staged writes. Calling it after Commit is a no-op.
func (tx *Tx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.finish()
	return nil
}

func (tx *Tx) finish() {
	tx.done = true
	tx.staged = nil
	tx.db.writer.Unlock()
}
