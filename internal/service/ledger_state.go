package service

import (
	"sort"
	"sync"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// ledgerState is the in-memory ledger shared by the services. Handlers run
// concurrently, so every access goes through the lock.
type ledgerState struct {
	mu           sync.RWMutex
	transactions []ledger.Transaction
	settings     map[string]string
}

func newLedgerState() *ledgerState {
	return &ledgerState{settings: map[string]string{}}
}

// snapshot returns a copy of the transactions, newest date first.
func (l *ledgerState) snapshot() []ledger.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ledger.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *ledgerState) find(id string) (ledger.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, tx := range l.transactions {
		if tx.ID == id {
			return tx, true
		}
	}
	return ledger.Transaction{}, false
}

func (l *ledgerState) add(tx ledger.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = append(l.transactions, tx)
	sortLedger(l.transactions)
}

func (l *ledgerState) remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.transactions[:0]
	for _, tx := range l.transactions {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	l.transactions = kept
}

func (l *ledgerState) clearTransactions() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = nil
}

func (l *ledgerState) setting(key string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.settings[key]
	return v, ok
}

func (l *ledgerState) putSetting(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings[key] = value
}

func (l *ledgerState) settingsCopy() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]string, len(l.settings))
	for k, v := range l.settings {
		out[k] = v
	}
	return out
}

func (l *ledgerState) replace(txs []ledger.Transaction, settings map[string]string) {
	sortLedger(txs)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = txs
	l.settings = settings
}

// sortLedger orders like the store: date desc, then created_at desc, then id.
func sortLedger(txs []ledger.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, b := txs[i], txs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
