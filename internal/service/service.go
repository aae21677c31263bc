package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/analytics"
	"github.com/carson-networks/expense-tracker/internal/categorizer"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// ActionProcessor runs a write action against the store and reports whether it
// committed. *operator.OperatorDelegator implements it.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services. They share one in-memory copy of
// the ledger, which is only changed after the store has committed a write.
type Service struct {
	Transaction *TransactionService
	Settings    *SettingsService
	Insights    *InsightsService
	Exchange    *ExchangeService

	core *core
}

type core struct {
	// writeMu orders store writes with the cache updates that follow them.
	writeMu sync.Mutex

	storage   *storage.Storage
	processor ActionProcessor
	state     *ledgerState
	engine    *analytics.Engine
	log       logrus.FieldLogger
}

// NewService wires the services around the store. Reads are served from memory,
// so Load must be called before the service is used.
func NewService(store *storage.Storage, processor ActionProcessor, engine *analytics.Engine, cat *categorizer.Categorizer, log logrus.FieldLogger) *Service {
	if engine == nil {
		engine = analytics.NewEngine(nil)
	}
	if cat == nil {
		cat = categorizer.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &core{
		storage:   store,
		processor: processor,
		state:     newLedgerState(),
		engine:    engine,
		log:       log,
	}
	settings := &SettingsService{core: c}
	return &Service{
		Transaction: &TransactionService{core: c},
		Settings:    settings,
		Insights:    &InsightsService{core: c, settings: settings, categorizer: cat},
		Exchange:    &ExchangeService{core: c},
		core:        c,
	}
}

// Load replaces the in-memory ledger with the contents of the store.
func (s *Service) Load(ctx context.Context) error {
	s.core.writeMu.Lock()
	defer s.core.writeMu.Unlock()
	return s.core.reload(ctx)
}

// write runs action through the processor and, once it has committed, applies
// the matching change to the in-memory ledger. No other write can commit in
// between, so the cache never falls behind the store.
func (c *core) write(ctx context.Context, action actions.IAction, apply func()) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.processor.Process(ctx, action); err != nil {
		return err
	}
	if apply != nil {
		apply()
	}
	return nil
}

// reload must be called with writeMu held.
func (c *core) reload(ctx context.Context) error {
	rows, err := c.storage.Transactions.List(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	txs := make([]ledger.Transaction, 0, len(rows))
	for _, row := range rows {
		tx, err := transactionFromStorage(row)
		if err != nil {
			c.log.WithFields(logrus.Fields{
				"transactionID": row.ID,
				"error":         err.Error(),
			}).Warn("Service.Load.SkippedTransaction")
			continue
		}
		txs = append(txs, tx)
	}

	settings, err := c.storage.Settings.List(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	values := make(map[string]string, len(settings))
	for _, setting := range settings {
		values[setting.Key] = setting.Value
	}

	c.state.replace(txs, values)
	c.log.WithFields(logrus.Fields{
		"transactions": len(txs),
		"settings":     len(values),
	}).Debug("Service.Load.Complete")
	return nil
}
