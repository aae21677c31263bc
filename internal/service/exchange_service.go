package service

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/exchange"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// ImportResult reports how an import went. Failed counts every expense that did
// not make it into the store, whatever the reason.
type ImportResult struct {
	Imported int
	Failed   int
	Removed  int64
	Settings int
}

// ExchangeService moves the whole ledger in and out of export documents.
type ExchangeService struct {
	*core
}

// Document captures the current ledger as an export document.
func (s *ExchangeService) Document() exchange.Document {
	return exchange.NewDocument(s.state.snapshot(), s.state.settingsCopy(), s.engine.Now())
}

// Export writes the current ledger to w.
func (s *ExchangeService) Export(w io.Writer, format exchange.Format) error {
	return exchange.Encode(w, format, s.Document())
}

// Import replaces every transaction with the ones in the document read from r
// and writes its settings. A document that cannot be parsed leaves the ledger
// untouched. Past that point the import is best effort: expenses that fail
// validation or are rejected by the store are counted and skipped.
func (s *ExchangeService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	payload, err := exchange.Decode(r)
	if err != nil {
		return ImportResult{}, err
	}

	failed := payload.Rejected
	rows := make([]*sqlconfig.Transaction, 0, len(payload.Expenses))
	for i, record := range payload.Expenses {
		tx, err := record.Transaction()
		if err != nil {
			failed++
			s.log.WithFields(logrus.Fields{
				"index":         i,
				"transactionID": record.ID,
				"error":         err.Error(),
			}).Warn("Service.Import.InvalidExpense")
			continue
		}
		rows = append(rows, transactionToStorage(tx))
	}

	// The reload happens under the same lock as the import so no other write
	// can commit in between.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	action := &actions.ImportLedger{Transactions: rows, Settings: payload.Settings}
	if err := s.processor.Process(ctx, action); err != nil {
		return ImportResult{}, fmt.Errorf("import ledger: %w", err)
	}
	for _, insertErr := range action.Failed {
		s.log.WithField("error", insertErr.Error()).Warn("Service.Import.StoreRejected")
	}

	result := ImportResult{
		Imported: action.Imported,
		Failed:   failed + len(action.Failed),
		Removed:  action.Removed,
		Settings: len(payload.Settings),
	}
	if err := s.reload(ctx); err != nil {
		return result, fmt.Errorf("reload after import: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"imported": result.Imported,
		"failed":   result.Failed,
		"removed":  result.Removed,
	}).Info("Service.Import.Complete")
	return result, nil
}
