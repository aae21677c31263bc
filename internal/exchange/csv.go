package exchange

import (
	"encoding/csv"
	"io"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

var csvHeader = []string{"id", "date", "description", "category", "amount", "created_at"}

// EncodeCSV writes one row per transaction after a header row.
func EncodeCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		r := RecordOf(tx)
		rec := []string{
			r.ID,
			r.Date,
			r.Description,
			r.Category,
			ledger.FormatAmount(tx.Amount),
			r.CreatedAt,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
