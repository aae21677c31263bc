// Package exchange reads and writes the ledger export document. JSON is the
// canonical format and the only one accepted on import; YAML and CSV are
// export-only renderings.
package exchange

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Version is the schema version written into every export.
const Version = 1

var ErrInvalidDocument = errors.New("invalid export document")

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts json, yaml (or yml) and csv; the empty string means json.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}

// FileName is the conventional download name for an export taken at the given time.
func (f Format) FileName(at time.Time) string {
	return fmt.Sprintf("expenses-export-%s.%s", at.Format("2006-01-02"), f)
}

// Document is a complete export: every transaction and every setting.
type Document struct {
	Expenses   []ledger.Transaction
	Settings   map[string]string
	ExportDate time.Time
	Version    int
}

// NewDocument stamps the transactions and settings with the export time and version.
func NewDocument(txs []ledger.Transaction, settings map[string]string, at time.Time) Document {
	return Document{
		Expenses:   txs,
		Settings:   settings,
		ExportDate: at,
		Version:    Version,
	}
}

// Payload is a decoded import file. Expenses are not validated yet: each one is
// converted with Record.Transaction when it is applied.
type Payload struct {
	Expenses []Record
	// Rejected counts array elements that were not expense objects at all.
	Rejected int
	Settings map[string]string
}

// Encode writes doc in the given format. CSV carries the expenses only.
func Encode(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		return EncodeJSON(w, doc)
	case FormatYAML:
		return EncodeYAML(w, doc)
	case FormatCSV:
		return EncodeCSV(w, doc.Expenses)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
