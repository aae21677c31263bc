package exchange

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type yamlRecord struct {
	ID          string  `yaml:"id"`
	Description string  `yaml:"description"`
	Amount      float64 `yaml:"amount"`
	Date        string  `yaml:"date"`
	Category    string  `yaml:"category"`
	CreatedAt   string  `yaml:"createdAt,omitempty"`
}

type yamlDocument struct {
	Expenses   []yamlRecord   `yaml:"expenses"`
	Settings   map[string]any `yaml:"settings"`
	ExportDate string         `yaml:"exportDate"`
	Version    int            `yaml:"version"`
}

// EncodeYAML renders the export document as YAML. Amounts become plain numbers.
func EncodeYAML(w io.Writer, doc Document) error {
	out := yamlDocument{
		Expenses:   make([]yamlRecord, 0, len(doc.Expenses)),
		Settings:   make(map[string]any, len(doc.Settings)),
		ExportDate: doc.ExportDate.UTC().Format(time.RFC3339),
		Version:    doc.Version,
	}
	for _, tx := range doc.Expenses {
		r := RecordOf(tx)
		out.Expenses = append(out.Expenses, yamlRecord{
			ID:          r.ID,
			Description: r.Description,
			Amount:      tx.Amount.InexactFloat64(),
			Date:        r.Date,
			Category:    r.Category,
			CreatedAt:   r.CreatedAt,
		})
	}
	for key, value := range doc.Settings {
		if _, ok := numericSetting(value); ok {
			if d, err := decimal.NewFromString(value); err == nil {
				out.Settings[key] = d.InexactFloat64()
				continue
			}
		}
		out.Settings[key] = value
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}
