package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Record is the wire form of a transaction. Amount keeps the literal from the
// file so no precision is lost before it is parsed as a decimal.
type Record struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	CreatedAt   string      `json:"createdAt,omitempty"`
}

func RecordOf(tx ledger.Transaction) Record {
	r := Record{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      json.Number(tx.Amount.String()),
		Date:        tx.Date.String(),
		Category:    string(tx.Category),
	}
	if !tx.CreatedAt.IsZero() {
		r.CreatedAt = tx.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return r
}

// Transaction converts and validates the record. An unreadable createdAt is
// dropped rather than rejected since it is only ever displayed.
func (r Record) Transaction() (ledger.Transaction, error) {
	if r.ID == "" {
		return ledger.Transaction{}, ledger.ErrMissingID
	}
	if r.Amount == "" {
		return ledger.Transaction{}, ledger.ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(string(r.Amount))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("%w: %v", ledger.ErrInvalidAmount, err)
	}
	date, err := ledger.ParseDate(r.Date)
	if err != nil {
		return ledger.Transaction{}, err
	}
	category, err := ledger.ParseCategory(r.Category)
	if err != nil {
		return ledger.Transaction{}, err
	}

	tx := ledger.Transaction{
		ID:          r.ID,
		Description: r.Description,
		Amount:      amount,
		Date:        date,
		Category:    category,
	}
	if createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
		tx.CreatedAt = createdAt
	}
	if err := tx.Validate(); err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

type jsonDocument struct {
	Expenses   []Record       `json:"expenses"`
	Settings   map[string]any `json:"settings"`
	ExportDate string         `json:"exportDate"`
	Version    int            `json:"version"`
}

// EncodeJSON writes the canonical export document.
func EncodeJSON(w io.Writer, doc Document) error {
	out := jsonDocument{
		Expenses:   make([]Record, 0, len(doc.Expenses)),
		Settings:   make(map[string]any, len(doc.Settings)),
		ExportDate: doc.ExportDate.UTC().Format(time.RFC3339),
		Version:    doc.Version,
	}
	for _, tx := range doc.Expenses {
		out.Expenses = append(out.Expenses, RecordOf(tx))
	}
	for key, value := range doc.Settings {
		if n, ok := numericSetting(value); ok {
			out.Settings[key] = n
		} else {
			out.Settings[key] = value
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// numericSetting reports whether a stored setting is a JSON number literal.
func numericSetting(value string) (json.Number, bool) {
	if value == "" || value[0] == '"' {
		return "", false
	}
	var n json.Number
	if err := json.Unmarshal([]byte(value), &n); err != nil {
		return "", false
	}
	return n, true
}

// Decode parses an import file. The document must be a JSON object whose
// expenses, when present, is an array; anything else is ErrInvalidDocument.
// A settings member that is not an object is ignored.
func Decode(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	var root map[string]json.RawMessage
	if err := dec.Decode(&root); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if root == nil {
		return Payload{}, fmt.Errorf("%w: document is not an object", ErrInvalidDocument)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Payload{}, fmt.Errorf("%w: trailing data after document", ErrInvalidDocument)
	}

	payload := Payload{Settings: map[string]string{}}

	if raw, ok := root["expenses"]; ok && !isNull(raw) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return Payload{}, fmt.Errorf("%w: expenses must be an array", ErrInvalidDocument)
		}
		for _, item := range items {
			var rec Record
			if err := json.Unmarshal(item, &rec); err != nil || isNull(item) {
				payload.Rejected++
				continue
			}
			payload.Expenses = append(payload.Expenses, rec)
		}
	}

	if raw, ok := root["settings"]; ok {
		var values map[string]json.RawMessage
		if err := json.Unmarshal(raw, &values); err == nil {
			for key, value := range values {
				if s, ok := settingString(value); ok {
					payload.Settings[key] = s
				}
			}
		}
	}

	return payload, nil
}

// settingString flattens a scalar setting value; nulls, arrays and objects are skipped.
func settingString(raw json.RawMessage) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch value := v.(type) {
	case string:
		return value, true
	case json.Number:
		return value.String(), true
	case bool:
		return strconv.FormatBool(value), true
	default:
		return "", false
	}
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
