package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// SettingMonthlyBudget is the settings key holding the monthly budget.
const SettingMonthlyBudget = "monthlyBudget"

var (
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidAmount    = errors.New("amount must be greater than 0")
	ErrMissingDate      = errors.New("date is required")
	ErrMissingCategory  = errors.New("category is required")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrMissingID        = errors.New("id is required")
)

var validationErrors = []error{
	ErrEmptyDescription,
	ErrInvalidAmount,
	ErrMissingDate,
	ErrMissingCategory,
	ErrUnknownCategory,
	ErrMissingID,
}

// IsValidationError reports whether err is, or wraps, one of the validation errors above.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Transaction is a single recorded expense.
type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Date        Date
	Category    Category
	CreatedAt   time.Time
}

// Draft is the user-supplied part of a transaction, before an id is assigned.
type Draft struct {
	Description string
	Amount      decimal.Decimal
	Date        Date
	Category    Category
}

// Validate checks the draft in the order a form would report problems.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Description) == "" {
		return ErrEmptyDescription
	}
	if !d.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if d.Date.IsZero() {
		return ErrMissingDate
	}
	if d.Category == "" {
		return ErrMissingCategory
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, d.Category)
	}
	return nil
}

// FormatAmount renders an amount with two decimal places, or with as many as it
// needs when it is more precise than a cent.
func FormatAmount(d decimal.Decimal) string {
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return d.String()
	}
	return d.StringFixed(2)
}

// New validates the draft and turns it into a transaction with a fresh id.
func New(d Draft, now time.Time) (Transaction, error) {
	if err := d.Validate(); err != nil {
		return Transaction{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return Transaction{}, fmt.Errorf("generate id: %w", err)
	}
	return Transaction{
		ID:          id.String(),
		Description: strings.TrimSpace(d.Description),
		Amount:      d.Amount,
		Date:        d.Date,
		Category:    d.Category,
		CreatedAt:   now,
	}, nil
}

// Validate checks a complete transaction, e.g. one read from an import file.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	return Draft{
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date,
		Category:    t.Category,
	}.Validate()
}
