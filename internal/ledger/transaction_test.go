package ledger

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Description: "Coffee",
		Amount:      decimal.RequireFromString("4.50"),
		Date:        NewDate(2025, time.June, 1),
		Category:    CategoryFood,
	}
}

func TestNew_Success(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	draft := validDraft()
	draft.Description = "  Coffee  "

	tx, err := New(draft, now)

	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "Coffee", tx.Description)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("4.50")))
	assert.Equal(t, NewDate(2025, time.June, 1), tx.Date)
	assert.Equal(t, CategoryFood, tx.Category)
	assert.Equal(t, now, tx.CreatedAt)
}

func TestNew_UniqueIDs(t *testing.T) {
	a, err := New(validDraft(), time.Now())
	require.NoError(t, err)
	b, err := New(validDraft(), time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Draft)
		want   error
	}{
		{"empty description", func(d *Draft) { d.Description = "" }, ErrEmptyDescription},
		{"blank description", func(d *Draft) { d.Description = "   " }, ErrEmptyDescription},
		{"missing amount", func(d *Draft) { d.Amount = decimal.Decimal{} }, ErrInvalidAmount},
		{"zero amount", func(d *Draft) { d.Amount = decimal.Zero }, ErrInvalidAmount},
		{"negative amount", func(d *Draft) { d.Amount = decimal.RequireFromString("-1") }, ErrInvalidAmount},
		{"missing date", func(d *Draft) { d.Date = Date{} }, ErrMissingDate},
		{"missing category", func(d *Draft) { d.Category = "" }, ErrMissingCategory},
		{"unknown category", func(d *Draft) { d.Category = "groceries" }, ErrUnknownCategory},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			assert.ErrorIs(t, d.Validate(), tc.want)
		})
	}

	assert.NoError(t, validDraft().Validate())
}

func TestTransactionValidate_RequiresID(t *testing.T) {
	tx, err := New(validDraft(), time.Now())
	require.NoError(t, err)
	assert.NoError(t, tx.Validate())

	tx.ID = ""
	assert.ErrorIs(t, tx.Validate(), ErrMissingID)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		parsed, err := ParseCategory(string(c))
		assert.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCategory("")
	assert.ErrorIs(t, err, ErrMissingCategory)

	_, err = ParseCategory("FOOD")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "Food & Dining", CategoryFood.DisplayName())
	assert.Equal(t, "Bills & Utilities", CategoryBills.DisplayName())
	assert.Equal(t, "Other", Category("nope").DisplayName())
	assert.Len(t, Categories, 8)
}

func TestIsValidationError(t *testing.T) {
	_, err := New(Draft{Description: "Coffee", Amount: decimal.NewFromInt(1), Date: NewDate(2025, time.June, 1), Category: "gadgets"}, time.Now())
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(fmt.Errorf("record 3: %w", ErrMissingDate)))
	assert.False(t, IsValidationError(errors.New("disk full")))
	assert.False(t, IsValidationError(nil))
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4.5", "4.50"},
		{"12", "12.00"},
		{"12.500", "12.50"},
		{"0.005", "0.005"},
		{"1.2345", "1.2345"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}
