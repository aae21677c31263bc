package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID           string `json:"id" doc:"Transaction UUID"`
	Description  string `json:"description" doc:"What the money was spent on"`
	Amount       string `json:"amount" doc:"Decimal amount"`
	Date         string `json:"date" doc:"Calendar date, YYYY-MM-DD"`
	Category     string `json:"category" doc:"Category identifier"`
	CategoryName string `json:"categoryName" doc:"Human readable category name"`
	CreatedAt    string `json:"createdAt,omitempty" doc:"RFC3339 creation time"`
}

func toTransaction(tx ledger.Transaction) Transaction {
	out := Transaction{
		ID:           tx.ID,
		Description:  tx.Description,
		Amount:       ledger.FormatAmount(tx.Amount),
		Date:         tx.Date.String(),
		Category:     string(tx.Category),
		CategoryName: tx.Category.DisplayName(),
	}
	if !tx.CreatedAt.IsZero() {
		out.CreatedAt = tx.CreatedAt.Format(time.RFC3339)
	}
	return out
}

// serviceError maps service and validation errors onto HTTP errors.
func serviceError(msg string, err error) error {
	switch {
	case ledger.IsValidationError(err):
		return huma.NewError(http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, service.ErrTransactionNotFound):
		return huma.NewError(http.StatusNotFound, "transaction not found", err)
	case errors.Is(err, sqlconfig.ErrDuplicateID):
		return huma.NewError(http.StatusConflict, "transaction already exists", err)
	case errors.Is(err, service.ErrInvalidCursor):
		return huma.NewError(http.StatusBadRequest, err.Error(), err)
	default:
		return huma.NewError(http.StatusInternalServerError, msg, err)
	}
}
