package transaction

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Description string `json:"description" doc:"What the money was spent on"`
	Amount      string `json:"amount" doc:"Decimal amount greater than zero"`
	Date        string `json:"date" doc:"Calendar date, YYYY-MM-DD"`
	Category    string `json:"category" doc:"Category identifier, e.g. food or transport"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body CreateTransactionBody
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   Transaction
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, draft ledger.Draft) (ledger.Transaction, error)
}

// CreateTransactionHandler handles POST /v1/transaction.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
	Logger             *logrus.Logger
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator, log *logrus.Logger) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc, Logger: log}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/v1/transaction",
		Summary:       "Create transaction",
		Description:   "Records a new expense.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, logging.LoggingWrapper("CreateTransaction", h.Logger, h.handle))
}

// parseCreateTransactionInput turns the request body into a draft. Missing
// fields are left empty so that validation reports them in form order.
func parseCreateTransactionInput(input *CreateTransactionInput) (ledger.Draft, error) {
	draft := ledger.Draft{
		Description: input.Body.Description,
		Category:    ledger.Category(strings.TrimSpace(input.Body.Category)),
	}

	if raw := strings.TrimSpace(input.Body.Amount); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return ledger.Draft{}, huma.NewError(http.StatusUnprocessableEntity, "invalid amount",
				fmt.Errorf("%w: %v", ledger.ErrInvalidAmount, err))
		}
		draft.Amount = amount
	}

	if raw := strings.TrimSpace(input.Body.Date); raw != "" {
		date, err := ledger.ParseDate(raw)
		if err != nil {
			return ledger.Draft{}, huma.NewError(http.StatusUnprocessableEntity, "invalid date", err)
		}
		draft.Date = date
	}

	return draft, nil
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)
	draft, err := parseCreateTransactionInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("createTransactionMs")
	}
	tx, err := h.TransactionService.CreateTransaction(ctx, draft)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, serviceError("failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", tx.ID)
	}
	return &CreateTransactionOutput{Status: http.StatusCreated, Body: toTransaction(tx)}, nil
}
