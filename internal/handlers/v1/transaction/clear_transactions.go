package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/logging"
)

type transactionClearer interface {
	Clear(ctx context.Context) (int64, error)
}

type ClearTransactionsBody struct {
	Removed int64 `json:"removed" doc:"Number of transactions deleted"`
}

type ClearTransactionsOutput struct {
	Body ClearTransactionsBody
}

// ClearTransactionsHandler handles DELETE /v1/transaction. Settings survive.
type ClearTransactionsHandler struct {
	TransactionService transactionClearer
	Logger             *logrus.Logger
}

func NewClearTransactionsHandler(svc transactionClearer, log *logrus.Logger) *ClearTransactionsHandler {
	return &ClearTransactionsHandler{TransactionService: svc, Logger: log}
}

func (h *ClearTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-transactions",
		Method:      http.MethodDelete,
		Path:        "/v1/transaction",
		Summary:     "Delete all transactions",
		Tags:        []string{"Transactions"},
	}, logging.LoggingWrapper("ClearTransactions", h.Logger, h.handle))
}

func (h *ClearTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*ClearTransactionsOutput, error) {
	removed, err := h.TransactionService.Clear(ctx)
	if err != nil {
		return nil, serviceError("failed to clear transactions", err)
	}
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("removed", removed)
	}
	return &ClearTransactionsOutput{Body: ClearTransactionsBody{Removed: removed}}, nil
}
