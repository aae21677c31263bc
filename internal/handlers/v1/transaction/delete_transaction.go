package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/logging"
)

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id string) error
}

// DeleteTransactionHandler handles DELETE /v1/transaction/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
	Logger             *logrus.Logger
}

func NewDeleteTransactionHandler(svc transactionDeleter, log *logrus.Logger) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc, Logger: log}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "delete-transaction",
		Method:        http.MethodDelete,
		Path:          "/v1/transaction/{id}",
		Summary:       "Delete transaction",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusNoContent,
	}, logging.LoggingWrapper("DeleteTransaction", h.Logger, h.handle))
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*struct{}, error) {
	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("transactionID", input.ID)
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteTransactionMs")
	}
	err := h.TransactionService.DeleteTransaction(ctx, input.ID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, serviceError("failed to delete transaction", err)
	}
	return &struct{}{}, nil
}
