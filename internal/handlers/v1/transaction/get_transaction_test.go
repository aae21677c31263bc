package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/service"
)

func TestHTTP_GetTransaction(t *testing.T) {
	tx := sampleTransaction()
	svc := new(mockTransactionService)
	svc.On("GetTransaction", mock.Anything, tx.ID).Return(tx, nil)

	api, _ := newTestAPI(t, svc)
	resp := api.Get("/v1/transaction/" + tx.ID)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Coffee", body.Description)
	assert.Equal(t, "2025-06-01", body.Date)
	svc.AssertExpectations(t)
}

func TestHTTP_GetTransaction_NotFound(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("GetTransaction", mock.Anything, "nope").Return(ledger.Transaction{}, service.ErrTransactionNotFound)

	api, hook := newTestAPI(t, svc)
	resp := api.Get("/v1/transaction/nope")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Handler.GetTransaction.Error", hook.LastEntry().Message)
	assert.Equal(t, http.StatusNotFound, hook.LastEntry().Data["status"])
}

func TestHTTP_DeleteTransaction(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("DeleteTransaction", mock.Anything, "abc").Return(nil)

	api, _ := newTestAPI(t, svc)
	resp := api.Delete("/v1/transaction/abc")

	assert.Equal(t, http.StatusNoContent, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrTransactionNotFound, http.StatusNotFound},
		{"store failure", errors.New("delete transaction: disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockTransactionService)
			svc.On("DeleteTransaction", mock.Anything, "abc").Return(tt.err)

			api, _ := newTestAPI(t, svc)
			resp := api.Delete("/v1/transaction/abc")
			assert.Equal(t, tt.want, resp.Code)
		})
	}
}

func TestHTTP_ClearTransactions(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("Clear", mock.Anything).Return(int64(7), nil)

	api, hook := newTestAPI(t, svc)
	resp := api.Delete("/v1/transaction")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body ClearTransactionsBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(7), body.Removed)
	assert.Equal(t, "Handler.ClearTransactions.Complete", hook.LastEntry().Message)
	assert.Equal(t, int64(7), hook.LastEntry().Data["removed"])
	svc.AssertExpectations(t)
}

func TestHTTP_ClearTransactions_StoreFailure(t *testing.T) {
	svc := new(mockTransactionService)
	svc.On("Clear", mock.Anything).Return(int64(0), errors.New("clear transactions: database is locked"))

	api, _ := newTestAPI(t, svc)
	resp := api.Delete("/v1/transaction")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_GetTransaction_SubCentAmount(t *testing.T) {
	tx := sampleTransaction()
	tx.Amount = decimal.RequireFromString("0.005")
	svc := new(mockTransactionService)
	svc.On("GetTransaction", mock.Anything, tx.ID).Return(tx, nil)

	api, _ := newTestAPI(t, svc)
	resp := api.Get("/v1/transaction/" + tx.ID)

	require.Equal(t, http.StatusOK, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "0.005", body.Amount)
}
