package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// mockTransactionService implements every interface the handlers in this package use.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, draft ledger.Draft) (ledger.Transaction, error) {
	args := m.Called(ctx, draft)
	tx, _ := args.Get(0).(ledger.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, filter service.TransactionFilter, cursor *service.TransactionCursor) ([]ledger.Transaction, *service.TransactionCursor, error) {
	args := m.Called(ctx, filter, cursor)
	txs, _ := args.Get(0).([]ledger.Transaction)
	next, _ := args.Get(1).(*service.TransactionCursor)
	return txs, next, args.Error(2)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, id string) (ledger.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(ledger.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTransactionService) Clear(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, svc *mockTransactionService) (humatest.TestAPI, *test.Hook) {
	t.Helper()
	logger, hook := newTestLogger()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc, logger).Register(api)
	NewListTransactionsHandler(svc, logger).Register(api)
	NewGetTransactionHandler(svc, logger).Register(api)
	NewDeleteTransactionHandler(svc, logger).Register(api)
	NewClearTransactionsHandler(svc, logger).Register(api)
	return api, hook
}

func sampleTransaction() ledger.Transaction {
	return ledger.Transaction{
		ID:          "0b7f3f2e-5d1a-4c55-9d0e-3f3c1c1b2a10",
		Description: "Coffee",
		Amount:      decimal.RequireFromString("4.5"),
		Date:        ledger.NewDate(2025, time.June, 1),
		Category:    ledger.CategoryFood,
		CreatedAt:   time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC),
	}
}
