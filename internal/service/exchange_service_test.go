package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/exchange"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

func TestImport_EmptyExpensesWithBudget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreate(t, env.svc, draft("Lunch", "12", ledger.CategoryFood, today()))
	mustCreate(t, env.svc, draft("Bus", "3", ledger.CategoryTransport, today()))
	require.NoError(t, env.svc.Settings.SaveMonthlyBudget(ctx, decimal.NewFromInt(100)))

	result, err := env.svc.Exchange.Import(ctx, strings.NewReader(`{"expenses": [], "settings": {"monthlyBudget": 500}}`))
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Imported: 0, Failed: 0, Removed: 2, Settings: 1}, result)

	assert.Empty(t, env.svc.Transaction.All())
	rows, err := env.store.Transactions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	budget, ok := env.svc.Settings.MonthlyBudget()
	require.True(t, ok)
	assert.True(t, budget.Equal(decimal.NewFromInt(500)))
}

func TestImport_MalformedDocumentLeavesLedgerUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	tx := mustCreate(t, env.svc, draft("Lunch", "12", ledger.CategoryFood, today()))

	for _, doc := range []string{
		`{"expenses": {}}`,
		`[1, 2, 3]`,
		`{"expenses": [`,
		`null`,
	} {
		_, err := env.svc.Exchange.Import(ctx, strings.NewReader(doc))
		assert.ErrorIs(t, err, exchange.ErrInvalidDocument, doc)
	}

	_, err := env.store.Transactions.FindByID(ctx, tx.ID)
	assert.NoError(t, err)
	assert.Len(t, env.svc.Transaction.All(), 1)
}

func TestImport_BestEffort(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mustCreate(t, env.svc, draft("Old entry", "1", ledger.CategoryOther, today()))

	doc := `{"expenses": [
		{"id": "a", "description": "Coffee", "amount": 4.5, "date": "2025-06-10", "category": "food"},
		{"id": "a", "description": "Coffee again", "amount": 4.5, "date": "2025-06-11", "category": "food"},
		{"id": "c", "description": "No amount", "date": "2025-06-11", "category": "food"},
		{"id": "d", "description": "Bad category", "amount": 3, "date": "2025-06-11", "category": "gadgets"},
		7,
		{"id": "b", "description": "Train", "amount": 20, "date": "2025-06-12", "category": "transport"}
	]}`

	result, err := env.svc.Exchange.Import(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 4, result.Failed)
	assert.Equal(t, int64(1), result.Removed)

	all := env.svc.Transaction.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, "Coffee", all[1].Description)

	messages := map[string]int{}
	for _, entry := range env.logs.AllEntries() {
		messages[entry.Message]++
	}
	assert.Equal(t, 2, messages["Service.Import.InvalidExpense"])
	assert.Equal(t, 1, messages["Service.Import.StoreRejected"])
	assert.Equal(t, 1, messages["Service.Import.Complete"])
}

func TestImport_ProcessorFailure(t *testing.T) {
	processor := &mockProcessor{}
	processor.On("Process", mock.Anything, mock.AnythingOfType("*actions.ImportLedger")).
		Return(errors.New("clear transactions: locked"))
	svc := newServiceWithProcessor(t, processor)

	_, err := svc.Exchange.Import(context.Background(), strings.NewReader(`{"expenses": []}`))
	assert.ErrorContains(t, err, "import ledger")
	processor.AssertExpectations(t)
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := newTestEnv(t)
	ctx := context.Background()
	created := []ledger.Transaction{
		mustCreate(t, src.svc, draft("Groceries", "42.50", ledger.CategoryFood, today())),
		mustCreate(t, src.svc, draft("Gym", "30", ledger.CategoryHealth, today().AddDays(-3))),
	}
	require.NoError(t, src.svc.Settings.SaveMonthlyBudget(ctx, decimal.RequireFromString("1500")))

	var buf bytes.Buffer
	require.NoError(t, src.svc.Exchange.Export(&buf, exchange.FormatJSON))

	dst := newTestEnv(t)
	result, err := dst.svc.Exchange.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.Failed)

	got := dst.svc.Transaction.All()
	require.Len(t, got, len(created))
	for i, want := range created {
		assert.Equal(t, want.ID, got[i].ID)
		assert.Equal(t, want.Description, got[i].Description)
		assert.True(t, want.Amount.Equal(got[i].Amount))
		assert.Equal(t, want.Date, got[i].Date)
		assert.Equal(t, want.Category, got[i].Category)
		assert.True(t, want.CreatedAt.Equal(got[i].CreatedAt))
	}

	budget, ok := dst.svc.Settings.MonthlyBudget()
	require.True(t, ok)
	assert.True(t, budget.Equal(decimal.NewFromInt(1500)))
}

func TestExport_Document(t *testing.T) {
	env := newTestEnv(t)
	mustCreate(t, env.svc, draft("Groceries", "42.50", ledger.CategoryFood, today()))

	doc := env.svc.Exchange.Document()
	assert.Equal(t, exchange.Version, doc.Version)
	assert.Equal(t, fixedNow, doc.ExportDate)
	assert.Len(t, doc.Expenses, 1)

	var buf bytes.Buffer
	require.NoError(t, env.svc.Exchange.Export(&buf, exchange.FormatCSV))
	assert.Contains(t, buf.String(), "Groceries,food,42.50")
}
