package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

func TestDashboard(t *testing.T) {
	e := newTestEngine()
	txs := []ledger.Transaction{
		makeTx("300", ledger.CategoryBills, ledger.NewDate(2025, time.June, 2)),
		makeTx("150", ledger.CategoryFood, ledger.NewDate(2025, time.June, 17)),
		makeTx("300", ledger.CategoryFood, ledger.NewDate(2025, time.May, 10)),
	}

	d := e.Dashboard(txs, dec("1000"))

	assert.True(t, d.MonthTotal.Equal(dec("450")))
	assert.True(t, d.PreviousMonthTotal.Equal(dec("300")))
	assert.InDelta(t, 50.0, d.MonthChange, 1e-9)
	assert.Equal(t, 2, d.MonthCount)
	assert.True(t, d.DailyAverage.Equal(dec("15")))
	require.True(t, d.Budget.Valid)
	assert.True(t, d.BudgetLeft.Decimal.Equal(dec("550")))
	assert.InDelta(t, 45.0, d.BudgetProgress, 1e-9)
	assert.Equal(t, 3, d.AllTime.Count)
}

func TestDashboard_BudgetHandling(t *testing.T) {
	e := newTestEngine()
	txs := []ledger.Transaction{makeTx("1200", ledger.CategoryBills, daysAgo(1))}

	over := e.Dashboard(txs, dec("1000"))
	assert.True(t, over.BudgetLeft.Decimal.IsZero())
	assert.Equal(t, 100.0, over.BudgetProgress)

	unset := e.Dashboard(txs, decimal.Zero)
	assert.False(t, unset.Budget.Valid)
	assert.False(t, unset.BudgetLeft.Valid)
	assert.Equal(t, 0.0, unset.BudgetProgress)
}

func TestDailySeries(t *testing.T) {
	e := newTestEngine()
	txs := []ledger.Transaction{
		makeTx("5", ledger.CategoryFood, daysAgo(0)),
		makeTx("7", ledger.CategoryFood, daysAgo(0)),
		makeTx("3", ledger.CategoryFood, daysAgo(2)),
		makeTx("99", ledger.CategoryFood, daysAgo(10)),
	}

	series := e.DailySeries(txs, 7)

	require.Len(t, series, 7)
	assert.Equal(t, daysAgo(6), series[0].Date)
	assert.Equal(t, daysAgo(0), series[6].Date)
	assert.True(t, series[6].Total.Equal(dec("12")))
	assert.True(t, series[4].Total.Equal(dec("3")))
	assert.True(t, series[5].Total.IsZero())
	assert.Empty(t, e.DailySeries(txs, 0))
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []ledger.Transaction{
		makeTx("10", ledger.CategoryFood, daysAgo(1)),
		makeTx("60", ledger.CategoryBills, daysAgo(1)),
		makeTx("30", ledger.CategoryTransport, daysAgo(1)),
	}

	got := CategoryBreakdown(txs)

	require.Len(t, got, 3)
	assert.Equal(t, ledger.CategoryBills, got[0].Category)
	assert.Equal(t, ledger.CategoryTransport, got[1].Category)
	assert.Equal(t, ledger.CategoryFood, got[2].Category)
	assert.InDelta(t, 60.0, got[0].Percentage, 1e-9)
	assert.Empty(t, CategoryBreakdown(nil))
}
