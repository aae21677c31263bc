package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

func amountsTx(category ledger.Category, date ledger.Date, amounts ...string) []ledger.Transaction {
	out := make([]ledger.Transaction, len(amounts))
	for i, a := range amounts {
		out[i] = makeTx(a, category, date)
	}
	return out
}

func TestMeanStdDev(t *testing.T) {
	mean, std := MeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 2.0, std, 1e-9)

	mean, std = MeanStdDev(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)
}

func TestDetectAnomalies_NotEnoughData(t *testing.T) {
	e := newTestEngine()

	got := e.DetectAnomalies(amountsTx(ledger.CategoryFood, daysAgo(1), "10", "1000", "12", "9", "11"))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDetectAnomalies_ZeroVarianceNeverFlagged(t *testing.T) {
	e := newTestEngine()

	got := e.DetectAnomalies(repeatTx(25, "10", ledger.CategoryFood, daysAgo(60)))

	assert.Empty(t, got)
}

func TestDetectAnomalies_FiveEntryCategory(t *testing.T) {
	e := newTestEngine()
	food := amountsTx(ledger.CategoryFood, daysAgo(60), "10", "1000", "12", "9", "11")
	txs := append(food, repeatTx(15, "50", ledger.CategoryBills, daysAgo(60))...)

	amounts := []float64{10, 1000, 12, 9, 11}
	mean, std := MeanStdDev(amounts)
	assert.InDelta(t, 208.4, mean, 1e-9)
	// with five samples a single outlier cannot exceed a z-score of 2
	assert.Less(t, (1000-mean)/std, 2.0)

	assert.Empty(t, e.DetectAnomalies(txs))
}

func TestDetectAnomalies_HighSeverityOutlier(t *testing.T) {
	e := newTestEngine()
	food := amountsTx(ledger.CategoryFood, daysAgo(60),
		"10", "12", "9", "11", "10", "12", "9", "11", "10", "12", "9", "1000")
	txs := append(food, repeatTx(8, "50", ledger.CategoryBills, daysAgo(60))...)

	got := e.DetectAnomalies(txs)

	require.Len(t, got, 1)
	assert.Equal(t, AnomalyUnusualAmount, got[0].Type)
	assert.Equal(t, SeverityHigh, got[0].Severity)
	require.NotNil(t, got[0].Transaction)
	assert.True(t, got[0].Transaction.Amount.Equal(dec("1000")))
	assert.Greater(t, got[0].ZScore, 3.0)
	assert.Contains(t, got[0].Reason, "$1,000.00")
	assert.Contains(t, got[0].Reason, "Food & Dining")
}

func TestDetectAnomalies_FrequencyBurst(t *testing.T) {
	e := newTestEngine()
	txs := repeatTx(20, "10", ledger.CategoryFood, daysAgo(2))

	got := e.DetectAnomalies(txs)

	require.Len(t, got, 1)
	assert.Equal(t, AnomalyUnusualFrequency, got[0].Type)
	assert.Equal(t, SeverityMedium, got[0].Severity)
	assert.Nil(t, got[0].Transaction)
	assert.Contains(t, got[0].Reason, "20 transactions")
}

func TestDetectAnomalies_CappedAtFive(t *testing.T) {
	e := newTestEngine()
	var txs []ledger.Transaction
	for _, c := range []ledger.Category{
		ledger.CategoryFood, ledger.CategoryTransport, ledger.CategoryShopping,
		ledger.CategoryBills, ledger.CategoryHealth,
	} {
		txs = append(txs, amountsTx(c, daysAgo(1),
			"10", "12", "9", "11", "10", "12", "9", "11", "10", "12", "9", "1000")...)
	}

	got := e.DetectAnomalies(txs)

	require.Len(t, got, 5)
	for _, a := range got {
		assert.Equal(t, AnomalyUnusualAmount, a.Type)
	}
	assert.Equal(t, ledger.CategoryFood, got[0].Transaction.Category)
	assert.Equal(t, ledger.CategoryHealth, got[4].Transaction.Category)
}
