package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Stats summarizes amounts over a set of transactions.
type Stats struct {
	Total   decimal.Decimal
	Average decimal.Decimal
	Min     decimal.Decimal
	Max     decimal.Decimal
	Count   int
}

// Total sums the amounts.
func Total(txs []ledger.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// Average is the mean amount, zero for an empty set.
func Average(txs []ledger.Transaction) decimal.Decimal {
	if len(txs) == 0 {
		return decimal.Zero
	}
	return Total(txs).Div(decimal.NewFromInt(int64(len(txs))))
}

// ComputeStats returns total, average, min, max and count. All are zero for an empty set.
func ComputeStats(txs []ledger.Transaction) Stats {
	if len(txs) == 0 {
		return Stats{Total: decimal.Zero, Average: decimal.Zero, Min: decimal.Zero, Max: decimal.Zero}
	}
	amounts := make([]decimal.Decimal, len(txs))
	for i, tx := range txs {
		amounts[i] = tx.Amount
	}
	return Stats{
		Total:   decimal.Sum(amounts[0], amounts[1:]...),
		Average: decimal.Avg(amounts[0], amounts[1:]...),
		Min:     decimal.Min(amounts[0], amounts[1:]...),
		Max:     decimal.Max(amounts[0], amounts[1:]...),
		Count:   len(txs),
	}
}

// DailyAverage spreads the total over the given number of days.
func DailyAverage(txs []ledger.Transaction, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return Total(txs).Div(decimal.NewFromInt(int64(days)))
}

// PercentageChange is (current-previous)/previous*100, or 0 when previous is zero.
func PercentageChange(current, previous decimal.Decimal) float64 {
	if previous.IsZero() {
		return 0
	}
	return percentOf(current.Sub(previous), previous)
}

// GroupByCategory buckets transactions by category.
func GroupByCategory(txs []ledger.Transaction) map[ledger.Category][]ledger.Transaction {
	groups := make(map[ledger.Category][]ledger.Transaction)
	for _, tx := range txs {
		groups[tx.Category] = append(groups[tx.Category], tx)
	}
	return groups
}

// GroupByDate buckets transactions by calendar date (YYYY-MM-DD).
func GroupByDate(txs []ledger.Transaction) map[string][]ledger.Transaction {
	groups := make(map[string][]ledger.Transaction)
	for _, tx := range txs {
		key := tx.Date.String()
		groups[key] = append(groups[key], tx)
	}
	return groups
}

// CategoryTotals sums amounts per category.
func CategoryTotals(txs []ledger.Transaction) map[ledger.Category]decimal.Decimal {
	totals := make(map[ledger.Category]decimal.Decimal)
	for _, tx := range txs {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// presentCategories returns the categories that occur in groups, in canonical
// order followed by any values outside the enumeration.
func presentCategories[T any](groups map[ledger.Category]T) []ledger.Category {
	out := make([]ledger.Category, 0, len(groups))
	known := make(map[ledger.Category]bool, len(ledger.Categories))
	for _, c := range ledger.Categories {
		known[c] = true
		if _, ok := groups[c]; ok {
			out = append(out, c)
		}
	}
	var extra []ledger.Category
	for c := range groups {
		if !known[c] {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// SortByDateDesc returns a copy ordered newest first. Same-day entries keep
// their relative order.
func SortByDateDesc(txs []ledger.Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Search matches the query case-insensitively against description and category.
func Search(txs []ledger.Transaction, query string) []ledger.Transaction {
	q := strings.ToLower(query)
	var out []ledger.Transaction
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Description), q) ||
			strings.Contains(strings.ToLower(string(tx.Category)), q) {
			out = append(out, tx)
		}
	}
	return out
}
