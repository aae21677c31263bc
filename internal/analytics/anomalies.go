package analytics

import (
	"fmt"
	"math"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

const (
	minAnomalyTransactions = 20
	minCategorySample      = 5
	maxAnomalies           = 5
	anomalyZScore          = 2
	highSeverityZScore     = 3
	frequencyFactor        = 1.5
)

// AnomalyType tells amount outliers from bursts of activity.
type AnomalyType string

const (
	AnomalyUnusualAmount    AnomalyType = "unusual_amount"
	AnomalyUnusualFrequency AnomalyType = "unusual_frequency"
)

// Anomaly is a flagged transaction or pattern. Transaction is nil for frequency anomalies.
type Anomaly struct {
	Type        AnomalyType
	Severity    Severity
	Reason      string
	Transaction *ledger.Transaction
	ZScore      float64
}

// MeanStdDev returns the mean and population standard deviation (divisor N).
func MeanStdDev(values []float64) (mean, stdDev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// DetectAnomalies flags amounts more than two standard deviations from their
// category mean, then a burst of activity in the last week. Categories with no
// spread never produce amount anomalies. At most five anomalies are returned.
func (e *Engine) DetectAnomalies(txs []ledger.Transaction) []Anomaly {
	anomalies := []Anomaly{}
	if len(txs) < minAnomalyTransactions {
		return anomalies
	}

	groups := GroupByCategory(txs)
	for _, category := range presentCategories(groups) {
		group := groups[category]
		if len(group) < minCategorySample {
			continue
		}

		amounts := make([]float64, len(group))
		for i, tx := range group {
			amounts[i] = tx.Amount.InexactFloat64()
		}
		mean, stdDev := MeanStdDev(amounts)
		if stdDev == 0 {
			continue
		}

		for i := range group {
			z := math.Abs(amounts[i]-mean) / stdDev
			if z <= anomalyZScore {
				continue
			}
			severity := SeverityMedium
			if z > highSeverityZScore {
				severity = SeverityHigh
			}
			tx := group[i]
			anomalies = append(anomalies, Anomaly{
				Type:     AnomalyUnusualAmount,
				Severity: severity,
				Reason: fmt.Sprintf("%s is %.1fx your average %s expense",
					formatCurrency(tx.Amount), amounts[i]/mean, category.DisplayName()),
				Transaction: &tx,
				ZScore:      z,
			})
		}
	}

	recent := len(e.LastNDays(txs, 7))
	baseline := float64(len(txs)) / 90 * 7
	if float64(recent) > baseline*frequencyFactor {
		anomalies = append(anomalies, Anomaly{
			Type:     AnomalyUnusualFrequency,
			Severity: SeverityMedium,
			Reason:   fmt.Sprintf("You've made %d transactions in the last week, which is higher than usual", recent),
		})
	}

	if len(anomalies) > maxAnomalies {
		anomalies = anomalies[:maxAnomalies]
	}
	return anomalies
}
