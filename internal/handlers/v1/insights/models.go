package insights

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/expense-tracker/internal/analytics"
	"github.com/carson-networks/expense-tracker/internal/ledger"
)

// Amounts are rendered as fixed two-decimal strings throughout.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := money(d.Decimal)
	return &s
}

type Stats struct {
	Total   string `json:"total"`
	Average string `json:"average"`
	Min     string `json:"min"`
	Max     string `json:"max"`
	Count   int    `json:"count"`
}

type DailyPoint struct {
	Date  string `json:"date" doc:"YYYY-MM-DD"`
	Total string `json:"total"`
}

type CategoryAmount struct {
	Category     string  `json:"category"`
	CategoryName string  `json:"categoryName"`
	Total        string  `json:"total"`
	Percentage   float64 `json:"percentage"`
}

type MonthTotal struct {
	Month string `json:"month" doc:"YYYY-MM"`
	Total string `json:"total"`
}

type Forecast struct {
	Predicted  string       `json:"predicted"`
	Average    string       `json:"average"`
	Slope      string       `json:"slope"`
	Trend      string       `json:"trend" enum:"increasing,decreasing,stable"`
	Confidence float64      `json:"confidence" doc:"0 to 95"`
	Months     []MonthTotal `json:"months"`
}

type Projection struct {
	Category          string  `json:"category"`
	DailyAverage      string  `json:"dailyAverage"`
	MonthlyProjection string  `json:"monthlyProjection"`
	Percentage        float64 `json:"percentage" doc:"Share of all spending in the last 30 days"`
}

type Recommendation struct {
	Type       string `json:"type" enum:"total,category"`
	Category   string `json:"category,omitempty"`
	Title      string `json:"title"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage,omitempty"`
	Reason     string `json:"reason"`
}

// AnomalyTransaction is the transaction an amount anomaly points at.
type AnomalyTransaction struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

type Anomaly struct {
	Type        string              `json:"type" enum:"unusual_amount,unusual_frequency"`
	Severity    string              `json:"severity" enum:"high,medium,low"`
	Reason      string              `json:"reason"`
	ZScore      float64             `json:"zScore,omitempty"`
	Transaction *AnomalyTransaction `json:"transaction,omitempty"`
}

type Insight struct {
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority" enum:"high,medium,low"`
}

type Alert struct {
	Type       string  `json:"type"`
	Severity   string  `json:"severity" enum:"high,medium,low"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

func toStats(s analytics.Stats) Stats {
	return Stats{
		Total:   money(s.Total),
		Average: money(s.Average),
		Min:     money(s.Min),
		Max:     money(s.Max),
		Count:   s.Count,
	}
}

func toDailyPoints(points []analytics.DailyPoint) []DailyPoint {
	out := make([]DailyPoint, len(points))
	for i, p := range points {
		out[i] = DailyPoint{Date: p.Date.String(), Total: money(p.Total)}
	}
	return out
}

func toCategoryAmounts(amounts []analytics.CategoryAmount) []CategoryAmount {
	out := make([]CategoryAmount, len(amounts))
	for i, a := range amounts {
		out[i] = CategoryAmount{
			Category:     string(a.Category),
			CategoryName: a.Category.DisplayName(),
			Total:        money(a.Total),
			Percentage:   a.Percentage,
		}
	}
	return out
}

func toForecast(f *analytics.Forecast) *Forecast {
	if f == nil {
		return nil
	}
	months := make([]MonthTotal, len(f.Months))
	for i, m := range f.Months {
		months[i] = MonthTotal{Month: m.Month, Total: money(m.Total)}
	}
	return &Forecast{
		Predicted:  money(f.Predicted),
		Average:    money(f.Average),
		Slope:      money(f.Slope),
		Trend:      string(f.Trend),
		Confidence: f.Confidence,
		Months:     months,
	}
}

func toProjection(p *analytics.CategoryProjection) *Projection {
	if p == nil {
		return nil
	}
	return &Projection{
		Category:          string(p.Category),
		DailyAverage:      money(p.DailyAverage),
		MonthlyProjection: money(p.MonthlyProjection),
		Percentage:        p.Percentage,
	}
}

func toRecommendations(recs []analytics.Recommendation) []Recommendation {
	out := make([]Recommendation, len(recs))
	for i, r := range recs {
		out[i] = Recommendation{
			Type:     string(r.Type),
			Category: string(r.Category),
			Title:    r.Title,
			Amount:   money(r.Amount),
			Reason:   r.Reason,
		}
		if r.Type == analytics.RecommendationCategory {
			out[i].Percentage = r.Percentage.StringFixed(1)
		}
	}
	return out
}

func toAnomalies(anomalies []analytics.Anomaly) []Anomaly {
	out := make([]Anomaly, len(anomalies))
	for i, a := range anomalies {
		out[i] = Anomaly{
			Type:     string(a.Type),
			Severity: string(a.Severity),
			Reason:   a.Reason,
			ZScore:   a.ZScore,
		}
		if a.Transaction != nil {
			out[i].Transaction = toAnomalyTransaction(*a.Transaction)
		}
	}
	return out
}

func toAnomalyTransaction(tx ledger.Transaction) *AnomalyTransaction {
	return &AnomalyTransaction{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      money(tx.Amount),
		Date:        tx.Date.String(),
		Category:    string(tx.Category),
	}
}

func toInsights(insights []analytics.Insight) []Insight {
	out := make([]Insight, len(insights))
	for i, in := range insights {
		out[i] = Insight{
			Kind:     string(in.Kind),
			Category: string(in.Category),
			Title:    in.Title,
			Message:  in.Message,
			Priority: string(in.Priority),
		}
	}
	return out
}

func toAlerts(alerts []analytics.Alert) []Alert {
	out := make([]Alert, len(alerts))
	for i, a := range alerts {
		out[i] = Alert{
			Type:       a.Type,
			Severity:   string(a.Severity),
			Percentage: a.Percentage,
			Message:    a.Message,
		}
	}
	return out
}
