// Package insights exposes the analytics engine over HTTP. Every endpoint is a
// read of the current ledger except suggest, which only classifies its input.
package insights

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/analytics"
	"github.com/carson-networks/expense-tracker/internal/categorizer"
	"github.com/carson-networks/expense-tracker/internal/ledger"
	"github.com/carson-networks/expense-tracker/internal/logging"
)

type insightsService interface {
	Dashboard() analytics.Dashboard
	DailySeries(days int) []analytics.DailyPoint
	CategoryBreakdown(period analytics.Period) []analytics.CategoryAmount
	Forecast() *analytics.Forecast
	ProjectCategory(category ledger.Category) *analytics.CategoryProjection
	RecommendBudgets() analytics.BudgetRecommendations
	DetectAnomalies() []analytics.Anomaly
	GenerateInsights() []analytics.Insight
	CheckBudgetAlerts() []analytics.Alert
	SuggestCategory(description string) categorizer.Suggestion
}

// Handler serves /v1/insights/*.
type Handler struct {
	InsightsService insightsService
	Logger          *logrus.Logger
}

func NewHandler(svc insightsService, log *logrus.Logger) *Handler {
	return &Handler{InsightsService: svc, Logger: log}
}

func (h *Handler) Register(api huma.API) {
	tags := []string{"Insights"}

	huma.Register(api, huma.Operation{
		OperationID: "get-dashboard",
		Method:      http.MethodGet,
		Path:        "/v1/insights/dashboard",
		Summary:     "Month at a glance",
		Tags:        tags,
	}, logging.LoggingWrapper("Dashboard", h.Logger, h.dashboard))

	huma.Register(api, huma.Operation{
		OperationID: "get-forecast",
		Method:      http.MethodGet,
		Path:        "/v1/insights/forecast",
		Summary:     "Next month's spending forecast",
		Tags:        tags,
	}, logging.LoggingWrapper("Forecast", h.Logger, h.forecast))

	huma.Register(api, huma.Operation{
		OperationID: "get-category-projection",
		Method:      http.MethodGet,
		Path:        "/v1/insights/projection/{category}",
		Summary:     "Monthly projection for one category",
		Tags:        tags,
	}, logging.LoggingWrapper("Projection", h.Logger, h.projection))

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-recommendations",
		Method:      http.MethodGet,
		Path:        "/v1/insights/recommendations",
		Summary:     "Suggested monthly budgets",
		Tags:        tags,
	}, logging.LoggingWrapper("Recommendations", h.Logger, h.recommendations))

	huma.Register(api, huma.Operation{
		OperationID: "get-anomalies",
		Method:      http.MethodGet,
		Path:        "/v1/insights/anomalies",
		Summary:     "Unusual transactions and activity",
		Tags:        tags,
	}, logging.LoggingWrapper("Anomalies", h.Logger, h.anomalies))

	huma.Register(api, huma.Operation{
		OperationID: "get-insights",
		Method:      http.MethodGet,
		Path:        "/v1/insights/insights",
		Summary:     "Spending insights",
		Tags:        tags,
	}, logging.LoggingWrapper("Insights", h.Logger, h.insights))

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-alerts",
		Method:      http.MethodGet,
		Path:        "/v1/insights/alerts",
		Summary:     "Budget utilization alerts",
		Tags:        tags,
	}, logging.LoggingWrapper("Alerts", h.Logger, h.alerts))

	huma.Register(api, huma.Operation{
		OperationID: "suggest-category",
		Method:      http.MethodPost,
		Path:        "/v1/insights/suggest",
		Summary:     "Suggest a category for a description",
		Tags:        tags,
	}, logging.LoggingWrapper("SuggestCategory", h.Logger, h.suggest))
}

// -- dashboard --

type DashboardInput struct {
	Period string `query:"period" enum:"today,week,month,year,all" default:"month" doc:"Window for the category breakdown"`
	Days   int    `query:"days" minimum:"1" maximum:"365" default:"30" doc:"Length of the daily series"`
}

type DashboardBody struct {
	MonthTotal         string           `json:"monthTotal"`
	PreviousMonthTotal string           `json:"previousMonthTotal"`
	MonthChange        float64          `json:"monthChange" doc:"Percentage change against the previous month"`
	MonthCount         int              `json:"monthCount"`
	DailyAverage       string           `json:"dailyAverage" doc:"Average over the last 30 days"`
	Budget             *string          `json:"budget,omitempty"`
	BudgetLeft         *string          `json:"budgetLeft,omitempty"`
	BudgetProgress     float64          `json:"budgetProgress" doc:"Percent of the budget spent, capped at 100"`
	AllTime            Stats            `json:"allTime"`
	Daily              []DailyPoint     `json:"daily"`
	Categories         []CategoryAmount `json:"categories"`
}

type DashboardOutput struct {
	Body DashboardBody
}

func (h *Handler) dashboard(ctx context.Context, input *DashboardInput) (*DashboardOutput, error) {
	period, err := analytics.ParsePeriod(input.Period)
	if err != nil {
		return nil, huma.NewError(http.StatusUnprocessableEntity, "invalid period", err)
	}
	days := input.Days
	if days <= 0 {
		days = 30
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("dashboardMs")
	}
	d := h.InsightsService.Dashboard()
	daily := h.InsightsService.DailySeries(days)
	categories := h.InsightsService.CategoryBreakdown(period)
	if stopTimer != nil {
		stopTimer()
	}

	return &DashboardOutput{Body: DashboardBody{
		MonthTotal:         money(d.MonthTotal),
		PreviousMonthTotal: money(d.PreviousMonthTotal),
		MonthChange:        d.MonthChange,
		MonthCount:         d.MonthCount,
		DailyAverage:       money(d.DailyAverage),
		Budget:             nullMoney(d.Budget),
		BudgetLeft:         nullMoney(d.BudgetLeft),
		BudgetProgress:     d.BudgetProgress,
		AllTime:            toStats(d.AllTime),
		Daily:              toDailyPoints(daily),
		Categories:         toCategoryAmounts(categories),
	}}, nil
}

// -- forecast and projection --

const notEnoughData = "Add more transactions to unlock this insight"

type ForecastBody struct {
	Forecast *Forecast `json:"forecast" doc:"Absent until there is enough history"`
	Message  string    `json:"message,omitempty"`
}

type ForecastOutput struct {
	Body ForecastBody
}

func (h *Handler) forecast(_ context.Context, _ *struct{}) (*ForecastOutput, error) {
	out := &ForecastOutput{Body: ForecastBody{Forecast: toForecast(h.InsightsService.Forecast())}}
	if out.Body.Forecast == nil {
		out.Body.Message = notEnoughData
	}
	return out, nil
}

type ProjectionInput struct {
	Category string `path:"category" doc:"Category identifier"`
}

type ProjectionBody struct {
	Projection *Projection `json:"projection" doc:"Absent until the category has enough history"`
	Message    string      `json:"message,omitempty"`
}

type ProjectionOutput struct {
	Body ProjectionBody
}

func (h *Handler) projection(_ context.Context, input *ProjectionInput) (*ProjectionOutput, error) {
	category, err := ledger.ParseCategory(input.Category)
	if err != nil {
		return nil, huma.NewError(http.StatusUnprocessableEntity, "invalid category", err)
	}
	out := &ProjectionOutput{Body: ProjectionBody{Projection: toProjection(h.InsightsService.ProjectCategory(category))}}
	if out.Body.Projection == nil {
		out.Body.Message = notEnoughData
	}
	return out, nil
}

// -- lists --

type RecommendationsBody struct {
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message,omitempty"`
}

type RecommendationsOutput struct {
	Body RecommendationsBody
}

func (h *Handler) recommendations(_ context.Context, _ *struct{}) (*RecommendationsOutput, error) {
	recs := h.InsightsService.RecommendBudgets()
	return &RecommendationsOutput{Body: RecommendationsBody{
		Recommendations: toRecommendations(recs.Recommendations),
		Message:         recs.Message,
	}}, nil
}

type AnomaliesOutput struct {
	Body struct {
		Anomalies []Anomaly `json:"anomalies"`
	}
}

func (h *Handler) anomalies(ctx context.Context, _ *struct{}) (*AnomaliesOutput, error) {
	out := &AnomaliesOutput{}
	out.Body.Anomalies = toAnomalies(h.InsightsService.DetectAnomalies())
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("anomalyCount", len(out.Body.Anomalies))
	}
	return out, nil
}

type InsightsOutput struct {
	Body struct {
		Insights []Insight `json:"insights"`
	}
}

func (h *Handler) insights(_ context.Context, _ *struct{}) (*InsightsOutput, error) {
	out := &InsightsOutput{}
	out.Body.Insights = toInsights(h.InsightsService.GenerateInsights())
	return out, nil
}

type AlertsOutput struct {
	Body struct {
		Alerts []Alert `json:"alerts"`
	}
}

func (h *Handler) alerts(_ context.Context, _ *struct{}) (*AlertsOutput, error) {
	out := &AlertsOutput{}
	out.Body.Alerts = toAlerts(h.InsightsService.CheckBudgetAlerts())
	return out, nil
}

// -- suggest --

type SuggestBody struct {
	Description string `json:"description" minLength:"1" doc:"Free-text expense description"`
}

type SuggestInput struct {
	Body SuggestBody
}

type SuggestionBody struct {
	Category     string  `json:"category"`
	CategoryName string  `json:"categoryName"`
	Confidence   float64 `json:"confidence" doc:"0 to 95"`
}

type SuggestOutput struct {
	Body SuggestionBody
}

func (h *Handler) suggest(_ context.Context, input *SuggestInput) (*SuggestOutput, error) {
	description := strings.TrimSpace(input.Body.Description)
	if description == "" {
		return nil, huma.NewError(http.StatusUnprocessableEntity, ledger.ErrEmptyDescription.Error())
	}
	s := h.InsightsService.SuggestCategory(description)
	return &SuggestOutput{Body: SuggestionBody{
		Category:     string(s.Category),
		CategoryName: s.Category.DisplayName(),
		Confidence:   s.Confidence,
	}}, nil
}
