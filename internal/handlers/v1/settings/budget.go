package settings

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

// BudgetBody carries the monthly budget. MonthlyBudget is absent when no budget
// has been saved.
type BudgetBody struct {
	MonthlyBudget *string `json:"monthlyBudget,omitempty" doc:"Monthly budget as a decimal string"`
}

// BudgetOutput is the Huma output for both budget endpoints.
type BudgetOutput struct {
	Body BudgetBody
}

// SaveBudgetBody is the request body for saving the budget.
type SaveBudgetBody struct {
	MonthlyBudget string `json:"monthlyBudget" doc:"Non-negative decimal amount"`
}

// SaveBudgetInput is the Huma input for saving the budget.
type SaveBudgetInput struct {
	Body SaveBudgetBody
}

type budgetService interface {
	MonthlyBudget() (decimal.Decimal, bool)
	SaveMonthlyBudget(ctx context.Context, budget decimal.Decimal) error
}

// BudgetHandler handles GET and PUT /v1/settings/budget.
type BudgetHandler struct {
	SettingsService budgetService
	Logger          *logrus.Logger
}

func NewBudgetHandler(svc budgetService, log *logrus.Logger) *BudgetHandler {
	return &BudgetHandler{SettingsService: svc, Logger: log}
}

func (h *BudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        "/v1/settings/budget",
		Summary:     "Get monthly budget",
		Tags:        []string{"Settings"},
	}, logging.LoggingWrapper("GetBudget", h.Logger, h.get))

	huma.Register(api, huma.Operation{
		OperationID: "save-budget",
		Method:      http.MethodPut,
		Path:        "/v1/settings/budget",
		Summary:     "Save monthly budget",
		Tags:        []string{"Settings"},
	}, logging.LoggingWrapper("SaveBudget", h.Logger, h.save))
}

func (h *BudgetHandler) get(_ context.Context, _ *struct{}) (*BudgetOutput, error) {
	return h.current(), nil
}

func (h *BudgetHandler) current() *BudgetOutput {
	out := &BudgetOutput{}
	if budget, ok := h.SettingsService.MonthlyBudget(); ok {
		value := budget.StringFixed(2)
		out.Body.MonthlyBudget = &value
	}
	return out
}

func (h *BudgetHandler) save(ctx context.Context, input *SaveBudgetInput) (*BudgetOutput, error) {
	budget, err := decimal.NewFromString(strings.TrimSpace(input.Body.MonthlyBudget))
	if err != nil {
		return nil, huma.NewError(http.StatusUnprocessableEntity, "monthlyBudget must be a number", err)
	}

	if err := h.SettingsService.SaveMonthlyBudget(ctx, budget); err != nil {
		if errors.Is(err, service.ErrInvalidBudget) {
			return nil, huma.NewError(http.StatusUnprocessableEntity, err.Error(), err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to save budget", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("monthlyBudget", budget.String())
	}
	return h.current(), nil
}
