package status

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/logging"
)

// StatusBody is the response body for the health check.
type StatusBody struct {
	Status       string `json:"status" example:"ok" doc:"Always ok while the server is up"`
	Backend      string `json:"backend" example:"sqlite" doc:"Ledger store backend"`
	Transactions int    `json:"transactions" doc:"Number of transactions in the ledger"`
}

// StatusOutput is the Huma output for the health check.
type StatusOutput struct {
	Body StatusBody
}

type ledgerCounter interface {
	Count() int
}

// Handler handles GET /status.
type Handler struct {
	Backend string
	Ledger  ledgerCounter
	Logger  *logrus.Logger
}

func NewHandler(backend string, ledger ledgerCounter, log *logrus.Logger) *Handler {
	return &Handler{Backend: backend, Ledger: ledger, Logger: log}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/status",
		Summary:     "Health check",
		Tags:        []string{"Status"},
	}, logging.LoggingWrapper("Status", h.Logger, h.handle))
}

func (h *Handler) handle(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	return &StatusOutput{Body: StatusBody{
		Status:       "ok",
		Backend:      h.Backend,
		Transactions: h.Ledger.Count(),
	}}, nil
}
