package transfer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/exchange"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/service"
)

type exchangeService interface {
	Export(w io.Writer, format exchange.Format) error
	Import(ctx context.Context, r io.Reader) (service.ImportResult, error)
}

// Handler handles GET /v1/export and POST /v1/import.
type Handler struct {
	ExchangeService exchangeService
	Logger          *logrus.Logger
	Now             func() time.Time
}

func NewHandler(svc exchangeService, log *logrus.Logger) *Handler {
	return &Handler{ExchangeService: svc, Logger: log, Now: time.Now}
}

func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "export-ledger",
		Method:      http.MethodGet,
		Path:        "/v1/export",
		Summary:     "Export the ledger",
		Description: "Downloads every transaction and setting. CSV carries the transactions only.",
		Tags:        []string{"Exchange"},
	}, logging.LoggingWrapper("Export", h.Logger, h.export))

	huma.Register(api, huma.Operation{
		OperationID: "import-ledger",
		Method:      http.MethodPost,
		Path:        "/v1/import",
		Summary:     "Import a ledger export",
		Description: "Replaces every transaction with the ones in a JSON export and saves its settings. " +
			"A document that cannot be parsed is rejected before anything is removed.",
		Tags: []string{"Exchange"},
	}, logging.LoggingWrapper("Import", h.Logger, h.importLedger))
}

type ExportInput struct {
	Format string `query:"format" enum:"json,yaml,yml,csv" default:"json" doc:"Document format"`
}

type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func (h *Handler) export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	format, err := exchange.ParseFormat(input.Format)
	if err != nil {
		return nil, huma.NewError(http.StatusUnprocessableEntity, "invalid format", err)
	}

	var buf bytes.Buffer
	if err := h.ExchangeService.Export(&buf, format); err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to export ledger", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("format", string(format))
		logData.AddData("bytes", buf.Len())
	}
	return &ExportOutput{
		ContentType:        format.ContentType(),
		ContentDisposition: `attachment; filename="` + format.FileName(h.Now()) + `"`,
		Body:               buf.Bytes(),
	}, nil
}

type ImportInput struct {
	RawBody []byte
}

type ImportBody struct {
	Imported int   `json:"imported" doc:"Transactions stored"`
	Failed   int   `json:"failed" doc:"Transactions skipped because they were invalid or rejected by the store"`
	Removed  int64 `json:"removed" doc:"Transactions removed before the import"`
	Settings int   `json:"settings" doc:"Settings saved"`
}

type ImportOutput struct {
	Body ImportBody
}

func (h *Handler) importLedger(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("importMs")
	}
	result, err := h.ExchangeService.Import(ctx, bytes.NewReader(input.RawBody))
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		if errors.Is(err, exchange.ErrInvalidDocument) {
			return nil, huma.NewError(http.StatusBadRequest, "invalid import file", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to import ledger", err)
	}

	if logData != nil {
		logData.AddData("imported", result.Imported)
		logData.AddData("failed", result.Failed)
	}
	return &ImportOutput{Body: ImportBody{
		Imported: result.Imported,
		Failed:   result.Failed,
		Removed:  result.Removed,
		Settings: result.Settings,
	}}, nil
}
