package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/insights"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/settings"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/transfer"
	"github.com/carson-networks/expense-tracker/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Backend string
	Service *service.Service
}

// Handler builds the HTTP routes. The OpenAPI document is served at /openapi.json.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Expense Tracker API", "1.0.0"))

	status.NewHandler(r.Backend, r.Service.Transaction, r.Logger).Register(api)

	transaction.NewCreateTransactionHandler(r.Service.Transaction, r.Logger).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction, r.Logger).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction, r.Logger).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction, r.Logger).Register(api)
	transaction.NewClearTransactionsHandler(r.Service.Transaction, r.Logger).Register(api)

	settings.NewBudgetHandler(r.Service.Settings, r.Logger).Register(api)
	insights.NewHandler(r.Service.Insights, r.Logger).Register(api)
	transfer.NewHandler(r.Service.Exchange, r.Logger).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then shuts the server down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		r.Logger.Info("HttpServer.Serve.shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	return <-shutdownErr
}
