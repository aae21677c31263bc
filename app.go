package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/expense-tracker/api"
	"github.com/carson-networks/expense-tracker/internal/analytics"
	"github.com/carson-networks/expense-tracker/internal/categorizer"
	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/exchange"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "expense-tracker",
		Usage: "personal expense ledger with spending analytics",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "backend", Usage: "ledger store: sqlite or memory (overrides DATA_BACKEND)"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database file (overrides SQLITE_DB_PATH)"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serveCommand,
			},
			{
				Name:      "import",
				Usage:     "replace the ledger with a JSON export",
				ArgsUsage: "<file>",
				Action:    importCommand,
			},
			{
				Name:  "export",
				Usage: "write the ledger to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "json", Usage: "json, yaml or csv"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, - for stdout (default: expenses-export-<date>.<format>)"},
				},
				Action: exportCommand,
			},
			{
				Name:  "clear",
				Usage: "delete every transaction, keeping settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "confirm the deletion"},
				},
				Action: clearCommand,
			},
			{
				Name:   "insights",
				Usage:  "print this month's summary and spending insights",
				Action: insightsCommand,
			},
			{
				Name:      "suggest",
				Usage:     "suggest a category for a description",
				ArgsUsage: "<description>",
				Action:    suggestCommand,
			},
		},
	}
}

// application is everything a command needs, built from the configuration.
type application struct {
	env      *config.Config
	logger   *logrus.Logger
	storage  *storage.Storage
	operator *operator.OperatorDelegator
	service  *service.Service
}

func bootstrap(c *cli.Context) (*application, error) {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, err
	}
	if v := c.String("backend"); v != "" {
		env.DataBackend = strings.ToLower(v)
	}
	if v := c.String("db"); v != "" {
		env.SQLiteDBPath = v
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	logger := logging.SetupLogging(env.LogLevel)

	loc, err := env.Location()
	if err != nil {
		return nil, err
	}

	cat, err := loadCategorizer(env)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStorage(env)
	if err != nil {
		return nil, err
	}

	op := operator.NewOperatorDelegator(store)
	op.Start()

	svc := service.NewService(store, op, analytics.NewEngine(loc), cat, logger)
	if err := svc.Load(c.Context); err != nil {
		op.Stop()
		_ = store.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"backend":      store.Backend,
		"transactions": svc.Transaction.Count(),
	}).Info("expense-tracker.ready")

	return &application{env: env, logger: logger, storage: store, operator: op, service: svc}, nil
}

func loadCategorizer(env *config.Config) (*categorizer.Categorizer, error) {
	if env.CategoryRulesFile == "" {
		return categorizer.New(), nil
	}
	f, err := os.Open(env.CategoryRulesFile)
	if err != nil {
		return nil, fmt.Errorf("open category rules: %w", err)
	}
	defer f.Close()
	cat, err := categorizer.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load category rules %s: %w", env.CategoryRulesFile, err)
	}
	return cat, nil
}

func (a *application) Close() {
	a.operator.Stop()
	if err := a.storage.Close(); err != nil {
		a.logger.WithError(err).Warn("storage.Close")
	}
}

func serveCommand(c *cli.Context) error {
	app, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		httpRest := api.Rest{
			Logger:  app.logger,
			Port:    app.env.Port,
			Backend: app.storage.Backend,
			Service: app.service,
		}
		return httpRest.Serve(ctx)
	})
	return g.Wait()
}

func importCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: expense-tracker import <file>", 2)
	}
	app, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer app.Close()

	f, err := os.Open(c.Args().First())
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := app.service.Exchange.Import(c.Context, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "imported %d transactions, %d failed, %d removed, %d settings\n",
		result.Imported, result.Failed, result.Removed, result.Settings)
	return nil
}

func exportCommand(c *cli.Context) error {
	format, err := exchange.ParseFormat(c.String("format"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	app, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer app.Close()

	out := c.String("out")
	if out == "" {
		out = format.FileName(time.Now())
	}

	var w io.Writer = c.App.Writer
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := app.service.Exchange.Export(w, format); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(c.App.Writer, "exported %d transactions to %s\n", app.service.Transaction.Count(), out)
	}
	return nil
}

func clearCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		return cli.Exit("refusing to delete every transaction without --yes", 2)
	}
	app, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer app.Close()

	removed, err := app.service.Transaction.Clear(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "deleted %d transactions\n", removed)
	return nil
}

func insightsCommand(c *cli.Context) error {
	app, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer app.Close()

	writeInsights(c.App.Writer, app.service.Insights)
	return nil
}

func writeInsights(w io.Writer, svc *service.InsightsService) {
	d := svc.Dashboard()
	fmt.Fprintf(w, "This month: $%s over %d transactions (%+.1f%% vs last month)\n",
		humanize.CommafWithDigits(d.MonthTotal.InexactFloat64(), 2), d.MonthCount, d.MonthChange)
	if d.Budget.Valid {
		fmt.Fprintf(w, "Budget: $%s, %.0f%% used\n",
			humanize.CommafWithDigits(d.Budget.Decimal.InexactFloat64(), 2), d.BudgetProgress)
	}

	for _, alert := range svc.CheckBudgetAlerts() {
		fmt.Fprintf(w, "[%s] %s\n", alert.Severity, alert.Message)
	}
	for _, insight := range svc.GenerateInsights() {
		fmt.Fprintf(w, "[%s] %s: %s\n", insight.Priority, insight.Title, insight.Message)
	}
	for _, anomaly := range svc.DetectAnomalies() {
		fmt.Fprintf(w, "[%s] %s\n", anomaly.Severity, anomaly.Reason)
	}
	if f := svc.Forecast(); f != nil {
		fmt.Fprintf(w, "Next month forecast: $%s (%s, %.0f%% confidence)\n",
			humanize.CommafWithDigits(f.Predicted.InexactFloat64(), 2), f.Trend, f.Confidence)
	}
}

func suggestCommand(c *cli.Context) error {
	description := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if description == "" {
		return cli.Exit("usage: expense-tracker suggest <description>", 2)
	}
	// The ledger is not needed, so the store is never opened.
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}
	cat, err := loadCategorizer(env)
	if err != nil {
		return err
	}
	s := cat.Suggestion(description)
	fmt.Fprintf(c.App.Writer, "%s (%s), confidence %.0f%%\n", s.Category, s.Category.DisplayName(), s.Confidence)
	return nil
}
