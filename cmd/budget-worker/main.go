package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MsVron/budget/internal/amqp"
	"github.com/MsVron/budget/internal/budget"
	"github.com/MsVron/budget/internal/category"
	"github.com/MsVron/budget/internal/config"
	"github.com/MsVron/budget/internal/export/googlesheets"
	applog "github.com/MsVron/budget/internal/log"
	"github.com/MsVron/budget/internal/store"
	"github.com/MsVron/budget/internal/worker"
)

func main() {
	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentWorker)
	applog.SetDefault(logger)

	logger.Info("Starting budget-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("budget-worker requires AMQP_URL")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The worker reads the same store the server writes. SQLite is the
	// normal deployment; a memory backend would give the worker a private
	// empty store, so it is rejected here.
	if cfg.DataBackend != "sqlite" {
		logger.Error("budget-worker requires DATA_BACKEND=sqlite", "backend", cfg.DataBackend)
		os.Exit(1)
	}
	st, err := store.NewSQLite(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to open SQLite store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer st.Close()

	var exporter worker.TransactionExporter
	if cfg.SpreadsheetID != "" {
		client, err := googlesheets.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		exporter = client
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.SpreadsheetID, "sheet", cfg.SheetName)
	} else {
		logger.Info("Google Sheets export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	data := budget.NewDataService(st, nil)
	planned := budget.NewPlannedBudgetService(st, nil)
	categories := category.NewService(st, nil)
	if err := categories.Load(ctx); err != nil {
		logger.Error("Failed to load categories", applog.FieldError, err)
		os.Exit(1)
	}

	w := worker.NewRecomputeWorker(data, planned, categories, exporter)
	if err := w.StartupCheck(ctx); err != nil {
		logger.Error("Startup recompute failed", applog.FieldError, err)
		// Keep running; the next change message retries.
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeChanges(gctx, func(msg *amqp.ChangeMessage) error {
			return w.HandleChangeMessage(gctx, msg)
		})
	})

	// Periodic recompute recovers from lost change messages.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.RecomputeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-ticker.C:
				if err := w.Recompute(gctx); err != nil {
					logger.Error("Periodic recompute failed", applog.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
