package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MsVron/budget/internal/amqp"
	"github.com/MsVron/budget/internal/budget"
	"github.com/MsVron/budget/internal/category"
	"github.com/MsVron/budget/internal/config"
	apphttp "github.com/MsVron/budget/internal/http"
	applog "github.com/MsVron/budget/internal/log"
	"github.com/MsVron/budget/internal/store"
)

func main() {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var st store.Store
	switch cfg.DataBackend {
	case "sqlite":
		sqlite, err := store.NewSQLite(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to open SQLite store", applog.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer sqlite.Close()
		st = sqlite
		logger.Info("Initialized SQLite backend", "path", cfg.SQLiteDBPath)
	default:
		st = store.NewMemory()
		logger.Info("Initialized memory backend")
	}

	// Change events are optional; without a broker the API still works and
	// only the worker integration is lost.
	var events budget.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("AMQP publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	data := budget.NewDataService(st, events)
	if err := data.Load(ctx); err != nil {
		logger.Error("Failed to load budget data", applog.FieldError, err)
		os.Exit(1)
	}
	planned := budget.NewPlannedBudgetService(st, events)
	if err := planned.Load(ctx); err != nil {
		logger.Error("Failed to load planned budgets", applog.FieldError, err)
		os.Exit(1)
	}
	categories := category.NewService(st, events)
	if err := categories.Load(ctx); err != nil {
		logger.Error("Failed to load categories", applog.FieldError, err)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, data, planned, categories)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting budget server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
