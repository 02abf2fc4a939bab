// Package worker keeps derived budget summaries warm and mirrors the anchor
// month's ledger to Google Sheets. It runs out of process from the HTTP
// server and reacts to change messages published over AMQP.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MsVron/budget/internal/amqp"
	"github.com/MsVron/budget/internal/budget"
	"github.com/MsVron/budget/internal/core"
)

// TransactionExporter mirrors a batch of transactions to an external sheet.
type TransactionExporter interface {
	ExportTransactions(ctx context.Context, transactions []core.Transaction) (ref string, err error)
}

// CategoryDirectory is a reloadable category lookup. The worker reloads it
// alongside the other entities so its color resolution tracks category
// edits made through the HTTP server.
type CategoryDirectory interface {
	budget.Directory
	Load(ctx context.Context) error
}

// RecomputeWorker reloads the stored entities and recomputes all three
// derived summaries whenever a change message arrives. Summaries are pure
// functions of the store, so a full recompute is always safe; the worker
// exists to surface their numbers in logs and to drive the optional sheet
// export, not to cache them.
type RecomputeWorker struct {
	data       *budget.DataService
	planned    *budget.PlannedBudgetService
	categories CategoryDirectory
	monthly    *budget.MonthlyBudgetService
	expInc     *budget.ExpensesIncomeService
	weekly     *budget.WeeklyExpensesService
	exporter   TransactionExporter
}

func NewRecomputeWorker(data *budget.DataService, planned *budget.PlannedBudgetService, categories CategoryDirectory, exporter TransactionExporter) *RecomputeWorker {
	return &RecomputeWorker{
		data:       data,
		planned:    planned,
		categories: categories,
		monthly:    budget.NewMonthlyBudgetService(data),
		expInc:     budget.NewExpensesIncomeService(data, planned, categories),
		weekly:     budget.NewWeeklyExpensesService(data, planned, categories),
		exporter:   exporter,
	}
}

// HandleChangeMessage processes a single change message from AMQP.
func (w *RecomputeWorker) HandleChangeMessage(ctx context.Context, msg *amqp.ChangeMessage) error {
	slog.InfoContext(ctx, "Processing change message",
		"entity", msg.Entity,
		"op", msg.Op,
		"id", msg.ID)

	if err := w.Recompute(ctx); err != nil {
		return fmt.Errorf("recompute after %s %s: %w", msg.Entity, msg.Op, err)
	}

	// Only ledger changes move the sheet mirror.
	if msg.Entity == budget.EntityTransactions || msg.Entity == budget.EntityExpenses {
		if err := w.ExportAnchorMonth(ctx); err != nil {
			slog.ErrorContext(ctx, "Sheet export failed", "error", err)
			// The recompute succeeded; a flaky sheet must not requeue the message.
		}
	}
	return nil
}

// Recompute reloads every stored entity and recalculates the monthly,
// expenses-income and weekly summaries.
func (w *RecomputeWorker) Recompute(ctx context.Context) error {
	if err := w.data.Load(ctx); err != nil {
		return fmt.Errorf("reload budget data: %w", err)
	}
	if err := w.planned.Load(ctx); err != nil {
		return fmt.Errorf("reload planned budgets: %w", err)
	}
	if err := w.categories.Load(ctx); err != nil {
		return fmt.Errorf("reload categories: %w", err)
	}

	bd, ok := w.data.BudgetData()
	if !ok {
		slog.InfoContext(ctx, "No anchor month configured, summaries are empty")
		return nil
	}

	monthly := w.monthly.CalculateMonthlySummary()
	breakdown := w.expInc.GetExpensesIncomeSummary()
	weekly := w.weekly.GetWeeklyExpensesData()

	slog.InfoContext(ctx, "Recomputed summaries",
		"month", bd.Month,
		"year", bd.Year,
		"starting_balance_cents", monthly.StartingBalance.Cents,
		"spent_cents", monthly.SpentAmount.Cents,
		"saved_cents", monthly.TotalSaved.Cents,
		"savings_percentage", monthly.SavingsPercentage,
		"expense_categories", len(breakdown.Expenses.Categories),
		"income_sources", len(breakdown.Income.Sources),
		"weeks", len(weekly.Weeks))

	return nil
}

// ExportAnchorMonth mirrors the anchor month's transactions to the
// configured sheet. It is a no-op without an exporter or an anchor month.
func (w *RecomputeWorker) ExportAnchorMonth(ctx context.Context) error {
	if w.exporter == nil {
		return nil
	}
	bd, ok := w.data.BudgetData()
	if !ok {
		return nil
	}

	transactions := w.data.MonthlyTransactions(bd.Month, bd.Year, "")
	ref, err := w.exporter.ExportTransactions(ctx, transactions)
	if err != nil {
		return fmt.Errorf("export %s %d: %w", bd.Month, bd.Year, err)
	}
	if ref != "" {
		slog.InfoContext(ctx, "Exported transactions to sheet",
			"month", bd.Month,
			"year", bd.Year,
			"count", len(transactions),
			"sheets_ref", ref)
	}
	return nil
}

// StartupCheck loads the store and runs one recompute so a restarted worker
// reports fresh numbers before the first change message arrives.
func (w *RecomputeWorker) StartupCheck(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup recompute")
	if err := w.Recompute(ctx); err != nil {
		return fmt.Errorf("startup recompute: %w", err)
	}
	return nil
}
