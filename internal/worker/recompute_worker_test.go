package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MsVron/budget/internal/amqp"
	"github.com/MsVron/budget/internal/budget"
	"github.com/MsVron/budget/internal/category"
	"github.com/MsVron/budget/internal/core"
	"github.com/MsVron/budget/internal/store"
)

type fakeExporter struct {
	exported [][]core.Transaction
	err      error
}

func (f *fakeExporter) ExportTransactions(_ context.Context, txs []core.Transaction) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.exported = append(f.exported, txs)
	return "Transactions!A2:E3", nil
}

type emptyDirectory struct{}

func (emptyDirectory) ByName(string, core.TransactionType) (core.Category, bool) {
	return core.Category{}, false
}

func (emptyDirectory) Load(context.Context) error { return nil }

func seedStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()

	data := budget.NewDataService(st, nil)
	if err := data.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := data.SaveBudgetData(ctx, core.BudgetData{Month: "August", Year: 2025}); err != nil {
		t.Fatalf("save budget data: %v", err)
	}
	tx := core.Transaction{
		Type:     core.TypeExpense,
		Category: "Food",
		Amount:   core.Money{Cents: 2500},
		Date:     time.Date(2025, time.August, 5, 0, 0, 0, 0, time.UTC),
	}
	if _, err := data.AddTransaction(ctx, tx); err != nil {
		t.Fatalf("add transaction: %v", err)
	}
	return st
}

func newWorker(st store.Store, exporter TransactionExporter) *RecomputeWorker {
	return NewRecomputeWorker(
		budget.NewDataService(st, nil),
		budget.NewPlannedBudgetService(st, nil),
		emptyDirectory{},
		exporter,
	)
}

func TestRecomputePicksUpStoreChanges(t *testing.T) {
	ctx := context.Background()
	st := seedStore(t)
	w := newWorker(st, nil)

	if err := w.Recompute(ctx); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	// A second writer process adds a transaction behind the worker's back;
	// the next recompute must see it.
	other := budget.NewDataService(st, nil)
	if err := other.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	tx := core.Transaction{
		Type:     core.TypeExpense,
		Category: "Transport",
		Amount:   core.Money{Cents: 900},
		Date:     time.Date(2025, time.August, 6, 0, 0, 0, 0, time.UTC),
	}
	if _, err := other.AddTransaction(ctx, tx); err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	exporter := &fakeExporter{}
	w.exporter = exporter
	msg := &amqp.ChangeMessage{Entity: budget.EntityTransactions, Op: "create"}
	if err := w.HandleChangeMessage(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(exporter.exported) != 1 {
		t.Fatalf("want 1 export, got %d", len(exporter.exported))
	}
	if len(exporter.exported[0]) != 2 {
		t.Fatalf("export should include the new transaction, got %d rows", len(exporter.exported[0]))
	}
}

func TestRecomputeReloadsCategories(t *testing.T) {
	ctx := context.Background()
	st := seedStore(t)

	categories := category.NewService(st, nil)
	if err := categories.Load(ctx); err != nil {
		t.Fatalf("load categories: %v", err)
	}
	w := NewRecomputeWorker(
		budget.NewDataService(st, nil),
		budget.NewPlannedBudgetService(st, nil),
		categories,
		nil,
	)
	if err := w.Recompute(ctx); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := expenseColor(t, w, "Food"); got != budget.FallbackColor {
		t.Fatalf("before the category exists Food should fall back, got %q", got)
	}

	// The HTTP server adds the category through its own service instance;
	// the next recompute must resolve colors against it.
	other := category.NewService(st, nil)
	if err := other.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := other.Add(ctx, "Food", core.TypeExpense, "#FF3636"); err != nil {
		t.Fatalf("add category: %v", err)
	}

	if err := w.Recompute(ctx); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := expenseColor(t, w, "Food"); got != "#FF3636" {
		t.Fatalf("recompute should pick up the new category color, got %q", got)
	}
}

func expenseColor(t *testing.T, w *RecomputeWorker, name string) string {
	t.Helper()
	for _, row := range w.expInc.GetExpensesIncomeSummary().Expenses.Categories {
		if row.Category == name {
			return row.Color
		}
	}
	t.Fatalf("no expense row for %q", name)
	return ""
}

func TestRecomputeWithoutAnchorIsQuiet(t *testing.T) {
	ctx := context.Background()
	w := newWorker(store.NewMemory(), nil)
	if err := w.Recompute(ctx); err != nil {
		t.Fatalf("recompute on empty store: %v", err)
	}
}

func TestHandleChangeMessageSwallowsExportErrors(t *testing.T) {
	ctx := context.Background()
	st := seedStore(t)
	w := newWorker(st, &fakeExporter{err: errors.New("quota exceeded")})

	msg := &amqp.ChangeMessage{Entity: budget.EntityExpenses, Op: "create"}
	if err := w.HandleChangeMessage(ctx, msg); err != nil {
		t.Fatalf("export failure must not bubble up: %v", err)
	}
}

func TestNonLedgerChangesSkipExport(t *testing.T) {
	ctx := context.Background()
	st := seedStore(t)
	exporter := &fakeExporter{}
	w := newWorker(st, exporter)

	msg := &amqp.ChangeMessage{Entity: budget.EntityPlannedBudgets, Op: "update"}
	if err := w.HandleChangeMessage(ctx, msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(exporter.exported) != 0 {
		t.Fatalf("planned budget changes should not export, got %d", len(exporter.exported))
	}
}

func TestExportAnchorMonthWithoutExporter(t *testing.T) {
	ctx := context.Background()
	w := newWorker(seedStore(t), nil)
	if err := w.Recompute(ctx); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if err := w.ExportAnchorMonth(ctx); err != nil {
		t.Fatalf("nil exporter must be a no-op: %v", err)
	}
}
