package budget

import (
	"context"
	"testing"

	"github.com/MsVron/budget/internal/core"
	"github.com/MsVron/budget/internal/store"
)

func TestMonthlySummaryWithoutAnchorIsZero(t *testing.T) {
	data := newLoadedDataService(t, store.NewMemory(), nil)
	svc := NewMonthlyBudgetService(data)

	got := svc.CalculateMonthlySummary()
	if got != (core.MonthlyBudgetSummary{}) {
		t.Fatalf("expected all-zero summary, got %+v", got)
	}
}

func TestMonthlySummaryBalances(t *testing.T) {
	ctx := context.Background()
	data := newLoadedDataService(t, store.NewMemory(), nil)
	_ = data.SaveBudgetData(ctx, core.BudgetData{Month: "August", Year: 2025})

	// Income 1000.00, expenses totalling 300.00.
	_, _ = data.AddTransaction(ctx, incomeTx("", "Salary", 100000, date(2025, 8, 1)))
	_, _ = data.AddTransaction(ctx, expenseTx("", "Food", "", 20000, date(2025, 8, 5)))
	_, _ = data.AddTransaction(ctx, expenseTx("", "Transport", "", 10000, date(2025, 8, 10)))

	got := NewMonthlyBudgetService(data).CalculateMonthlySummary()
	if got.StartingBalance.Cents != 100000 {
		t.Fatalf("startingBalance: got %d", got.StartingBalance.Cents)
	}
	if got.SpentAmount.Cents != 30000 {
		t.Fatalf("spentAmount: got %d", got.SpentAmount.Cents)
	}
	if got.EndBalance.Cents != 70000 {
		t.Fatalf("endBalance: got %d", got.EndBalance.Cents)
	}
	if got.TotalSaved.Cents != 70000 {
		t.Fatalf("totalSaved should equal endBalance, got %d", got.TotalSaved.Cents)
	}
	if got.SavingsPercentage != 70 {
		t.Fatalf("savingsPercentage: got %d", got.SavingsPercentage)
	}
}

func TestMonthlySummaryCombinesLegacyAndTransactions(t *testing.T) {
	ctx := context.Background()
	data := newLoadedDataService(t, store.NewMemory(), nil)
	_ = data.SaveBudgetData(ctx, core.BudgetData{Month: "August", Year: 2025})

	_, _ = data.AddTransaction(ctx, incomeTx("", "Salary", 50000, date(2025, 8, 1)))
	_, _ = data.AddTransaction(ctx, expenseTx("", "Food", "", 10000, date(2025, 8, 5)))
	_, _ = data.AddExpense(ctx, core.LegacyExpense{Category: "Phone", Amount: core.Money{Cents: 4900}, Date: date(2025, 8, 20)})

	got := NewMonthlyBudgetService(data).CalculateMonthlySummary()
	if got.SpentAmount.Cents != 14900 {
		t.Fatalf("legacy and transaction spend should add up, got %d", got.SpentAmount.Cents)
	}
}

func TestMonthlySummaryIgnoresOtherMonths(t *testing.T) {
	ctx := context.Background()
	data := newLoadedDataService(t, store.NewMemory(), nil)
	_ = data.SaveBudgetData(ctx, core.BudgetData{Month: "August", Year: 2025})

	_, _ = data.AddTransaction(ctx, incomeTx("", "Salary", 50000, date(2025, 8, 1)))
	_, _ = data.AddTransaction(ctx, incomeTx("", "Salary", 50000, date(2025, 7, 1)))
	_, _ = data.AddTransaction(ctx, expenseTx("", "Food", "", 10000, date(2025, 9, 5)))

	got := NewMonthlyBudgetService(data).CalculateMonthlySummary()
	if got.StartingBalance.Cents != 50000 {
		t.Fatalf("only anchor-month income counts, got %d", got.StartingBalance.Cents)
	}
	if got.SpentAmount.Cents != 0 {
		t.Fatalf("only anchor-month spend counts, got %d", got.SpentAmount.Cents)
	}
}

func TestMonthlySummaryIgnoresLegacyStaticFields(t *testing.T) {
	ctx := context.Background()
	data := newLoadedDataService(t, store.NewMemory(), nil)
	// Old data may still carry savings/paycheck/bonus; they are dead
	// history and must not leak into the balance.
	_ = data.SaveBudgetData(ctx, core.BudgetData{
		Month: "August", Year: 2025,
		Savings: core.Money{Cents: 91600}, Paycheck: core.Money{Cents: 120000}, Bonus: core.Money{Cents: 30000},
	})

	got := NewMonthlyBudgetService(data).CalculateMonthlySummary()
	if got.StartingBalance.Cents != 0 {
		t.Fatalf("static fields must be ignored, got %d", got.StartingBalance.Cents)
	}
}

func TestMonthlySummaryZeroIncomePercentage(t *testing.T) {
	ctx := context.Background()
	data := newLoadedDataService(t, store.NewMemory(), nil)
	_ = data.SaveBudgetData(ctx, core.BudgetData{Month: "August", Year: 2025})
	_, _ = data.AddTransaction(ctx, expenseTx("", "Food", "", 10000, date(2025, 8, 5)))

	got := NewMonthlyBudgetService(data).CalculateMonthlySummary()
	if got.SavingsPercentage != 0 {
		t.Fatalf("no income means 0 percent, got %d", got.SavingsPercentage)
	}
	if got.EndBalance.Cents != -10000 {
		t.Fatalf("endBalance may go negative, got %d", got.EndBalance.Cents)
	}
}

func TestMonthlySummaryPercentageRounding(t *testing.T) {
	ctx := context.Background()
	data := newLoadedDataService(t, store.NewMemory(), nil)
	_ = data.SaveBudgetData(ctx, core.BudgetData{Month: "August", Year: 2025})

	// 1000.00 income, 333.33 spent: saved 666.67 -> 66.667% -> 67.
	_, _ = data.AddTransaction(ctx, incomeTx("", "Salary", 100000, date(2025, 8, 1)))
	_, _ = data.AddTransaction(ctx, expenseTx("", "Food", "", 33333, date(2025, 8, 5)))

	got := NewMonthlyBudgetService(data).CalculateMonthlySummary()
	if got.SavingsPercentage != 67 {
		t.Fatalf("expected 67, got %d", got.SavingsPercentage)
	}
}
