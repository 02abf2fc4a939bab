package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "t1",
		Type:     TypeExpense,
		Category: "Food",
		Amount:   Money{Cents: 1500},
		Date:     time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{ID: "a", Type: "transfer", Category: "Food", Amount: Money{Cents: 1}, Date: good.Date},
		{ID: "a", Type: TypeExpense, Category: "", Amount: Money{Cents: 1}, Date: good.Date},
		{ID: "a", Type: TypeExpense, Category: "Food", Amount: Money{Cents: 0}, Date: good.Date},
		{ID: "a", Type: TypeExpense, Category: "Food", Amount: Money{Cents: -5}, Date: good.Date},
		{ID: "a", Type: TypeExpense, Category: "Food", Amount: Money{Cents: 1}},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestLegacyExpenseValidate(t *testing.T) {
	good := LegacyExpense{
		ID:       "1",
		Category: "Hygiene",
		Amount:   Money{Cents: 0}, // zero amounts exist in old data
		Date:     time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (LegacyExpense{ID: "1", Category: "", Amount: Money{Cents: 1}, Date: good.Date}).Validate(); err == nil {
		t.Fatalf("expected error for empty category")
	}
}

func TestPlannedBudgetValidate(t *testing.T) {
	cases := []struct {
		pb PlannedBudget
		ok bool
	}{
		{PlannedBudget{ID: "1", Category: "Food", Type: TypeExpense, PlannedAmount: Money{Cents: 5000}, Month: "August", Year: 2025}, true},
		{PlannedBudget{ID: "1", Category: "Food", Type: TypeExpense, PlannedAmount: Money{}, Month: "August", Year: 2025}, true},
		{PlannedBudget{ID: "1", Category: "Food", Type: TypeExpense, PlannedAmount: Money{Cents: -1}, Month: "August", Year: 2025}, false},
		{PlannedBudget{ID: "1", Category: "Food", Type: TypeExpense, PlannedAmount: Money{Cents: 1}, Month: "august", Year: 2025}, false},
		{PlannedBudget{ID: "1", Category: "Food", Type: "other", PlannedAmount: Money{Cents: 1}, Month: "August", Year: 2025}, false},
		{PlannedBudget{ID: "1", Category: "Food", Type: TypeExpense, PlannedAmount: Money{Cents: 1}, Month: "August", Year: 25}, false},
	}
	for i, tc := range cases {
		err := tc.pb.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategorySameName(t *testing.T) {
	c := Category{Name: "Food & Dining", Type: TypeExpense, Color: "#FF3636"}
	if !c.SameName("food & dining", TypeExpense) {
		t.Fatalf("lookup should be case-insensitive")
	}
	if c.SameName("Food & Dining", TypeIncome) {
		t.Fatalf("lookup must match the type")
	}
}

func TestInMonth(t *testing.T) {
	d := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	if !InMonth(d, "August", 2025) {
		t.Fatalf("expected date in August 2025")
	}
	if InMonth(d, "August", 2024) {
		t.Fatalf("year must match")
	}
	if InMonth(d, "September", 2025) {
		t.Fatalf("month must match")
	}
}

func TestMonthIndex(t *testing.T) {
	if m, ok := MonthIndex("January"); !ok || m != time.January {
		t.Fatalf("January should resolve to time.January, got %v %v", m, ok)
	}
	if m, ok := MonthIndex("December"); !ok || m != time.December {
		t.Fatalf("December should resolve to time.December, got %v %v", m, ok)
	}
	for _, name := range []string{"", "august", "Aug", "Smarch"} {
		if _, ok := MonthIndex(name); ok {
			t.Fatalf("%q should not resolve", name)
		}
	}
}

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		month time.Month
		year  int
		day   int
	}{
		{time.August, 2025, 31},
		{time.February, 2025, 28},
		{time.February, 2024, 29},
		{time.April, 2025, 30},
	}
	for _, tc := range cases {
		got := LastDayOfMonth(tc.month, tc.year)
		if got.Day() != tc.day || got.Month() != tc.month {
			t.Fatalf("%v %d: got %v", tc.month, tc.year, got)
		}
	}
}
