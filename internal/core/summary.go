package core

import "time"

// Derived summary shapes. All of these are pure functions of the stored
// entities at query time and are never persisted.

// MonthlyBudgetSummary is the month-level balance view.
type MonthlyBudgetSummary struct {
	StartingBalance   Money `json:"startingBalanceCents"`
	EndBalance        Money `json:"endBalanceCents"`
	SpentAmount       Money `json:"spentAmountCents"`
	SavingsPercentage int   `json:"savingsPercentage"`
	TotalSaved        Money `json:"totalSavedCents"`
}

// CategoryBudget is one row of the expense-side planned-vs-actual breakdown.
type CategoryBudget struct {
	Category string `json:"category"`
	Planned  Money  `json:"plannedCents"`
	Actual   Money  `json:"actualCents"`
	Color    string `json:"color"`
}

// IncomeBudget is one row of the income-side breakdown.
type IncomeBudget struct {
	Source  string `json:"source"`
	Planned Money  `json:"plannedCents"`
	Actual  Money  `json:"actualCents"`
	Color   string `json:"color"`
}

// ExpenseBreakdown totals the expense side. Difference is planned minus
// actual: positive means under budget.
type ExpenseBreakdown struct {
	Categories   []CategoryBudget `json:"categories"`
	TotalPlanned Money            `json:"totalPlannedCents"`
	TotalActual  Money            `json:"totalActualCents"`
	Difference   Money            `json:"differenceCents"`
}

// IncomeBreakdown totals the income side. Difference is actual minus
// planned: positive means income exceeded the plan. The sign convention is
// intentionally inverted relative to expenses.
type IncomeBreakdown struct {
	Sources      []IncomeBudget `json:"sources"`
	TotalPlanned Money          `json:"totalPlannedCents"`
	TotalActual  Money          `json:"totalActualCents"`
	Difference   Money          `json:"differenceCents"`
}

// ExpensesIncomeSummary pairs the two sides for the anchor month.
type ExpensesIncomeSummary struct {
	Expenses ExpenseBreakdown `json:"expenses"`
	Income   IncomeBreakdown  `json:"income"`
}

// WeeklyCategoryExpense is one category's total inside a week.
type WeeklyCategoryExpense struct {
	Category string `json:"category"`
	Amount   Money  `json:"amountCents"`
	Color    string `json:"color"`
}

// WeeklyExpenseSummary is one calendar week of the anchor month.
type WeeklyExpenseSummary struct {
	WeekNumber                int                     `json:"weekNumber"`
	StartDate                 time.Time               `json:"startDate"`
	EndDate                   time.Time               `json:"endDate"`
	Categories                []WeeklyCategoryExpense `json:"categories"`
	TotalSpent                Money                   `json:"totalSpentCents"`
	PercentageOfMonthlyBudget float64                 `json:"percentageOfMonthlyBudget"`
}

// WeeklyExpensesData is the full weekly breakdown of the anchor month.
type WeeklyExpensesData struct {
	Weeks                  []WeeklyExpenseSummary `json:"weeks"`
	MonthlyPlannedExpenses Money                  `json:"monthlyPlannedExpensesCents"`
}
