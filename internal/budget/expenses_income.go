package budget

import "github.com/MsVron/budget/internal/core"

// ExpensesIncomeService derives the per-category planned-vs-actual
// breakdown for both sides of the budget.
type ExpensesIncomeService struct {
	data       *DataService
	planned    *PlannedBudgetService
	categories Directory
}

func NewExpensesIncomeService(data *DataService, planned *PlannedBudgetService, categories Directory) *ExpensesIncomeService {
	return &ExpensesIncomeService{data: data, planned: planned, categories: categories}
}

// actualEntry merges transactions and legacy expenses into one shape at the
// aggregation boundary. Amounts from both origins are additive for the same
// category; historical double counting is a fixture concern for callers,
// not something the aggregator deduplicates.
type actualEntry struct {
	amount core.Money
	color  string
}

// GetExpensesIncomeSummary recomputes the breakdown for the anchor month.
// A category appears when it has spend, income, or a nonzero plan for the
// period; each side totals independently. The expense difference is planned
// minus actual (positive = under budget), the income difference is actual
// minus planned (positive = earned more than planned).
func (s *ExpensesIncomeService) GetExpensesIncomeSummary() core.ExpensesIncomeSummary {
	bd, ok := s.data.BudgetData()
	if !ok {
		return core.ExpensesIncomeSummary{}
	}

	summary := core.ExpensesIncomeSummary{
		Expenses: s.expenseSide(bd),
		Income:   s.incomeSide(bd),
	}
	return summary
}

func (s *ExpensesIncomeService) expenseSide(bd core.BudgetData) core.ExpenseBreakdown {
	actuals := make(map[string]*actualEntry)
	var order []string

	for _, t := range s.data.MonthlyTransactions(bd.Month, bd.Year, core.TypeExpense) {
		entry, seen := actuals[t.Category]
		if !seen {
			entry = &actualEntry{color: t.CategoryColor}
			actuals[t.Category] = entry
			order = append(order, t.Category)
		}
		entry.amount = entry.amount.Add(t.Amount)
	}
	for _, e := range s.data.MonthlyExpenses(bd.Month, bd.Year) {
		entry, seen := actuals[e.Category]
		if !seen {
			entry = &actualEntry{}
			actuals[e.Category] = entry
			order = append(order, e.Category)
		}
		entry.amount = entry.amount.Add(e.Amount)
	}

	// Categories with only a plan and no spend still appear.
	for _, pb := range s.planned.GetPlannedBudgets(core.TypeExpense, bd.Month, bd.Year) {
		if pb.PlannedAmount.Cents == 0 {
			continue
		}
		if _, seen := actuals[pb.Category]; !seen {
			actuals[pb.Category] = &actualEntry{}
			order = append(order, pb.Category)
		}
	}

	breakdown := core.ExpenseBreakdown{}
	for _, name := range order {
		entry := actuals[name]
		row := core.CategoryBudget{
			Category: name,
			Planned:  s.planned.GetPlannedBudget(name, core.TypeExpense, bd.Month, bd.Year),
			Actual:   entry.amount,
			Color:    resolveColor(s.categories, name, core.TypeExpense, entry.color),
		}
		breakdown.Categories = append(breakdown.Categories, row)
		breakdown.TotalPlanned = breakdown.TotalPlanned.Add(row.Planned)
		breakdown.TotalActual = breakdown.TotalActual.Add(row.Actual)
	}
	breakdown.Difference = breakdown.TotalPlanned.Sub(breakdown.TotalActual)
	return breakdown
}

func (s *ExpensesIncomeService) incomeSide(bd core.BudgetData) core.IncomeBreakdown {
	actuals := make(map[string]*actualEntry)
	var order []string

	for _, t := range s.data.MonthlyTransactions(bd.Month, bd.Year, core.TypeIncome) {
		entry, seen := actuals[t.Category]
		if !seen {
			entry = &actualEntry{color: t.CategoryColor}
			actuals[t.Category] = entry
			order = append(order, t.Category)
		}
		entry.amount = entry.amount.Add(t.Amount)
	}

	for _, pb := range s.planned.GetPlannedBudgets(core.TypeIncome, bd.Month, bd.Year) {
		if pb.PlannedAmount.Cents == 0 {
			continue
		}
		if _, seen := actuals[pb.Category]; !seen {
			actuals[pb.Category] = &actualEntry{}
			order = append(order, pb.Category)
		}
	}

	breakdown := core.IncomeBreakdown{}
	for _, name := range order {
		entry := actuals[name]
		row := core.IncomeBudget{
			Source:  name,
			Planned: s.planned.GetPlannedBudget(name, core.TypeIncome, bd.Month, bd.Year),
			Actual:  entry.amount,
			Color:   resolveColor(s.categories, name, core.TypeIncome, entry.color),
		}
		breakdown.Sources = append(breakdown.Sources, row)
		breakdown.TotalPlanned = breakdown.TotalPlanned.Add(row.Planned)
		breakdown.TotalActual = breakdown.TotalActual.Add(row.Actual)
	}
	// Inverted on purpose: more income than planned is good news.
	breakdown.Difference = breakdown.TotalActual.Sub(breakdown.TotalPlanned)
	return breakdown
}
