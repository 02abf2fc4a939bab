package budget

import (
	"sort"

	"github.com/MsVron/budget/internal/core"
)

// WeeklyExpensesService partitions the anchor month's expense entries into
// calendar weeks.
type WeeklyExpensesService struct {
	data       *DataService
	planned    *PlannedBudgetService
	categories Directory
}

func NewWeeklyExpensesService(data *DataService, planned *PlannedBudgetService, categories Directory) *WeeklyExpensesService {
	return &WeeklyExpensesService{data: data, planned: planned, categories: categories}
}

// GetWeeklyExpensesData recomputes the weekly breakdown for the anchor
// month. Expense transactions and legacy expenses are bucketed together by
// core.WeekOfMonth; every entry lands in exactly one week, so the week
// totals always sum to the month total. Weeks come back sorted ascending.
func (s *WeeklyExpensesService) GetWeeklyExpensesData() core.WeeklyExpensesData {
	bd, ok := s.data.BudgetData()
	if !ok {
		return core.WeeklyExpensesData{}
	}

	var monthlyPlanned core.Money
	for _, pb := range s.planned.GetPlannedBudgets(core.TypeExpense, bd.Month, bd.Year) {
		monthlyPlanned = monthlyPlanned.Add(pb.PlannedAmount)
	}

	type weekBucket struct {
		totals map[string]*actualEntry
		order  []string
	}
	buckets := make(map[int]*weekBucket)

	add := func(week int, category, color string, amount core.Money) {
		b := buckets[week]
		if b == nil {
			b = &weekBucket{totals: make(map[string]*actualEntry)}
			buckets[week] = b
		}
		entry, seen := b.totals[category]
		if !seen {
			entry = &actualEntry{color: color}
			b.totals[category] = entry
			b.order = append(b.order, category)
		}
		entry.amount = entry.amount.Add(amount)
	}

	for _, t := range s.data.MonthlyTransactions(bd.Month, bd.Year, core.TypeExpense) {
		add(core.WeekOfMonth(t.Date), t.Category, t.CategoryColor, t.Amount)
	}
	for _, e := range s.data.MonthlyExpenses(bd.Month, bd.Year) {
		add(core.WeekOfMonth(e.Date), e.Category, "", e.Amount)
	}

	monthIndex, _ := core.MonthIndex(bd.Month)

	weekNumbers := make([]int, 0, len(buckets))
	for n := range buckets {
		weekNumbers = append(weekNumbers, n)
	}
	sort.Ints(weekNumbers)

	data := core.WeeklyExpensesData{MonthlyPlannedExpenses: monthlyPlanned}
	for _, n := range weekNumbers {
		b := buckets[n]
		week := core.WeeklyExpenseSummary{WeekNumber: n}
		week.StartDate, week.EndDate = core.WeekBounds(n, monthIndex, bd.Year)

		for _, name := range b.order {
			entry := b.totals[name]
			week.Categories = append(week.Categories, core.WeeklyCategoryExpense{
				Category: name,
				Amount:   entry.amount,
				Color:    resolveColor(s.categories, name, core.TypeExpense, entry.color),
			})
			week.TotalSpent = week.TotalSpent.Add(entry.amount)
		}
		if monthlyPlanned.Cents > 0 {
			week.PercentageOfMonthlyBudget = float64(week.TotalSpent.Cents) / float64(monthlyPlanned.Cents) * 100
		}
		data.Weeks = append(data.Weeks, week)
	}
	return data
}
