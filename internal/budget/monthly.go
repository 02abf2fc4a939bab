package budget

import (
	"math"

	"github.com/MsVron/budget/internal/core"
)

// MonthlyBudgetService derives the month-level balance summary.
type MonthlyBudgetService struct {
	data *DataService
}

func NewMonthlyBudgetService(data *DataService) *MonthlyBudgetService {
	return &MonthlyBudgetService{data: data}
}

// CalculateMonthlySummary recomputes the anchor month's summary from
// scratch. Without an anchor it returns the all-zero summary; it never
// fails.
//
// The starting balance is the sum of the month's income transactions. The
// static savings/paycheck/bonus fields that older data may still carry are
// dead history and deliberately ignored.
func (s *MonthlyBudgetService) CalculateMonthlySummary() core.MonthlyBudgetSummary {
	bd, ok := s.data.BudgetData()
	if !ok {
		return core.MonthlyBudgetSummary{}
	}

	var startingBalance core.Money
	for _, t := range s.data.MonthlyTransactions(bd.Month, bd.Year, core.TypeIncome) {
		startingBalance = startingBalance.Add(t.Amount)
	}

	var spentAmount core.Money
	for _, e := range s.data.MonthlyExpenses(bd.Month, bd.Year) {
		spentAmount = spentAmount.Add(e.Amount)
	}
	for _, t := range s.data.MonthlyTransactions(bd.Month, bd.Year, core.TypeExpense) {
		spentAmount = spentAmount.Add(t.Amount)
	}

	endBalance := startingBalance.Sub(spentAmount)
	totalSaved := endBalance

	savingsPercentage := 0
	if startingBalance.Cents > 0 {
		savingsPercentage = int(math.Round(float64(totalSaved.Cents) / float64(startingBalance.Cents) * 100))
	}

	return core.MonthlyBudgetSummary{
		StartingBalance:   startingBalance,
		EndBalance:        endBalance,
		SpentAmount:       spentAmount,
		SavingsPercentage: savingsPercentage,
		TotalSaved:        totalSaved,
	}
}
