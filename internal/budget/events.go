// Package budget wires the four core components of the budgeting domain:
// the budget data service over the persistence store, the planned budget
// ledger, and the three summary calculators. All derived summaries are pure
// functions of the stored entities at query time; none of them is persisted.
package budget

import "context"

// Entities named in change events.
const (
	EntityBudgetData     = "budgetData"
	EntityTransactions   = "transactions"
	EntityExpenses       = "expenses"
	EntityPlannedBudgets = "plannedBudgets"
	EntityCategories     = "categories"
)

// EventPublisher receives a notification after every successful mutation.
// A nil publisher is tolerated everywhere; publish failures are logged and
// swallowed because the local write has already succeeded.
type EventPublisher interface {
	PublishChange(ctx context.Context, entity, op, id string) error
}
