// Package store defines the key/value persistence port used by the budget
// services, plus its in-memory and SQLite adapters. Each key holds the full
// JSON-encoded entity list (or single object for budget data); writes always
// overwrite the whole value.
package store

import "context"

// Keys under which entity collections are persisted.
const (
	KeyBudgetData     = "budgetData"
	KeyExpenses       = "expenses"
	KeyTransactions   = "transactions"
	KeyPlannedBudgets = "plannedBudgets"
	KeyCategories     = "budget_categories"
)

// Store is the outbound persistence port.
type Store interface {
	// Get returns the value at key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value at key.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
