package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/MsVron/budget/internal/core"
	"github.com/MsVron/budget/internal/store"
)

// PlannedBudgetService is the ledger of planned amounts, keyed by
// (category, type, month, year). Last writer wins on the composite key;
// the full list is persisted after every mutation.
type PlannedBudgetService struct {
	mu      sync.Mutex
	store   store.Store
	events  EventPublisher
	budgets []core.PlannedBudget
}

func NewPlannedBudgetService(st store.Store, events EventPublisher) *PlannedBudgetService {
	return &PlannedBudgetService{store: st, events: events}
}

// Load reads the stored ledger into the cache.
func (s *PlannedBudgetService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := loadList(ctx, s.store, store.KeyPlannedBudgets, &s.budgets); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Planned budgets loaded", "count", len(s.budgets))
	return nil
}

// SetPlannedBudget upserts the entry for (category, type, month, year):
// an existing entry gets its amount replaced, otherwise a new record with a
// fresh id is appended.
func (s *PlannedBudgetService) SetPlannedBudget(ctx context.Context, category string, t core.TransactionType, amount core.Money, month string, year int) error {
	entry := core.PlannedBudget{
		ID:            uuid.NewString(),
		Category:      category,
		Type:          t,
		PlannedAmount: amount,
		Month:         month,
		Year:          year,
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	next := append([]core.PlannedBudget(nil), s.budgets...)
	op := "create"
	found := false
	for i, b := range next {
		if b.Category == category && b.Type == t && b.Month == month && b.Year == year {
			next[i].PlannedAmount = amount
			entry = next[i]
			op = "update"
			found = true
			break
		}
	}
	if !found {
		next = append(next, entry)
	}

	if err := s.write(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.publish(ctx, op, entry.ID)
	return nil
}

// GetPlannedBudget returns the planned amount for the composite key, or
// zero when no entry exists. Missing entries are never an error.
func (s *PlannedBudgetService) GetPlannedBudget(category string, t core.TransactionType, month string, year int) core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.budgets {
		if b.Category == category && b.Type == t && b.Month == month && b.Year == year {
			return b.PlannedAmount
		}
	}
	return core.Money{}
}

// GetPlannedBudgets filters the ledger. An empty type matches both types;
// the period filter applies only when both month and year are set.
func (s *PlannedBudgetService) GetPlannedBudgets(t core.TransactionType, month string, year int) []core.PlannedBudget {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.PlannedBudget
	for _, b := range s.budgets {
		if t != "" && b.Type != t {
			continue
		}
		if month != "" && year != 0 && (b.Month != month || b.Year != year) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// All returns a copy of the whole ledger.
func (s *PlannedBudgetService) All() []core.PlannedBudget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PlannedBudget(nil), s.budgets...)
}

// DeletePlannedBudget removes an entry by id. An absent id is a no-op.
func (s *PlannedBudgetService) DeletePlannedBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	next := make([]core.PlannedBudget, 0, len(s.budgets))
	removed := false
	for _, b := range s.budgets {
		if b.ID == id {
			removed = true
			continue
		}
		next = append(next, b)
	}
	if !removed {
		s.mu.Unlock()
		return nil
	}

	if err := s.write(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.publish(ctx, "delete", id)
	return nil
}

// publish must be called without the mutex held so a slow broker cannot
// block the ledger.
func (s *PlannedBudgetService) publish(ctx context.Context, op, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishChange(ctx, EntityPlannedBudgets, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"entity", EntityPlannedBudgets, "operation", op, "id", id, "error", err)
	}
}

// write runs with the mutex held and replaces the cache only after the
// store write succeeded.
func (s *PlannedBudgetService) write(ctx context.Context, next []core.PlannedBudget) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode planned budgets: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyPlannedBudgets, raw); err != nil {
		return fmt.Errorf("save planned budgets: %w", err)
	}
	s.budgets = next
	return nil
}
