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

// DataService owns the raw budget entities: the anchor BudgetData, the
// transaction list, and the legacy expense list. Every mutation is a
// read-modify-write against the in-memory cache followed by a full-list
// write to the store; the cache is only updated after the write succeeds,
// so reads always see the last persisted state. Subscribers are notified
// after each successful mutation.
type DataService struct {
	mu     sync.Mutex
	store  store.Store
	events EventPublisher

	budgetData   *core.BudgetData
	expenses     []core.LegacyExpense
	transactions []core.Transaction

	listeners []func()
}

func NewDataService(st store.Store, events EventPublisher) *DataService {
	return &DataService{store: st, events: events}
}

// Load reads all entity lists from the store into the cache. Absent keys
// leave the corresponding cache empty.
func (s *DataService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, store.KeyBudgetData)
	if err != nil {
		return fmt.Errorf("load budget data: %w", err)
	}
	if raw != nil {
		var bd core.BudgetData
		if err := json.Unmarshal(raw, &bd); err != nil {
			return fmt.Errorf("decode budget data: %w", err)
		}
		s.budgetData = &bd
	}

	if err := loadList(ctx, s.store, store.KeyExpenses, &s.expenses); err != nil {
		return err
	}
	if err := loadList(ctx, s.store, store.KeyTransactions, &s.transactions); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Budget data loaded",
		"transactions", len(s.transactions),
		"expenses", len(s.expenses),
		"has_anchor", s.budgetData != nil)
	return nil
}

func loadList[T any](ctx context.Context, st store.Store, key string, dst *[]T) error {
	raw, err := st.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// Subscribe registers a callback invoked after every successful mutation.
// Callbacks run synchronously on the mutating goroutine and must be cheap.
func (s *DataService) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// notify must be called without the mutex held: the event publish can
// stall on a slow broker and would otherwise block every read and write
// on the service for its full timeout.
func (s *DataService) notify(ctx context.Context, entity, op, id string) {
	s.mu.Lock()
	listeners := append(([]func())(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	if s.events == nil {
		return
	}
	if err := s.events.PublishChange(ctx, entity, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"entity", entity, "operation", op, "id", id, "error", err)
	}
}

// BudgetData returns the current anchor, or ok=false when none is stored.
func (s *DataService) BudgetData() (core.BudgetData, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.budgetData == nil {
		return core.BudgetData{}, false
	}
	return *s.budgetData, true
}

// SaveBudgetData replaces the anchor and notifies subscribers.
func (s *DataService) SaveBudgetData(ctx context.Context, bd core.BudgetData) error {
	if err := bd.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(bd)
	if err != nil {
		return fmt.Errorf("encode budget data: %w", err)
	}

	s.mu.Lock()
	if err := s.store.Set(ctx, store.KeyBudgetData, raw); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save budget data: %w", err)
	}
	s.budgetData = &bd
	s.mu.Unlock()

	s.notify(ctx, EntityBudgetData, "update", "")
	return nil
}

// Transactions returns a copy of all transactions.
func (s *DataService) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Expenses returns a copy of all legacy expenses.
func (s *DataService) Expenses() []core.LegacyExpense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.LegacyExpense(nil), s.expenses...)
}

// AddTransaction appends a transaction, assigning an id when absent.
func (s *DataService) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	next := append(append([]core.Transaction(nil), s.transactions...), t)
	if err := s.writeTransactions(ctx, next); err != nil {
		s.mu.Unlock()
		return core.Transaction{}, err
	}
	s.mu.Unlock()

	s.notify(ctx, EntityTransactions, "create", t.ID)
	return t, nil
}

// UpdateTransaction replaces the transaction with the same id. An unknown
// id is a silent no-op, matching the historic behavior.
func (s *DataService) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	updated := false
	for i, existing := range s.transactions {
		if existing.ID != t.ID {
			continue
		}
		next := append([]core.Transaction(nil), s.transactions...)
		next[i] = t
		if err := s.writeTransactions(ctx, next); err != nil {
			s.mu.Unlock()
			return err
		}
		updated = true
		break
	}
	s.mu.Unlock()

	if updated {
		s.notify(ctx, EntityTransactions, "update", t.ID)
	}
	return nil
}

// DeleteTransaction removes exactly the transaction with the given id.
func (s *DataService) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	next := make([]core.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if err := s.writeTransactions(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(ctx, EntityTransactions, "delete", id)
	return nil
}

// AddExpense appends a legacy expense, assigning an id when absent.
func (s *DataService) AddExpense(ctx context.Context, e core.LegacyExpense) (core.LegacyExpense, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if err := e.Validate(); err != nil {
		return core.LegacyExpense{}, err
	}

	s.mu.Lock()
	next := append(append([]core.LegacyExpense(nil), s.expenses...), e)
	if err := s.writeExpenses(ctx, next); err != nil {
		s.mu.Unlock()
		return core.LegacyExpense{}, err
	}
	s.mu.Unlock()

	s.notify(ctx, EntityExpenses, "create", e.ID)
	return e, nil
}

// UpdateExpense replaces the legacy expense with the same id; unknown ids
// are a silent no-op.
func (s *DataService) UpdateExpense(ctx context.Context, e core.LegacyExpense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	updated := false
	for i, existing := range s.expenses {
		if existing.ID != e.ID {
			continue
		}
		next := append([]core.LegacyExpense(nil), s.expenses...)
		next[i] = e
		if err := s.writeExpenses(ctx, next); err != nil {
			s.mu.Unlock()
			return err
		}
		updated = true
		break
	}
	s.mu.Unlock()

	if updated {
		s.notify(ctx, EntityExpenses, "update", e.ID)
	}
	return nil
}

// DeleteExpense removes the legacy expense with the given id.
func (s *DataService) DeleteExpense(ctx context.Context, id string) error {
	s.mu.Lock()
	next := make([]core.LegacyExpense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if err := s.writeExpenses(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(ctx, EntityExpenses, "delete", id)
	return nil
}

// TransactionsByType returns transactions of one type across all months.
func (s *DataService) TransactionsByType(t core.TransactionType) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, tr := range s.transactions {
		if tr.Type == t {
			out = append(out, tr)
		}
	}
	return out
}

// MonthlyTransactions returns the transactions dated in the given month and
// year. An empty type matches both expense and income entries.
func (s *DataService) MonthlyTransactions(month string, year int, t core.TransactionType) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, tr := range s.transactions {
		if !core.InMonth(tr.Date, month, year) {
			continue
		}
		if t != "" && tr.Type != t {
			continue
		}
		out = append(out, tr)
	}
	return out
}

// MonthlyExpenses returns the legacy expenses dated in the given month and
// year. Legacy entries are always expense-like.
func (s *DataService) MonthlyExpenses(month string, year int) []core.LegacyExpense {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.LegacyExpense
	for _, e := range s.expenses {
		if core.InMonth(e.Date, month, year) {
			out = append(out, e)
		}
	}
	return out
}

// writeTransactions and writeExpenses run with the mutex held and only
// replace the cache once the store write succeeded.

func (s *DataService) writeTransactions(ctx context.Context, next []core.Transaction) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyTransactions, raw); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	s.transactions = next
	return nil
}

func (s *DataService) writeExpenses(ctx context.Context, next []core.LegacyExpense) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyExpenses, raw); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	s.expenses = next
	return nil
}
