// Package category implements the category directory: name+type lookups,
// the defaults catalog, and the color palette.
package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MsVron/budget/internal/budget"
	"github.com/MsVron/budget/internal/core"
	"github.com/MsVron/budget/internal/store"
)

var (
	ErrNotFound        = errors.New("category not found")
	ErrDefaultCategory = errors.New("default categories cannot be deleted")
)

// defaultExpenseCategories and defaultIncomeCategories form the catalog of
// well-known categories a user can adopt. They are not stored until adopted.
var defaultExpenseCategories = []core.Category{
	{ID: "1", Name: "Food & Dining", Type: core.TypeExpense, Color: "#FF3636", IsDefault: true},
	{ID: "2", Name: "Transportation", Type: core.TypeExpense, Color: "#36B5FF", IsDefault: true},
	{ID: "3", Name: "Shopping", Type: core.TypeExpense, Color: "#FF3679", IsDefault: true},
	{ID: "4", Name: "Entertainment", Type: core.TypeExpense, Color: "#9436FF", IsDefault: true},
	{ID: "5", Name: "Bills & Utilities", Type: core.TypeExpense, Color: "#3675FF", IsDefault: true},
	{ID: "6", Name: "Healthcare", Type: core.TypeExpense, Color: "#FFBF36", IsDefault: true},
	{ID: "7", Name: "Education", Type: core.TypeExpense, Color: "#00BFA5", IsDefault: true},
	{ID: "8", Name: "Personal Care", Type: core.TypeExpense, Color: "#A8D900", IsDefault: true},
	{ID: "9", Name: "Home", Type: core.TypeExpense, Color: "#00897B", IsDefault: true},
	{ID: "10", Name: "Other", Type: core.TypeExpense, Color: "#795548", IsDefault: true},
}

var defaultIncomeCategories = []core.Category{
	{ID: "11", Name: "Salary", Type: core.TypeIncome, Color: "#4CAF50", IsDefault: true},
	{ID: "12", Name: "Freelance", Type: core.TypeIncome, Color: "#36B5FF", IsDefault: true},
	{ID: "13", Name: "Bonus", Type: core.TypeIncome, Color: "#FFC107", IsDefault: true},
	{ID: "14", Name: "Investment", Type: core.TypeIncome, Color: "#5C6BC0", IsDefault: true},
	{ID: "15", Name: "Gift", Type: core.TypeIncome, Color: "#FF3679", IsDefault: true},
	{ID: "16", Name: "Other", Type: core.TypeIncome, Color: "#8D6E63", IsDefault: true},
}

var colorPalette = []string{
	"#FF3636", "#FF3679", "#36B5FF", "#A8D900", "#4CAF50",
	"#00BFA5", "#3675FF", "#9436FF", "#FFBF36", "#FFC107",
	"#795548", "#8D6E63", "#689F38", "#00897B", "#5C6BC0",
}

// Service is the category directory. The user's categories are cached in
// memory and written back to the store in full after every mutation.
type Service struct {
	mu         sync.Mutex
	store      store.Store
	events     budget.EventPublisher
	categories []core.Category
}

func NewService(st store.Store, events budget.EventPublisher) *Service {
	return &Service{store: st, events: events}
}

// Load reads the stored categories into the cache. An absent or corrupt
// value yields an empty directory; the user adds categories as needed.
func (s *Service) Load(ctx context.Context) error {
	raw, err := s.store.Get(ctx, store.KeyCategories)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if raw == nil {
		return nil
	}
	var cats []core.Category
	if err := json.Unmarshal(raw, &cats); err != nil {
		return fmt.Errorf("decode categories: %w", err)
	}
	s.mu.Lock()
	s.categories = cats
	s.mu.Unlock()
	return nil
}

func (s *Service) save(ctx context.Context) error {
	raw, err := json.Marshal(s.categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyCategories, raw); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}

// All returns a copy of every category in the directory.
func (s *Service) All() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.categories...)
}

// ByType returns the categories of the given type.
func (s *Service) ByType(t core.TransactionType) []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Category
	for _, c := range s.categories {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// ByID looks a category up by id.
func (s *Service) ByID(id string) (core.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return core.Category{}, false
}

// ByName looks a category up by name and type, case-insensitively.
func (s *Service) ByName(name string, t core.TransactionType) (core.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.SameName(name, t) {
			return c, true
		}
	}
	return core.Category{}, false
}

// Exists reports whether a category with this name and type is present.
func (s *Service) Exists(name string, t core.TransactionType) bool {
	_, ok := s.ByName(name, t)
	return ok
}

// Add creates a category. When the name matches an entry of the defaults
// catalog, that entry's id and default flag are adopted so the same category
// keeps a stable identity across installs.
func (s *Service) Add(ctx context.Context, name string, t core.TransactionType, color string) (core.Category, error) {
	cat := core.Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Type:        t,
		Color:       color,
		IsUserAdded: true,
	}
	if def, ok := defaultByName(cat.Name, t); ok {
		cat.ID = def.ID
		cat.IsDefault = true
	}
	if err := cat.Validate(); err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	s.categories = append(s.categories, cat)
	if err := s.save(ctx); err != nil {
		s.categories = s.categories[:len(s.categories)-1]
		s.mu.Unlock()
		return core.Category{}, err
	}
	s.mu.Unlock()

	s.publish(ctx, "create", cat.ID)
	return cat, nil
}

// Update replaces the stored category with the same id.
func (s *Service) Update(ctx context.Context, cat core.Category) error {
	if err := cat.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	for i, existing := range s.categories {
		if existing.ID == cat.ID {
			prev := s.categories[i]
			s.categories[i] = cat
			if err := s.save(ctx); err != nil {
				s.categories[i] = prev
				s.mu.Unlock()
				return err
			}
			s.mu.Unlock()
			s.publish(ctx, "update", cat.ID)
			return nil
		}
	}
	s.mu.Unlock()
	return ErrNotFound
}

// Delete removes a category by id. Default categories are refused.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	for i, existing := range s.categories {
		if existing.ID != id {
			continue
		}
		if existing.IsDefault {
			s.mu.Unlock()
			return ErrDefaultCategory
		}
		prev := s.categories
		s.categories = append(append([]core.Category(nil), s.categories[:i]...), s.categories[i+1:]...)
		if err := s.save(ctx); err != nil {
			s.categories = prev
			s.mu.Unlock()
			return err
		}
		s.mu.Unlock()
		s.publish(ctx, "delete", id)
		return nil
	}
	s.mu.Unlock()
	return ErrNotFound
}

// publish must be called without the mutex held. Publish failures are
// logged and swallowed because the local write has already succeeded.
func (s *Service) publish(ctx context.Context, op, id string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishChange(ctx, budget.EntityCategories, op, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change event",
			"entity", budget.EntityCategories, "operation", op, "id", id, "error", err)
	}
}

// AvailableDefaults returns the defaults-catalog entries of the given type
// that the user has not adopted yet.
func (s *Service) AvailableDefaults(t core.TransactionType) []core.Category {
	adopted := make(map[string]struct{})
	for _, c := range s.ByType(t) {
		adopted[strings.ToLower(c.Name)] = struct{}{}
	}

	defaults := defaultExpenseCategories
	if t == core.TypeIncome {
		defaults = defaultIncomeCategories
	}
	var out []core.Category
	for _, d := range defaults {
		if _, ok := adopted[strings.ToLower(d.Name)]; !ok {
			out = append(out, d)
		}
	}
	return out
}

// ColorPalette returns the predefined colors offered for new categories.
func ColorPalette() []string {
	return append([]string(nil), colorPalette...)
}

func defaultByName(name string, t core.TransactionType) (core.Category, bool) {
	defaults := defaultExpenseCategories
	if t == core.TypeIncome {
		defaults = defaultIncomeCategories
	}
	for _, d := range defaults {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return core.Category{}, false
}
