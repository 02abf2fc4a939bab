package category

import (
	"context"
	"errors"
	"testing"

	"github.com/MsVron/budget/internal/budget"
	"github.com/MsVron/budget/internal/core"
	"github.com/MsVron/budget/internal/store"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s := NewService(store.NewMemory(), nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestAddAndLookup(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	cat, err := s.Add(ctx, "Groceries", core.TypeExpense, "#FF3636")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if cat.ID == "" {
		t.Fatalf("added category should get an id")
	}
	if !cat.IsUserAdded {
		t.Fatalf("added category should be flagged user-added")
	}

	got, ok := s.ByName("groceries", core.TypeExpense)
	if !ok {
		t.Fatalf("lookup should be case-insensitive")
	}
	if got.Color != "#FF3636" {
		t.Fatalf("got color %q", got.Color)
	}

	if _, ok := s.ByName("Groceries", core.TypeIncome); ok {
		t.Fatalf("lookup must distinguish types")
	}
}

func TestAddAdoptsDefaultsCatalogEntry(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	cat, err := s.Add(ctx, "Food & Dining", core.TypeExpense, "#123456")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !cat.IsDefault {
		t.Fatalf("catalog name should adopt the default flag")
	}
	if cat.ID != "1" {
		t.Fatalf("catalog name should adopt the stable id, got %q", cat.ID)
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	cat, _ := s.Add(ctx, "Pets", core.TypeExpense, "#AAAAAA")
	cat.Color = "#BBBBBB"
	if err := s.Update(ctx, cat); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.ByID(cat.ID)
	if got.Color != "#BBBBBB" {
		t.Fatalf("update not applied, color %q", got.Color)
	}

	missing := core.Category{ID: "nope", Name: "X", Type: core.TypeExpense}
	if err := s.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRefusesDefaults(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	def, _ := s.Add(ctx, "Salary", core.TypeIncome, "#4CAF50")
	if err := s.Delete(ctx, def.ID); !errors.Is(err, ErrDefaultCategory) {
		t.Fatalf("expected ErrDefaultCategory, got %v", err)
	}

	user, _ := s.Add(ctx, "Side Project", core.TypeIncome, "#5C6BC0")
	if err := s.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := s.ByID(user.ID); ok {
		t.Fatalf("category should be gone")
	}
}

func TestAvailableDefaults(t *testing.T) {
	ctx := context.Background()
	s := newService(t)

	before := s.AvailableDefaults(core.TypeExpense)
	if len(before) != 10 {
		t.Fatalf("expected all 10 expense defaults available, got %d", len(before))
	}

	if _, err := s.Add(ctx, "Healthcare", core.TypeExpense, "#FFBF36"); err != nil {
		t.Fatalf("add: %v", err)
	}
	after := s.AvailableDefaults(core.TypeExpense)
	if len(after) != 9 {
		t.Fatalf("adopted default should disappear from the catalog, got %d", len(after))
	}
	for _, c := range after {
		if c.Name == "Healthcare" {
			t.Fatalf("Healthcare still listed as available")
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	first := NewService(st, nil)
	_ = first.Load(ctx)
	added, err := first.Add(ctx, "Travel", core.TypeExpense, "#00BFA5")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	second := NewService(st, nil)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, ok := second.ByID(added.ID)
	if !ok || got.Name != "Travel" {
		t.Fatalf("category did not survive reload: %+v ok=%v", got, ok)
	}
}

func TestColorPalette(t *testing.T) {
	p := ColorPalette()
	if len(p) != 15 {
		t.Fatalf("palette size: got %d", len(p))
	}
	p[0] = "tampered"
	if ColorPalette()[0] == "tampered" {
		t.Fatalf("palette should be copied on return")
	}
}

// recordingPublisher captures change events for assertions.
type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishChange(_ context.Context, entity, op, id string) error {
	p.events = append(p.events, entity+":"+op)
	return nil
}

func TestMutationsPublishChangeEvents(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	s := NewService(store.NewMemory(), pub)
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	cat, err := s.Add(ctx, "Travel", core.TypeExpense, "#00BFA5")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	cat.Color = "#3675FF"
	if err := s.Update(ctx, cat); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{
		budget.EntityCategories + ":create",
		budget.EntityCategories + ":update",
		budget.EntityCategories + ":delete",
	}
	if len(pub.events) != len(want) {
		t.Fatalf("events: %v", pub.events)
	}
	for i, e := range want {
		if pub.events[i] != e {
			t.Fatalf("event %d: got %q, want %q", i, pub.events[i], e)
		}
	}

	// Failed mutations must stay silent.
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing: %v", err)
	}
	if len(pub.events) != len(want) {
		t.Fatalf("failed delete should not publish, got %v", pub.events)
	}
}
