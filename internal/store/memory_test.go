package store

import (
	"context"
	"testing"
)

func TestMemoryGetAbsent(t *testing.T) {
	m := NewMemory()
	v, err := m.Get(context.Background(), KeyTransactions)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != nil {
		t.Fatalf("absent key should return nil, got %q", v)
	}
}

func TestMemorySetGetRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Set(ctx, KeyBudgetData, []byte(`{"month":"August","year":2025}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := m.Get(ctx, KeyBudgetData)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(v) != `{"month":"August","year":2025}` {
		t.Fatalf("got %q", v)
	}

	// Set is a full overwrite.
	if err := m.Set(ctx, KeyBudgetData, []byte(`{"month":"September","year":2025}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _ = m.Get(ctx, KeyBudgetData)
	if string(v) != `{"month":"September","year":2025}` {
		t.Fatalf("overwrite not applied, got %q", v)
	}

	if err := m.Remove(ctx, KeyBudgetData); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if v, _ := m.Get(ctx, KeyBudgetData); v != nil {
		t.Fatalf("removed key should be absent, got %q", v)
	}

	// Removing an absent key is not an error.
	if err := m.Remove(ctx, "nope"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	_ = m.Set(ctx, "k", []byte("abc"))

	v, _ := m.Get(ctx, "k")
	v[0] = 'x'

	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}
