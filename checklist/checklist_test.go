package checklist

import (
	"context"
	"testing"

	"github.com/odconnect/receive-tracking-order/infrastructure/kv"
	"github.com/odconnect/receive-tracking-order/inventory"
)

func TestToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := New(kv.NewMemStore())

	checked, err := c.Toggle(ctx, "Head_Office_Poster_A2")
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !checked {
		t.Fatalf("first toggle should check")
	}

	state, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !state["Head_Office_Poster_A2"] {
		t.Fatalf("check did not persist: %v", state)
	}

	checked, err = c.Toggle(ctx, "Head_Office_Poster_A2")
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if checked {
		t.Fatalf("second toggle should uncheck")
	}

	state, err = c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state) != 0 {
		t.Fatalf("unchecked entry still persisted: %v", state)
	}
}

func TestSetManyAndClearScope(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	c := New(store)

	ids := []string{"a", "b", "c"}
	if err := c.SetMany(ctx, ids, true); err != nil {
		t.Fatalf("set many: %v", err)
	}

	state, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state) != 3 {
		t.Fatalf("state = %v", state)
	}

	// Clearing one scope leaves foreign entries alone.
	if err := c.ClearScope(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("clear scope: %v", err)
	}
	state, err = c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state) != 1 || !state["c"] {
		t.Fatalf("state after clear = %v", state)
	}

	if err := c.SetMany(ctx, []string{"c"}, false); err != nil {
		t.Fatalf("set many off: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("store still holds %d entries", store.Len())
	}
}

func TestLoadIgnoresForeignKeys(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	if err := store.Set(ctx, "session_xyz", "1"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := store.Set(ctx, KeyPrefix+"item1", "true"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	state, err := New(store).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state) != 1 || !state["item1"] {
		t.Fatalf("state = %v", state)
	}
}

func TestProgressFor(t *testing.T) {
	view := []inventory.LineItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	p := ProgressFor(view, map[string]bool{"a": true, "c": true})
	if p.Count != 2 || p.Total != 3 || p.Complete {
		t.Fatalf("progress = %+v", p)
	}
	if p.Percent != 67 {
		t.Fatalf("percent = %d, want 67", p.Percent)
	}

	p = ProgressFor(view, map[string]bool{"a": true, "b": true, "c": true})
	if !p.Complete || p.Percent != 100 {
		t.Fatalf("progress = %+v", p)
	}

	p = ProgressFor(nil, map[string]bool{"a": true})
	if p.Count != 0 || p.Total != 0 || p.Percent != 0 || p.Complete {
		t.Fatalf("empty view progress = %+v", p)
	}
}
