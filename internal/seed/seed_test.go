package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"luxe/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(catalog.Products) == 0 || len(catalog.Collection) == 0 {
		t.Fatalf("expected base and collection lists, got %d/%d", len(catalog.Products), len(catalog.Collection))
	}
	for _, item := range catalog.Collection {
		if item.Name == "" || item.Category == "" || item.Price <= 0 {
			t.Fatalf("incomplete collection item: %+v", item)
		}
	}
}

func TestApplySeedsEmptyStore(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	result, err := Apply(ctx, st, now)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if result.Skipped {
		t.Fatalf("expected base seed on empty store")
	}
	if result.Seeded == 0 {
		t.Fatalf("expected seeded products")
	}

	count, err := st.CountProducts(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected products in store")
	}
}

func TestApplySkipsNonEmptyStore(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := Apply(ctx, st, now); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	before, err := st.CountProducts(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	result, err := Apply(ctx, st, now)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if !result.Skipped {
		t.Fatalf("expected base seed skip on populated store")
	}
	if result.Inserted != 0 {
		t.Fatalf("second run must only update, inserted %d", result.Inserted)
	}

	after, err := st.CountProducts(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if before != after {
		t.Fatalf("product count changed on re-run: %d -> %d", before, after)
	}
}

func TestUpsertMatchesCaseInsensitive(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	catalog := &Catalog{
		Collection: []Item{{
			Name:     "COACH BELT",
			Price:    849,
			Category: "belts",
			Images:   []string{"https://cdn.example/coach.jpg"},
			InStock:  true,
		}},
	}

	first, err := ApplyCatalog(ctx, st, catalog, now)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.Inserted != 1 {
		t.Fatalf("expected insert, got %+v", first)
	}

	catalog.Collection[0].Name = "coach belt"
	catalog.Collection[0].Price = 999
	second, err := ApplyCatalog(ctx, st, catalog, now)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Updated != 1 || second.Inserted != 0 {
		t.Fatalf("expected update, got %+v", second)
	}

	got, err := st.GetProductByName(ctx, "coach belt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.Price != 999 {
		t.Fatalf("expected updated price, got %+v", got)
	}
}
