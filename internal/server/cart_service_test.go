package server

import (
	"context"
	"testing"
	"time"

	"luxe/internal/models"
)

func seedTestProduct(t *testing.T, srv *Server, name string) *models.Product {
	t.Helper()
	product, err := srv.catalog.Create(context.Background(), &models.Product{
		Name:     name,
		Price:    2999,
		Category: "goggles",
		Images:   []string{"https://example.com/p.jpg"},
		Colors:   []string{"black", "blue"},
		InStock:  true,
	}, time.Now().UTC())
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func strPtr(s string) *string { return &s }

func TestCartAddMergesSameVariant(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	product := seedTestProduct(t, srv, "Aviator Pro")
	now := time.Now().UTC()

	first, err := srv.cart.Add(ctx, "us-ab12", product.ID, 1, strPtr("black"), nil, now)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := srv.cart.Add(ctx, "us-ab12", product.ID, 2, strPtr("black"), nil, now)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if first != second {
		t.Fatalf("expected merge into one line, got %s then %s", first, second)
	}

	items, err := srv.cart.Items(ctx, "us-ab12")
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", items[0].Quantity)
	}
}

func TestCartAddDistinguishesVariants(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	product := seedTestProduct(t, srv, "Aviator Pro")
	now := time.Now().UTC()

	// Absent color and empty-string color are different variants.
	a, err := srv.cart.Add(ctx, "us-ab12", product.ID, 1, nil, nil, now)
	if err != nil {
		t.Fatalf("add without color: %v", err)
	}
	b, err := srv.cart.Add(ctx, "us-ab12", product.ID, 1, strPtr(""), nil, now)
	if err != nil {
		t.Fatalf("add with empty color: %v", err)
	}
	c, err := srv.cart.Add(ctx, "us-ab12", product.ID, 1, strPtr("black"), nil, now)
	if err != nil {
		t.Fatalf("add with color: %v", err)
	}
	d, err := srv.cart.Add(ctx, "us-ab12", product.ID, 1, strPtr("black"), strPtr("gift"), now)
	if err != nil {
		t.Fatalf("add with packaging: %v", err)
	}

	ids := map[string]struct{}{a: {}, b: {}, c: {}, d: {}}
	if len(ids) != 4 {
		t.Fatalf("expected 4 distinct lines, got %d", len(ids))
	}

	count, err := srv.cart.Count(ctx, "us-ab12")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected count 4, got %d", count)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	_, err := srv.cart.Add(ctx, "us-ab12", "pr-zzzz", 1, nil, nil, time.Now().UTC())
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
}

func TestCartSetQuantity(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	product := seedTestProduct(t, srv, "Aviator Pro")
	now := time.Now().UTC()

	lineID, err := srv.cart.Add(ctx, "us-ab12", product.ID, 2, nil, nil, now)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := srv.cart.SetQuantity(ctx, "us-ab12", lineID, 5, now)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if got == nil || *got != lineID {
		t.Fatalf("expected line id back, got %v", got)
	}

	items, err := srv.cart.Items(ctx, "us-ab12")
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", items)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	product := seedTestProduct(t, srv, "Aviator Pro")
	now := time.Now().UTC()

	lineID, err := srv.cart.Add(ctx, "us-ab12", product.ID, 2, nil, nil, now)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := srv.cart.SetQuantity(ctx, "us-ab12", lineID, 0, now)
	if err != nil {
		t.Fatalf("set quantity 0: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil id after removal, got %v", *got)
	}

	count, err := srv.cart.Count(ctx, "us-ab12")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty cart, got count %d", count)
	}
}

func TestCartSetQuantityMissingLineIsNoOp(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)

	got, err := srv.cart.SetQuantity(ctx, "us-ab12", "ci-zzzz", 3, time.Now().UTC())
	if err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil id for missing line, got %v", *got)
	}
}

func TestCartSetQuantityForeignLineIsNoOp(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	product := seedTestProduct(t, srv, "Aviator Pro")
	now := time.Now().UTC()

	lineID, err := srv.cart.Add(ctx, "us-ab12", product.ID, 2, nil, nil, now)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := srv.cart.SetQuantity(ctx, "us-cd34", lineID, 9, now)
	if err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil id for another owner's line")
	}

	items, err := srv.cart.Items(ctx, "us-ab12")
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected original line untouched, got %+v", items)
	}
}

func TestCartCountSumsQuantities(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	a := seedTestProduct(t, srv, "Aviator Pro")
	b := seedTestProduct(t, srv, "Classic Chronograph")
	now := time.Now().UTC()

	if _, err := srv.cart.Add(ctx, "us-ab12", a.ID, 2, nil, nil, now); err != nil {
		t.Fatalf("add a: %v", err)
	}
	if _, err := srv.cart.Add(ctx, "us-ab12", b.ID, 3, nil, nil, now); err != nil {
		t.Fatalf("add b: %v", err)
	}
	if _, err := srv.cart.Add(ctx, "us-cd34", a.ID, 7, nil, nil, now); err != nil {
		t.Fatalf("add other owner: %v", err)
	}

	count, err := srv.cart.Count(ctx, "us-ab12")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected count 5 for owner, got %d", count)
	}
}
