package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"luxe/internal/api"
)

func TestCartFlowOverHTTP(t *testing.T) {
	srv, mail := newTestServer(t)
	product := seedTestProduct(t, srv, "Aviator Pro")
	session := loginTestCustomer(t, srv, mail, "shopper@example.com")
	handler := srv.routes()
	auth := map[string]string{"Authorization": "Bearer " + session.Token}

	two := 2
	w := postJSON(t, handler, "/v1/cart/items", api.CartAddRequest{
		ProductID: product.ID,
		Quantity:  &two,
		Color:     strPtr("black"),
	}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var added api.CartItemIDResponse
	decodeResponse(t, w, &added)
	if added.ItemID == nil {
		t.Fatal("expected item id")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/cart/items", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var items []api.CartItemResponse
	decodeResponse(t, rec, &items)
	if len(items) != 1 || items[0].Quantity != 2 || items[0].Product.Name != "Aviator Pro" {
		t.Fatalf("unexpected cart: %+v", items)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/cart/count", nil)
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	var count api.CartCountResponse
	decodeResponse(t, rec, &count)
	if count.Count != 2 {
		t.Fatalf("expected count 2, got %d", count.Count)
	}

	// Drop the line by setting quantity to zero.
	req = httptest.NewRequest(http.MethodPut, "/v1/cart/items/"+*added.ItemID+"/quantity",
		jsonBody(t, api.CartQuantityRequest{Quantity: 0}))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("set quantity: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var removed api.CartItemIDResponse
	decodeResponse(t, rec, &removed)
	if removed.ItemID != nil {
		t.Fatalf("expected null item id after removal, got %v", *removed.ItemID)
	}
}

func TestAddToCartUnknownProductOverHTTP(t *testing.T) {
	srv, mail := newTestServer(t)
	session := loginTestCustomer(t, srv, mail, "shopper@example.com")

	w := postJSON(t, srv.routes(), "/v1/cart/items", api.CartAddRequest{ProductID: "pr-zzzz"},
		map[string]string{"Authorization": "Bearer " + session.Token})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
}
