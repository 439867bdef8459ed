package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"luxe/internal/api"
)

func adminHeaders(srv *Server) map[string]string {
	srv.adminToken = "test-admin-token"
	return map[string]string{adminTokenHeader: "test-admin-token"}
}

func TestCreateAndGetProductOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	headers := adminHeaders(srv)
	handler := srv.routes()

	mrp := int64(45999)
	w := postJSON(t, handler, "/v1/admin/products", api.ProductCreateRequest{
		Name:          "Aviator Pro",
		Description:   "Premium aviator goggles",
		Price:         2999,
		OriginalPrice: &mrp,
		Category:      "Goggles",
		Images:        []string{"https://example.com/a.jpg"},
		Colors:        []string{"black", "blue"},
		Featured:      true,
		InStock:       true,
	}, headers)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var created api.ProductResponse
	decodeResponse(t, w, &created)
	if created.ID == "" {
		t.Fatal("expected product id")
	}
	if created.Category != "goggles" {
		t.Fatalf("expected normalized category, got %q", created.Category)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/products/"+created.ID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}

	var fetched api.ProductResponse
	decodeResponse(t, rec, &fetched)
	if fetched.Name != "Aviator Pro" || fetched.OriginalPrice == nil || *fetched.OriginalPrice != mrp {
		t.Fatalf("unexpected product: %+v", fetched)
	}
}

func TestListProductsFilterOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	seedTestProduct(t, srv, "Aviator Pro")
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodGet, "/v1/products?category=goggles&in_stock=true", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var products []api.ProductResponse
	decodeResponse(t, rec, &products)
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/products?category=watches", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	decodeResponse(t, rec, &products)
	if len(products) != 0 {
		t.Fatalf("expected no watches, got %d", len(products))
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/products?in_stock=banana", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad boolean, got %d", rec.Code)
	}
}

func TestGetProductUnknownID(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodGet, "/v1/products/pr-zzzz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/products/not-a-valid-id", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestOrderLinkOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	product := seedTestProduct(t, srv, "Aviator Pro")
	handler := srv.routes()

	req := httptest.NewRequest(http.MethodGet, "/v1/products/"+product.ID+"/order-link?color=black", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp api.OrderLinkResponse
	decodeResponse(t, rec, &resp)
	if !strings.HasPrefix(resp.URL, "https://wa.me/9871629699?text=") {
		t.Fatalf("unexpected order link: %s", resp.URL)
	}
	parsed, err := url.Parse(resp.URL)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if text := parsed.Query().Get("text"); !strings.Contains(text, "Aviator Pro") || !strings.Contains(text, "Color: Black") {
		t.Fatalf("unexpected message: %q", text)
	}
}

func TestUpdateProductImagesByName(t *testing.T) {
	srv, _ := newTestServer(t)
	seedTestProduct(t, srv, "Aviator Pro")
	headers := adminHeaders(srv)
	handler := srv.routes()

	w := postJSON(t, handler, "/v1/admin/products/images", api.ProductImagesRequest{
		Name:   "AVIATOR PRO",
		Images: []string{"https://example.com/new.jpg"},
		Videos: []string{"https://example.com/v.mp4"},
	}, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var updated api.ProductResponse
	decodeResponse(t, w, &updated)
	if len(updated.Images) != 1 || updated.Images[0] != "https://example.com/new.jpg" {
		t.Fatalf("unexpected images: %v", updated.Images)
	}
	if len(updated.Videos) != 1 {
		t.Fatalf("unexpected videos: %v", updated.Videos)
	}

	w = postJSON(t, handler, "/v1/admin/products/images", api.ProductImagesRequest{
		Name:   "No Such Product",
		Images: []string{"https://example.com/x.jpg"},
	}, headers)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown name, got %d", w.Code)
	}
}

func TestSeedEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	headers := adminHeaders(srv)
	handler := srv.routes()

	w := postJSON(t, handler, "/v1/admin/seed", nil, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var result api.SeedResponse
	decodeResponse(t, w, &result)
	if result.Skipped {
		t.Fatal("expected seeding on empty store")
	}
	if result.Seeded == 0 {
		t.Fatal("expected seeded products")
	}

	// Second run skips the base catalog but still reconciles the
	// curated collection.
	w = postJSON(t, handler, "/v1/admin/seed", nil, headers)
	decodeResponse(t, w, &result)
	if !result.Skipped {
		t.Fatal("expected skip on non-empty store")
	}
}
