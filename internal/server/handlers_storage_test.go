package server

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"luxe/internal/api"
	"luxe/internal/models"
)

func uploadFile(t *testing.T, handler http.Handler, headers map[string]string, name, contentType, content string) api.StorageUploadResponse {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if contentType != "" {
		if err := mw.WriteField("content_type", contentType); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/storage/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var resp api.StorageUploadResponse
	decodeResponse(t, w, &resp)
	return resp
}

func TestStorageUploadAndServe(t *testing.T) {
	srv, _ := newTestServer(t)
	headers := adminHeaders(srv)
	handler := srv.routes()

	uploaded := uploadFile(t, handler, headers, "photo.jpg", "image/jpeg", "fake jpeg bytes")
	if uploaded.ID == "" || uploaded.SHA256 == "" {
		t.Fatalf("unexpected upload response: %+v", uploaded)
	}
	if uploaded.SizeBytes != int64(len("fake jpeg bytes")) {
		t.Fatalf("unexpected size: %d", uploaded.SizeBytes)
	}
	if uploaded.URL == "" {
		t.Fatal("expected resolvable url for fresh upload")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/files/"+uploaded.ID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("serve: expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/jpeg" {
		t.Fatalf("unexpected content type: %q", got)
	}
	body, _ := io.ReadAll(rec.Body)
	if string(body) != "fake jpeg bytes" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestServeUnknownFile(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/files/fl-zzzz", nil)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStorageAuditOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t)
	headers := adminHeaders(srv)
	handler := srv.routes()

	used := uploadFile(t, handler, headers, "a.jpg", "image/jpeg", "first")
	uploadFile(t, handler, headers, "b.jpg", "image/jpeg", "second")

	// Only the first upload is referenced by a product.
	if _, err := srv.catalog.Create(context.Background(), &models.Product{
		Name:     "Aviator Pro",
		Price:    2999,
		Category: "goggles",
		Images:   []string{used.URL},
		InStock:  true,
	}, time.Now().UTC()); err != nil {
		t.Fatalf("create product: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/storage/audit?window_ms=60000", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var audit api.StorageAuditResponse
	decodeResponse(t, rec, &audit)
	if audit.Total != 2 || audit.Active != 1 || audit.Orphaned != 1 {
		t.Fatalf("unexpected audit counts: %+v", audit)
	}
	if audit.ActiveFiles[0].ID != used.ID {
		t.Fatalf("expected %s active, got %+v", used.ID, audit.ActiveFiles)
	}
	if audit.WindowMS != 60000 {
		t.Fatalf("expected requested window, got %d", audit.WindowMS)
	}
	if len(audit.GroupedOrphaned) != 1 || len(audit.GroupedOrphaned[0]) != 1 {
		t.Fatalf("expected one single-file orphan group, got %v", audit.GroupedOrphaned)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/admin/storage/audit?window_ms=banana", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad window, got %d", rec.Code)
	}
}
