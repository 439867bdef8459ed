package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Catalog.
	mux.HandleFunc("GET /v1/products", s.handleListProducts)
	mux.HandleFunc("GET /v1/products/{id}", s.handleGetProduct)
	mux.HandleFunc("GET /v1/products/{id}/order-link", s.handleOrderLink)

	// Cart. Requires a customer session.
	mux.HandleFunc("POST /v1/cart/items", s.requireCustomer(s.handleAddToCart))
	mux.HandleFunc("GET /v1/cart/items", s.requireCustomer(s.handleListCart))
	mux.HandleFunc("GET /v1/cart/count", s.requireCustomer(s.handleCartCount))
	mux.HandleFunc("PUT /v1/cart/items/{id}/quantity", s.requireCustomer(s.handleSetCartQuantity))

	// Auth.
	mux.HandleFunc("POST /v1/auth/otp/request", s.handleOTPRequest)
	mux.HandleFunc("POST /v1/auth/otp/verify", s.handleOTPVerify)
	mux.HandleFunc("POST /v1/auth/admin/login", s.handleAdminLogin)
	mux.HandleFunc("POST /v1/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /v1/auth/me", s.requireCustomer(s.handleMe))

	// Customer profile.
	mux.HandleFunc("GET /v1/profile", s.requireCustomer(s.handleGetProfile))
	mux.HandleFunc("PUT /v1/profile", s.requireCustomer(s.handlePutProfile))

	// Newsletter.
	mux.HandleFunc("POST /v1/subscribers", s.handleSubscribe)

	// Uploaded media.
	mux.HandleFunc("GET /v1/files/{id}", s.handleServeFile)

	// Admin.
	mux.HandleFunc("GET /v1/admin/products", s.requireAdmin(s.handleListProductSummaries))
	mux.HandleFunc("POST /v1/admin/products", s.requireAdmin(s.handleCreateProduct))
	mux.HandleFunc("POST /v1/admin/products/images", s.requireAdmin(s.handleUpdateProductImages))
	mux.HandleFunc("POST /v1/admin/newsletter", s.requireAdmin(s.handleNewsletter))
	mux.HandleFunc("POST /v1/admin/storage/upload", s.requireAdmin(s.handleStorageUpload))
	mux.HandleFunc("GET /v1/admin/storage/audit", s.requireAdmin(s.handleStorageAudit))
	mux.HandleFunc("POST /v1/admin/seed", s.requireAdmin(s.handleSeed))

	return mux
}
