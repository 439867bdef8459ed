package server

import (
	"fmt"
	"net/http"
	"time"

	"luxe/internal/api"
)

func (s *Server) cartOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, ok := authPrincipalFromContext(r.Context())
	if !ok || principal.User == nil {
		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("authentication required")))
		return "", false
	}
	return principal.User.ID, true
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.cartOwner(w, r)
	if !ok {
		return
	}

	var req api.CartAddRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}
	if !validateID(req.ProductID, "pr") {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("invalid product_id"), ErrCodeInvalidID))
		return
	}

	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	itemID, err := s.cart.Add(r.Context(), owner, req.ProductID, quantity, req.Color, req.Packaging, time.Now().UTC())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CartItemIDResponse{ItemID: &itemID})
}

func (s *Server) handleListCart(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.cartOwner(w, r)
	if !ok {
		return
	}

	items, err := s.cart.Items(r.Context(), owner)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toCartItemResponses(items))
}

func (s *Server) handleCartCount(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.cartOwner(w, r)
	if !ok {
		return
	}

	count, err := s.cart.Count(r.Context(), owner)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CartCountResponse{Count: count})
}

func (s *Server) handleSetCartQuantity(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.cartOwner(w, r)
	if !ok {
		return
	}
	id, ok := s.pathIDOrBadRequest(w, r, "ci")
	if !ok {
		return
	}

	var req api.CartQuantityRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	itemID, err := s.cart.SetQuantity(r.Context(), owner, id, req.Quantity, time.Now().UTC())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.CartItemIDResponse{ItemID: itemID})
}
