package server

import (
	"net/http"
	"strings"
	"time"

	"luxe/internal/api"
	"luxe/internal/models"
	"luxe/internal/store"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	featured, err := queryBool(r, "featured")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}
	inStock, err := queryBool(r, "in_stock")
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}
	limit, err := queryIntDefault(r, "limit", 0)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}
	offset, err := queryIntDefault(r, "offset", 0)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	filter := store.ProductFilter{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Featured: featured,
		InStock:  inStock,
		Limit:    limit,
		Offset:   offset,
	}

	products, err := s.catalog.List(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "pr")
	if !ok {
		return
	}

	product, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	resp := toProductResponse(product)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOrderLink(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r, "pr")
	if !ok {
		return
	}
	color := strings.TrimSpace(r.URL.Query().Get("color"))

	link, err := s.catalog.OrderLink(r.Context(), id, color)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.OrderLinkResponse{URL: link})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.ProductCreateRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	product, err := s.catalog.Create(r.Context(), &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Category:      req.Category,
		Images:        req.Images,
		Videos:        req.Videos,
		Colors:        req.Colors,
		Brand:         req.Brand,
		Featured:      req.Featured,
		InStock:       req.InStock,
	}, time.Now().UTC())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (s *Server) handleUpdateProductImages(w http.ResponseWriter, r *http.Request) {
	var req api.ProductImagesRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	product, err := s.catalog.UpdateMediaByName(r.Context(), req.Name, req.Images, req.Videos, time.Now().UTC())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (s *Server) handleListProductSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.catalog.Summaries(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, toProductSummaryResponses(summaries))
}
