package server

import (
	"net/http"

	"luxe/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.StoreInfo(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.InfoResponse{
		Version:       s.version,
		SchemaVersion: info.SchemaVersion,
		TotalProducts: info.TotalProducts,
		ProductCounts: info.ProductCounts,
	})
}
