package server

import (
	"net/http"
	"time"

	"luxe/internal/api"
	"luxe/internal/seed"
)

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	result, err := seed.Apply(r.Context(), s.store, time.Now().UTC())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.SeedResponse{
		Skipped:  result.Skipped,
		Seeded:   result.Seeded,
		Inserted: result.Inserted,
		Updated:  result.Updated,
	})
}
