package server

import (
	"net/http"
	"time"

	"luxe/internal/api"
)

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req api.SubscribeRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	added, err := s.subscribers.Subscribe(r.Context(), req.Email, time.Now().UTC())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, api.SubscribeResponse{Subscribed: true, Added: added})
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	var req api.NewsletterRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	s.withLimiter(w, r, s.mailLimiter, "newsletter", func() {
		recipients, batches, err := s.subscribers.Broadcast(r.Context(), req.Subject, req.Body)
		if err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, api.NewsletterResponse{Recipients: recipients, Batches: batches})
	})
}
