package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"luxe/internal/api"
	"luxe/internal/models"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.cartOwner(w, r)
	if !ok {
		return
	}

	profile, err := s.store.GetCustomerProfile(r.Context(), owner)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if profile == nil {
		s.writeErrorReq(w, r, http.StatusNotFound, notFoundCode(fmt.Errorf("profile not found"), ErrCodeProfileNotFound))
		return
	}
	s.writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.cartOwner(w, r)
	if !ok {
		return
	}

	var req api.ProfileRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	firstName, err := requireText(req.FirstName, "first_name", 100)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}
	phone, err := requireText(req.Phone, "phone", 20)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	now := time.Now().UTC()
	profile := &models.CustomerProfile{
		UserID:    owner,
		FirstName: firstName,
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     phone,
		Address1:  strings.TrimSpace(req.Address1),
		Address2:  strings.TrimSpace(req.Address2),
		City:      strings.TrimSpace(req.City),
		State:     strings.TrimSpace(req.State),
		Pin:       strings.TrimSpace(req.Pin),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.UpsertCustomerProfile(r.Context(), profile); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	// Keep the user's display name in sync with the profile.
	name := strings.TrimSpace(firstName + " " + profile.LastName)
	if err := s.store.UpdateUserName(r.Context(), owner, name, now); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, toProfileResponse(profile))
}
