package server

import (
	"crypto/subtle"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"luxe/internal/store"
)

const adminTokenHeader = "X-Admin-Token"

// requireCustomer wraps a handler so it only runs with an authenticated
// customer principal in the request context.
func (s *Server) requireCustomer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := s.authenticateRequest(w, r)
		if !ok {
			return
		}
		if principal.Kind != store.SessionKindCustomer || principal.User == nil {
			s.writeErrorReq(w, r, http.StatusForbidden, makeAPIError(http.StatusForbidden, "forbidden", ErrCodeForbidden, fmt.Errorf("customer session required")))
			return
		}
		next(w, r.WithContext(contextWithAuthPrincipal(r.Context(), principal)))
	}
}

// requireAdmin wraps a handler so it only runs for an admin session or a
// request carrying the configured admin token.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken != "" {
			header := strings.TrimSpace(r.Header.Get(adminTokenHeader))
			if header != "" && subtle.ConstantTimeCompare([]byte(header), []byte(s.adminToken)) == 1 {
				principal := authPrincipal{AuthType: authTypeToken, Kind: store.SessionKindAdmin}
				next(w, r.WithContext(contextWithAuthPrincipal(r.Context(), principal)))
				return
			}
		}

		principal, ok := s.authenticateRequest(w, r)
		if !ok {
			return
		}
		if !principal.isAdmin() {
			s.writeErrorReq(w, r, http.StatusForbidden, makeAPIError(http.StatusForbidden, "forbidden", ErrCodeForbidden, fmt.Errorf("admin access required")))
			return
		}
		next(w, r.WithContext(contextWithAuthPrincipal(r.Context(), principal)))
	}
}

func (s *Server) authenticateRequest(w http.ResponseWriter, r *http.Request) (authPrincipal, bool) {
	token, authType := requestToken(r)
	if token == "" {
		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("authentication required")))
		return authPrincipal{}, false
	}

	result, err := s.authService.Authenticate(r.Context(), token, time.Now().UTC())
	if err != nil {
		s.writeStoreError(w, r, err)
		return authPrincipal{}, false
	}
	if result == nil {
		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid or expired session")))
		return authPrincipal{}, false
	}

	return authPrincipal{
		AuthType: authType,
		Kind:     result.Kind,
		User:     result.User,
		Admin:    result.Admin,
	}, true
}

// requestToken extracts the session token, preferring the Authorization
// header over the session cookie.
func requestToken(r *http.Request) (string, string) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1]), authTypeBearer
		}
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return strings.TrimSpace(cookie.Value), authTypeSession
	}
	return "", ""
}

func requestScheme(r *http.Request) string {
	if r != nil && r.TLS != nil {
		return "https"
	}
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		return strings.ToLower(proto)
	}
	return "http"
}

func requestClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remote)
	if err == nil {
		return strings.TrimSpace(host)
	}
	return remote
}
