package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"luxe/internal/api"
)

func (s *Server) handleOTPRequest(w http.ResponseWriter, r *http.Request) {
	var req api.OTPRequestRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	limiterKey := attemptKey(req.Email, r)
	if s.otpLimiter != nil && !s.otpLimiter.Allow(limiterKey, now) {
		s.writeErrorReq(w, r, http.StatusTooManyRequests, tooManyRequests(fmt.Errorf("too many code requests; retry later")))
		return
	}

	if err := s.authService.RequestOTP(r.Context(), req.Email, now); err != nil {
		if s.otpLimiter != nil && httpStatusFromError(err) < 500 {
			s.otpLimiter.RegisterFailure(limiterKey, now)
		}
		s.writeServiceError(w, r, err)
		return
	}

	// Successful issuance still counts toward the limit.
	if s.otpLimiter != nil {
		s.otpLimiter.RegisterFailure(limiterKey, now)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOTPVerify(w http.ResponseWriter, r *http.Request) {
	var req api.OTPVerifyRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	limiterKey := attemptKey(req.Email, r)
	if s.loginLimiter != nil && !s.loginLimiter.Allow(limiterKey, now) {
		s.writeErrorReq(w, r, http.StatusTooManyRequests, tooManyRequests(fmt.Errorf("too many login attempts; retry later")))
		return
	}

	result, err := s.authService.VerifyOTP(r.Context(), req.Email, req.Code, now)
	if err != nil {
		switch {
		case errors.Is(err, errOTPInvalid), errors.Is(err, errOTPAttemptsUsed):
			if s.loginLimiter != nil {
				s.loginLimiter.RegisterFailure(limiterKey, now)
			}
			s.writeErrorReq(w, r, http.StatusUnauthorized, makeAPIError(http.StatusUnauthorized, "unauthorized", ErrCodeOTPInvalid, err))
		case errors.Is(err, errOTPExpired):
			s.writeErrorReq(w, r, http.StatusUnauthorized, makeAPIError(http.StatusUnauthorized, "unauthorized", ErrCodeOTPExpired, err))
		case httpStatusFromError(err) < 500:
			s.writeServiceError(w, r, err)
		default:
			s.writeStoreError(w, r, err)
		}
		return
	}
	if s.loginLimiter != nil {
		s.loginLimiter.Reset(limiterKey)
	}
	if s.otpLimiter != nil {
		s.otpLimiter.Reset(limiterKey)
	}

	s.setSessionCookie(w, r, result.Token, result.ExpiresAt)
	s.writeJSON(w, http.StatusOK, api.SessionResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      toUserResponse(result.User),
	})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req api.AdminLoginRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	limiterKey := attemptKey(req.Username, r)
	if s.loginLimiter != nil && !s.loginLimiter.Allow(limiterKey, now) {
		s.writeErrorReq(w, r, http.StatusTooManyRequests, tooManyRequests(fmt.Errorf("too many login attempts; retry later")))
		return
	}

	result, err := s.authService.AdminLogin(r.Context(), req.Username, req.Password, now)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			if s.loginLimiter != nil {
				s.loginLimiter.RegisterFailure(limiterKey, now)
			}
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("invalid credentials")))
		case httpStatusFromError(err) < 500:
			s.writeServiceError(w, r, err)
		default:
			s.writeStoreError(w, r, err)
		}
		return
	}
	if s.loginLimiter != nil {
		s.loginLimiter.Reset(limiterKey)
	}

	s.setSessionCookie(w, r, result.Token, result.ExpiresAt)
	s.writeJSON(w, http.StatusOK, api.SessionResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := requestToken(r)
	if token != "" && s.authService != nil {
		if err := s.authService.RevokeSessionToken(r.Context(), token, time.Now().UTC()); err != nil {
			s.writeStoreError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := authPrincipalFromContext(r.Context())
	if !ok || principal.User == nil {
		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("unauthorized")))
		return
	}
	s.writeJSON(w, http.StatusOK, toUserResponse(principal.User))
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt) / time.Second)
	if maxAge <= 0 {
		maxAge = 86400
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
		Expires:  expiresAt,
	})
}

func attemptKey(identifier string, r *http.Request) string {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		id = "<empty>"
	}
	ip := requestClientIP(r)
	if ip == "" {
		ip = "<unknown>"
	}
	return ip + "|" + id
}
