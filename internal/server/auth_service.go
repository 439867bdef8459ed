package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	internalauth "luxe/internal/auth"
	"luxe/internal/mailer"
	"luxe/internal/models"
	"luxe/internal/store"
)

const sessionCookieName = "luxe_session"

var (
	defaultSessionTTL = 30 * 24 * time.Hour

	errInvalidCredentials = errors.New("invalid credentials")
	errOTPExpired         = errors.New("code expired, request a new one")
	errOTPInvalid         = errors.New("invalid code")
	errOTPAttemptsUsed    = errors.New("too many attempts, request a new code")
)

// AuthService handles the email OTP login flow for customers and
// password logins for provisioned admin accounts.
type AuthService struct {
	store      store.IdentityStore
	mail       mailer.Sender
	sessionTTL time.Duration
}

type sessionResult struct {
	User      *models.User
	Admin     *store.AdminUser
	Kind      string
	Token     string
	ExpiresAt time.Time
}

func NewAuthService(identityStore store.IdentityStore, mail mailer.Sender, sessionTTL time.Duration) *AuthService {
	if identityStore == nil {
		return nil
	}
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{store: identityStore, mail: mail, sessionTTL: sessionTTL}
}

// RequestOTP issues a fresh login code for the address and mails it.
// Re-requesting replaces any outstanding code and resets its attempt
// counter.
func (a *AuthService) RequestOTP(ctx context.Context, email string, now time.Time) error {
	if a == nil || a.store == nil {
		return fmt.Errorf("auth store is required")
	}

	normalized, err := internalauth.NormalizeEmail(email)
	if err != nil {
		return badRequestCode(err, ErrCodeInvalidEmail)
	}

	code, err := internalauth.GenerateOTP()
	if err != nil {
		return err
	}

	otp := &store.OTPCode{
		Email:     normalized,
		CodeHash:  internalauth.HashOTP(code),
		ExpiresAt: now.Add(internalauth.OTPTTL),
		CreatedAt: now,
	}
	if err := a.store.UpsertOTPCode(ctx, otp); err != nil {
		return err
	}

	if a.mail != nil {
		if err := a.mail.SendOTP(ctx, normalized, code); err != nil {
			return makeAPIError(500, "internal", ErrCodeMailFailure, fmt.Errorf("send otp: %w", err))
		}
	}
	return nil
}

// VerifyOTP redeems a code. On first successful verification the user
// record is created and marked verified, and a welcome mail goes out.
// Returns a fresh customer session.
func (a *AuthService) VerifyOTP(ctx context.Context, email, code string, now time.Time) (*sessionResult, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("auth store is required")
	}

	normalized, err := internalauth.NormalizeEmail(email)
	if err != nil {
		return nil, badRequestCode(err, ErrCodeInvalidEmail)
	}
	code = strings.TrimSpace(code)
	if len(code) != internalauth.OTPLength {
		return nil, errOTPInvalid
	}

	otp, err := a.store.GetOTPCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if otp == nil || now.After(otp.ExpiresAt) {
		return nil, errOTPExpired
	}
	if otp.Attempts >= internalauth.OTPMaxAttempts {
		return nil, errOTPAttemptsUsed
	}

	if !internalauth.VerifyOTPHash(otp.CodeHash, code) {
		if err := a.store.IncrementOTPAttempts(ctx, normalized); err != nil {
			return nil, err
		}
		return nil, errOTPInvalid
	}

	if err := a.store.DeleteOTPCode(ctx, normalized); err != nil {
		return nil, err
	}

	user, err := a.store.GetUserByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	firstLogin := false
	if user == nil {
		id, err := a.store.NewUserID()
		if err != nil {
			return nil, err
		}
		user = &models.User{
			ID:        id,
			Email:     normalized,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := a.store.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		firstLogin = true
	}
	if user.EmailVerifiedAt == nil {
		if err := a.store.MarkUserVerified(ctx, user.ID, now); err != nil {
			return nil, err
		}
		user.EmailVerifiedAt = &now
		firstLogin = true
	}

	result, err := a.issueSession(ctx, user.ID, store.SessionKindCustomer, now)
	if err != nil {
		return nil, err
	}
	result.User = user

	if firstLogin && a.mail != nil {
		if err := a.mail.SendWelcome(ctx, normalized); err != nil {
			// Login already succeeded, welcome mail is best effort.
			return result, nil
		}
	}
	return result, nil
}

// AdminLogin verifies a provisioned admin account's password and issues
// an admin session.
func (a *AuthService) AdminLogin(ctx context.Context, username, password string, now time.Time) (*sessionResult, error) {
	if a == nil || a.store == nil {
		return nil, fmt.Errorf("auth store is required")
	}

	normalized, err := internalauth.NormalizeUsername(username)
	if err != nil {
		return nil, badRequest(err)
	}
	if strings.TrimSpace(password) == "" {
		return nil, badRequestCode(fmt.Errorf("password is required"), ErrCodeMissingRequired)
	}

	admin, err := a.store.GetAdminUserByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if admin == nil || admin.Disabled || !internalauth.VerifyPassword(admin.PasswordHash, password) {
		return nil, errInvalidCredentials
	}

	result, err := a.issueSession(ctx, admin.ID, store.SessionKindAdmin, now)
	if err != nil {
		return nil, err
	}
	result.Admin = admin
	return result, nil
}

// Authenticate resolves a session token to its principal. Returns nil
// when the token is unknown, expired, or revoked.
func (a *AuthService) Authenticate(ctx context.Context, token string, now time.Time) (*sessionResult, error) {
	if a == nil || a.store == nil {
		return nil, nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	session, err := a.store.GetSessionByTokenHash(ctx, internalauth.HashSessionToken(token), now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	result := &sessionResult{Kind: session.Kind, ExpiresAt: session.ExpiresAt}
	switch session.Kind {
	case store.SessionKindCustomer:
		user, err := a.store.GetUser(ctx, session.PrincipalID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, nil
		}
		result.User = user
	case store.SessionKindAdmin:
		admin, err := a.store.GetAdminUserByID(ctx, session.PrincipalID)
		if err != nil {
			return nil, err
		}
		if admin == nil || admin.Disabled {
			return nil, nil
		}
		result.Admin = admin
	default:
		return nil, nil
	}
	return result, nil
}

// RevokeSessionToken invalidates one session. Unknown tokens are a no-op.
func (a *AuthService) RevokeSessionToken(ctx context.Context, token string, now time.Time) error {
	if a == nil || a.store == nil {
		return nil
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return a.store.RevokeSessionByTokenHash(ctx, internalauth.HashSessionToken(token), now)
}

func (a *AuthService) issueSession(ctx context.Context, principalID, kind string, now time.Time) (*sessionResult, error) {
	token, tokenHash, err := internalauth.GenerateSessionToken()
	if err != nil {
		return nil, err
	}
	expiresAt := now.Add(a.sessionTTL)
	if err := a.store.CreateSession(ctx, principalID, kind, tokenHash, expiresAt, now); err != nil {
		return nil, err
	}
	return &sessionResult{Kind: kind, Token: token, ExpiresAt: expiresAt}, nil
}
