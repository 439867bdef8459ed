package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Session kinds. Customer sessions come from OTP verification, admin
// sessions from the admin login endpoint.
const (
	SessionKindCustomer = "customer"
	SessionKindAdmin    = "admin"
)

// OTPCode is one pending email verification code. Only the SHA-256 hash of
// the code is stored.
type OTPCode struct {
	Email     string
	CodeHash  string
	Attempts  int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Session is an issued bearer token, stored hashed.
type Session struct {
	ID          string
	PrincipalID string
	Kind        string
	TokenHash   string
	ExpiresAt   time.Time
	RevokedAt   *time.Time
	CreatedAt   time.Time
}

// AdminUser is a locally provisioned operator account.
type AdminUser struct {
	ID           string
	Username     string
	PasswordHash string
	Disabled     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertOTPCode stores or replaces the pending code for an email. Issuing a
// new code invalidates any previous one.
func (s *Store) UpsertOTPCode(ctx context.Context, code *OTPCode) error {
	if code == nil {
		return fmt.Errorf("otp code is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO otp_codes (email, code_hash, attempts, expires_at, created_at)
		VALUES (?, ?, 0, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			code_hash = excluded.code_hash,
			attempts = 0,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`, code.Email, code.CodeHash, formatTime(code.ExpiresAt), formatTime(code.CreatedAt))
	return err
}

// GetOTPCode returns the pending code for an email, or nil when absent.
func (s *Store) GetOTPCode(ctx context.Context, email string) (*OTPCode, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT email, code_hash, attempts, expires_at, created_at
		FROM otp_codes WHERE email = ?
	`, email)

	var code OTPCode
	var expiresAt, createdAt string
	if err := row.Scan(&code.Email, &code.CodeHash, &code.Attempts, &expiresAt, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var err error
	if code.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, err
	}
	if code.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &code, nil
}

// IncrementOTPAttempts bumps the failed attempt counter.
func (s *Store) IncrementOTPAttempts(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE otp_codes SET attempts = attempts + 1 WHERE email = ?", email)
	return err
}

// DeleteOTPCode removes the pending code. Codes are single use.
func (s *Store) DeleteOTPCode(ctx context.Context, email string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM otp_codes WHERE email = ?", email)
	return err
}

// CreateSession stores a new session bound to a principal and token hash.
func (s *Store) CreateSession(ctx context.Context, principalID, kind, tokenHash string, expiresAt, createdAt time.Time) error {
	principalID = strings.TrimSpace(principalID)
	tokenHash = strings.TrimSpace(tokenHash)
	if principalID == "" {
		return fmt.Errorf("principal id is required")
	}
	if kind != SessionKindCustomer && kind != SessionKindAdmin {
		return fmt.Errorf("unknown session kind %q", kind)
	}
	if tokenHash == "" {
		return fmt.Errorf("token hash is required")
	}

	sessionID, err := generateAuthID("as")
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, principal_id, kind, token_hash, expires_at, revoked_at, created_at)
		VALUES (?, ?, ?, ?, ?, NULL, ?)
	`, sessionID, principalID, kind, tokenHash, formatTime(expiresAt), formatTime(createdAt))
	return err
}

// GetSessionByTokenHash returns the live session for a token hash, or nil
// when no non-revoked, unexpired session matches.
func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error) {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, principal_id, kind, token_hash, expires_at, revoked_at, created_at
		FROM sessions
		WHERE token_hash = ?
		  AND revoked_at IS NULL
		  AND expires_at > ?
		LIMIT 1
	`, tokenHash, formatTime(now))

	var session Session
	var expiresAt, createdAt string
	var revokedAt sql.NullString
	if err := row.Scan(&session.ID, &session.PrincipalID, &session.Kind, &session.TokenHash, &expiresAt, &revokedAt, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	var err error
	if session.ExpiresAt, err = parseTime(expiresAt); err != nil {
		return nil, err
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if revokedAt.Valid {
		parsed, err := parseTime(revokedAt.String)
		if err != nil {
			return nil, err
		}
		session.RevokedAt = &parsed
	}
	return &session, nil
}

// RevokeSessionByTokenHash marks one session revoked by token hash.
func (s *Store) RevokeSessionByTokenHash(ctx context.Context, tokenHash string, revokedAt time.Time) error {
	tokenHash = strings.TrimSpace(tokenHash)
	if tokenHash == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE sessions
		SET revoked_at = ?
		WHERE token_hash = ?
		  AND revoked_at IS NULL
	`, formatTime(revokedAt), tokenHash)
	return err
}

// CreateAdminUser creates one local admin account.
func (s *Store) CreateAdminUser(ctx context.Context, username, passwordHash string, now time.Time) (*AdminUser, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	userID, err := generateAuthID("au")
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, username, password_hash, disabled, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)
	`, userID, username, passwordHash, formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}

	return &AdminUser{
		ID:           userID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// GetAdminUserByUsername returns an admin account by normalized username.
func (s *Store) GetAdminUserByUsername(ctx context.Context, username string) (*AdminUser, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, disabled, created_at, updated_at
		FROM admin_users WHERE username = ?
		LIMIT 1
	`, username)
	return scanAdminUser(row)
}

// GetAdminUserByID returns an admin account by id.
func (s *Store) GetAdminUserByID(ctx context.Context, id string) (*AdminUser, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, disabled, created_at, updated_at
		FROM admin_users WHERE id = ?
		LIMIT 1
	`, id)
	return scanAdminUser(row)
}

// ListAdminUsers returns all admin accounts sorted by username.
func (s *Store) ListAdminUsers(ctx context.Context) ([]AdminUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password_hash, disabled, created_at, updated_at
		FROM admin_users
		ORDER BY username ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AdminUser, 0)
	for rows.Next() {
		user, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		if user == nil {
			continue
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// SetAdminUserDisabled updates one account's disabled state by username.
func (s *Store) SetAdminUserDisabled(ctx context.Context, username string, disabled bool, now time.Time) (*AdminUser, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE admin_users
		SET disabled = ?, updated_at = ?
		WHERE username = ?
	`, boolToInt(disabled), formatTime(now), username)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return s.GetAdminUserByUsername(ctx, username)
}

// DeleteAdminUser deletes one account by username.
func (s *Store) DeleteAdminUser(ctx context.Context, username string) (bool, error) {
	username = normalizeAdminUsername(username)
	if username == "" {
		return false, fmt.Errorf("username is required")
	}
	result, err := s.db.ExecContext(ctx, "DELETE FROM admin_users WHERE username = ?", username)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// CountEnabledAdminUsers returns the number of non-disabled admin accounts.
func (s *Store) CountEnabledAdminUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin_users WHERE disabled = 0").Scan(&count)
	return count, err
}

func scanAdminUser(scanner interface {
	Scan(dest ...any) error
}) (*AdminUser, error) {
	var user AdminUser
	var disabled int
	var createdAt, updatedAt string
	if err := scanner.Scan(&user.ID, &user.Username, &user.PasswordHash, &disabled, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	user.Disabled = disabled != 0

	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}

func normalizeAdminUsername(username string) string {
	return strings.TrimSpace(strings.ToLower(username))
}

func generateAuthID(prefix string) (string, error) {
	id, err := randomHex(10)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", prefix, id), nil
}

func randomHex(numBytes int) (string, error) {
	if numBytes <= 0 {
		return "", fmt.Errorf("numBytes must be > 0")
	}
	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
