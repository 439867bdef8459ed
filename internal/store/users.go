package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"luxe/internal/models"
)

// UserExists reports whether a user id is taken.
func (s *Store) UserExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewUserID generates an unused user id.
func (s *Store) NewUserID() (string, error) {
	return GenerateID("us", s.UserExists)
}

// CreateUser inserts a customer row. Email must already be normalized.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	if user.Email == "" {
		return fmt.Errorf("email is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, email_verified_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		user.ID,
		user.Email,
		nullIfEmpty(user.Name),
		nullTime(user.EmailVerifiedAt),
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	return err
}

// GetUser returns a customer by id, or nil when missing.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, email_verified_at, created_at, updated_at
		FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

// GetUserByEmail returns a customer by normalized email, or nil when missing.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, email_verified_at, created_at, updated_at
		FROM users WHERE email = ?
	`, email)
	return scanUser(row)
}

// MarkUserVerified stamps the email verification time.
func (s *Store) MarkUserVerified(ctx context.Context, id string, when time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET email_verified_at = ?, updated_at = ? WHERE id = ?
	`, formatTime(when), formatTime(when), id)
	return err
}

// UpdateUserName sets the display name.
func (s *Store) UpdateUserName(ctx context.Context, id, name string, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users SET name = ?, updated_at = ? WHERE id = ?
	`, nullIfEmpty(strings.TrimSpace(name)), formatTime(now), id)
	return err
}

func scanUser(scanner interface {
	Scan(dest ...any) error
}) (*models.User, error) {
	var user models.User
	var name, verifiedAt sql.NullString
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&user.ID,
		&user.Email,
		&name,
		&verifiedAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	user.Name = name.String
	if verifiedAt.Valid {
		parsed, err := parseTime(verifiedAt.String)
		if err != nil {
			return nil, err
		}
		user.EmailVerifiedAt = &parsed
	}

	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &user, nil
}
