package store

import (
	"context"
	"database/sql"
	"fmt"

	"luxe/internal/models"
)

// UpsertCustomerProfile stores or replaces the one profile row per user.
func (s *Store) UpsertCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error {
	if profile == nil {
		return fmt.Errorf("profile is required")
	}
	if profile.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customer_profiles (user_id, first_name, last_name, phone, address1, address2, city, state, pin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			phone = excluded.phone,
			address1 = excluded.address1,
			address2 = excluded.address2,
			city = excluded.city,
			state = excluded.state,
			pin = excluded.pin,
			updated_at = excluded.updated_at
	`,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.Phone,
		profile.Address1,
		nullIfEmpty(profile.Address2),
		profile.City,
		profile.State,
		profile.Pin,
		formatTime(profile.CreatedAt),
		formatTime(profile.UpdatedAt),
	)
	return err
}

// GetCustomerProfile returns the user's profile, or nil when none saved.
func (s *Store) GetCustomerProfile(ctx context.Context, userID string) (*models.CustomerProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, first_name, last_name, phone, address1, address2, city, state, pin, created_at, updated_at
		FROM customer_profiles WHERE user_id = ?
	`, userID)

	var profile models.CustomerProfile
	var address2 sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&profile.Address1,
		&address2,
		&profile.City,
		&profile.State,
		&profile.Pin,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	profile.Address2 = address2.String

	var err error
	if profile.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if profile.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &profile, nil
}
