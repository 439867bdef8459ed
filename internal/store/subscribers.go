package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"luxe/internal/models"
)

// SubscriberExists reports whether a subscriber id is taken.
func (s *Store) SubscriberExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM subscribers WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewSubscriberID generates an unused subscriber id.
func (s *Store) NewSubscriberID() (string, error) {
	return GenerateID("sb", s.SubscriberExists)
}

// InsertSubscriber adds a newsletter signup. Returns false without error
// when the email is already subscribed.
func (s *Store) InsertSubscriber(ctx context.Context, subscriber *models.Subscriber) (bool, error) {
	if subscriber == nil {
		return false, fmt.Errorf("subscriber is required")
	}
	email := strings.TrimSpace(strings.ToLower(subscriber.Email))
	if email == "" {
		return false, fmt.Errorf("email is required")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO subscribers (id, email, created_at)
		VALUES (?, ?, ?)
	`, subscriber.ID, email, formatTime(subscriber.CreatedAt))
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListSubscribers returns every signup, oldest first.
func (s *Store) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, created_at
		FROM subscribers
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := make([]models.Subscriber, 0)
	for rows.Next() {
		var subscriber models.Subscriber
		var createdAt string
		if err := rows.Scan(&subscriber.ID, &subscriber.Email, &createdAt); err != nil {
			return nil, err
		}
		if subscriber.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, subscriber)
	}
	return subscribers, rows.Err()
}
