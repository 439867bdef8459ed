package server

import (
	"context"
	"fmt"
	"time"

	internalauth "luxe/internal/auth"
	"luxe/internal/mailer"
	"luxe/internal/models"
	"luxe/internal/store"
)

const (
	newsletterBatchSize  = 50
	newsletterBatchPause = 500 * time.Millisecond
)

// SubscriberService manages newsletter signups and broadcasts.
type SubscriberService struct {
	store store.SubscriberStore
	mail  mailer.Sender

	// batchPause is overridable in tests.
	batchPause time.Duration
}

func NewSubscriberService(subscriberStore store.SubscriberStore, mail mailer.Sender) *SubscriberService {
	return &SubscriberService{store: subscriberStore, mail: mail, batchPause: newsletterBatchPause}
}

// Subscribe records one signup. Returns false when the address was
// already subscribed.
func (s *SubscriberService) Subscribe(ctx context.Context, email string, now time.Time) (bool, error) {
	normalized, err := internalauth.NormalizeEmail(email)
	if err != nil {
		return false, badRequestCode(err, ErrCodeInvalidEmail)
	}

	id, err := s.store.NewSubscriberID()
	if err != nil {
		return false, err
	}
	return s.store.InsertSubscriber(ctx, &models.Subscriber{
		ID:        id,
		Email:     normalized,
		CreatedAt: now,
	})
}

// Broadcast sends the newsletter to every subscriber in batches, pausing
// between batches so the mail service is not flooded. Returns the
// recipient and batch counts.
func (s *SubscriberService) Broadcast(ctx context.Context, subject, body string) (int, int, error) {
	subject, err := requireText(subject, "subject", 500)
	if err != nil {
		return 0, 0, err
	}
	body, err = requireText(body, "body", 0)
	if err != nil {
		return 0, 0, err
	}
	if s.mail == nil {
		return 0, 0, internalError(fmt.Errorf("mail sender not configured"))
	}

	subscribers, err := s.store.ListSubscribers(ctx)
	if err != nil {
		return 0, 0, err
	}
	recipients := make([]string, 0, len(subscribers))
	for _, subscriber := range subscribers {
		recipients = append(recipients, subscriber.Email)
	}
	if len(recipients) == 0 {
		return 0, 0, nil
	}

	batches := 0
	for start := 0; start < len(recipients); start += newsletterBatchSize {
		end := start + newsletterBatchSize
		if end > len(recipients) {
			end = len(recipients)
		}
		if err := s.mail.SendNewsletter(ctx, recipients[start:end], subject, body); err != nil {
			return len(recipients), batches, makeAPIError(500, "internal", ErrCodeMailFailure, fmt.Errorf("send newsletter batch: %w", err))
		}
		batches++

		if end < len(recipients) && s.batchPause > 0 {
			select {
			case <-ctx.Done():
				return len(recipients), batches, ctx.Err()
			case <-time.After(s.batchPause):
			}
		}
	}
	return len(recipients), batches, nil
}
