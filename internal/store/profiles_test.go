package store

import (
	"context"
	"testing"
	"time"

	"luxe/internal/models"
)

func TestCustomerProfileUpsert(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	profile := &models.CustomerProfile{
		UserID:    "us-0001",
		FirstName: "Asha",
		LastName:  "Rao",
		Phone:     "9871000000",
		Address1:  "12 MG Road",
		City:      "Bengaluru",
		State:     "KA",
		Pin:       "560001",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.UpsertCustomerProfile(ctx, profile); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := st.GetCustomerProfile(ctx, "us-0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.FirstName != "Asha" || got.Address2 != "" {
		t.Fatalf("unexpected profile: %+v", got)
	}

	profile.Phone = "9871111111"
	profile.Address2 = "Apt 4"
	profile.UpdatedAt = now.Add(time.Minute)
	if err := st.UpsertCustomerProfile(ctx, profile); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err = st.GetCustomerProfile(ctx, "us-0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Phone != "9871111111" || got.Address2 != "Apt 4" {
		t.Fatalf("expected updated profile, got %+v", got)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at must not change on upsert")
	}
}

func TestGetCustomerProfileMissing(t *testing.T) {
	st := testStore(t)

	got, err := st.GetCustomerProfile(context.Background(), "us-none")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing profile, got %+v", got)
	}
}

func TestSubscriberDedupe(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	added, err := st.InsertSubscriber(ctx, &models.Subscriber{ID: "sb-0001", Email: "Fan@Example.com", CreatedAt: now})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !added {
		t.Fatalf("expected first insert to add")
	}

	added, err = st.InsertSubscriber(ctx, &models.Subscriber{ID: "sb-0002", Email: "fan@example.com", CreatedAt: now})
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if added {
		t.Fatalf("expected duplicate email to be ignored")
	}

	subscribers, err := st.ListSubscribers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subscribers) != 1 || subscribers[0].Email != "fan@example.com" {
		t.Fatalf("unexpected subscribers: %+v", subscribers)
	}
}
