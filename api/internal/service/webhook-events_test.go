package service

import (
	"errors"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/pkg/clock"
	"testing"
	"time"
)

func TestEmit(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFake(now)
	repo := newFakeEventsRepo()
	s := NewWebhookEventsService(nil, repo, clk, logger.Logger{})

	eventID, err := s.Emit(nil, "payment.pending", domain.PaymentSnapshot{PaymentID: "p1"}, "m1", "p1")
	if err != nil {
		t.Fatal(err)
	}

	event, err := s.FindByEventID(eventID)
	if err != nil {
		t.Fatal(err)
	}
	if event.Status != domain.WEBHOOK_PENDING {
		t.Fatalf("expected pending, got %s", event.Status.ToString())
	}
	if event.NextAttemptAt == nil || !event.NextAttemptAt.Equal(now) {
		t.Fatalf("new event must be due immediately, got %v", event.NextAttemptAt)
	}
	if event.EventType != "payment.pending" || event.MerchantID != "m1" || event.PaymentID != "p1" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestRetryNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFake(now)
	repo := newFakeEventsRepo()
	s := NewWebhookEventsService(nil, repo, clk, logger.Logger{})

	repo.Create(nil, &domain.WebhookEvents{
		EventID:      "ev-failed",
		EventType:    "payment.failed",
		Payload:      "{}",
		MerchantID:   "m1",
		Status:       domain.WEBHOOK_FAILED,
		AttemptCount: 5,
	})

	if err := s.RetryNow("ev-failed"); err != nil {
		t.Fatal(err)
	}

	event, _ := repo.FindByEventID(nil, "ev-failed")
	if event.Status != domain.WEBHOOK_RETRYING {
		t.Fatalf("expected retrying, got %s", event.Status.ToString())
	}
	if event.NextAttemptAt == nil || !event.NextAttemptAt.Equal(now) {
		t.Fatalf("manual retry must be due immediately, got %v", event.NextAttemptAt)
	}
	// attempt history survives the reset
	if event.AttemptCount != 5 {
		t.Fatalf("expected attempt count kept, got %d", event.AttemptCount)
	}
}

func TestRetryNowRejectsNonFailed(t *testing.T) {
	clk := clock.NewFake(time.Now())
	repo := newFakeEventsRepo()
	s := NewWebhookEventsService(nil, repo, clk, logger.Logger{})

	for _, status := range []domain.WebhookStatus{domain.WEBHOOK_PENDING, domain.WEBHOOK_RETRYING, domain.WEBHOOK_IN_FLIGHT, domain.WEBHOOK_SUCCESS} {
		eventID := "ev-" + status.ToString()
		repo.Create(nil, &domain.WebhookEvents{EventID: eventID, Payload: "{}", Status: status})

		if err := s.RetryNow(eventID); !errors.Is(err, domain.ErrNotRetryable) {
			t.Fatalf("status %s: expected not retryable, got %v", status.ToString(), err)
		}
	}

	if err := s.RetryNow("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
