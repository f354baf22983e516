package service

import (
	"gateway/api/internal/domain"
	"gateway/api/internal/infra/postgres"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"gateway/pkg/clock"
	"gateway/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookEventsService struct {
	repo repository.WebhookEvents
	db   *gorm.DB
	clk  clock.Clock
	l    logger.Logger
}

func NewWebhookEventsService(db *gorm.DB, repo repository.WebhookEvents, clk clock.Clock, l logger.Logger) *WebhookEventsService {
	return &WebhookEventsService{repo: repo, db: db, clk: clk, l: l}
}

// Emit appends a new pending event, due immediately. Runs on the caller's tx
// so the event rides in the caller's transaction (projector both-or-neither).
func (s *WebhookEventsService) Emit(tx *gorm.DB, eventType string, payload any, merchantID string, paymentID string) (string, error) {
	body := utils.MustMarshal(payload)

	now := s.clk.Now()
	event := &domain.WebhookEvents{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		Payload:       string(body),
		MerchantID:    merchantID,
		PaymentID:     paymentID,
		Status:        domain.WEBHOOK_PENDING,
		NextAttemptAt: &now,
	}

	if err := s.repo.Create(tx, event); err != nil {
		return "", err
	}

	return event.EventID, nil
}

func (s *WebhookEventsService) FindByEventID(eventID string) (*domain.WebhookEvents, error) {
	event, err := s.repo.FindByEventID(s.db, eventID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("webhook event")
		}
		return nil, err
	}
	return event, nil
}

func (s *WebhookEventsService) List(filter repository.WebhookEventsFilter) ([]domain.WebhookEvents, error) {
	return s.repo.List(s.db, filter)
}

func (s *WebhookEventsService) ListAttempts(eventID string) ([]domain.WebhookAttempts, error) {
	if _, err := s.FindByEventID(eventID); err != nil {
		return nil, err
	}
	return s.repo.ListAttempts(s.db, eventID)
}

// RetryNow resets a failed event for immediate redelivery, bypassing backoff.
func (s *WebhookEventsService) RetryNow(eventID string) error {
	ok, err := s.repo.RetryNow(s.db, eventID, s.clk.Now())
	if err != nil {
		return err
	}
	if ok {
		s.l.Info("manual webhook retry", "event_id", eventID)
		return nil
	}

	// figure out why the reset missed
	if _, err := s.FindByEventID(eventID); err != nil {
		return err
	}
	return domain.ErrNotRetryable
}
