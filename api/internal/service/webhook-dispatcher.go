package service

import (
	"context"
	"gateway/api/internal/config"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"gateway/pkg/clock"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebhookDispatcherService polls for due events, claims each one and performs
// a single delivery attempt per claim. Workers run in parallel across distinct
// events; the claim CAS keeps any one event on a single worker.
type WebhookDispatcherService struct {
	repo      repository.WebhookEvents
	merchants repository.Merchants
	sender    WebhookSender
	scheduler RetryScheduler

	db     *gorm.DB
	clk    clock.Clock
	l      logger.Logger
	config *config.Config

	workers chan struct{} // delivery slot semaphore
}

func NewWebhookDispatcherService(db *gorm.DB, repo repository.WebhookEvents, merchants repository.Merchants, sender WebhookSender, scheduler RetryScheduler, clk clock.Clock, l logger.Logger, config *config.Config) *WebhookDispatcherService {
	return &WebhookDispatcherService{
		repo:      repo,
		merchants: merchants,
		sender:    sender,
		scheduler: scheduler,
		db:        db,
		clk:       clk,
		l:         l,
		config:    config,
		workers:   make(chan struct{}, config.Webhook.Workers),
	}
}

// Start runs the poll loop until ctx is canceled.
func (s *WebhookDispatcherService) Start(ctx context.Context) {
	go func() {
		s.l.Info("webhook dispatcher started", "interval", s.config.WebhookPollInterval().String(), "workers", s.config.Webhook.Workers)

		ticker := time.NewTicker(s.config.WebhookPollInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.l.Info("webhook dispatcher stopped")
				return
			case <-ticker.C:
				s.Poll(ctx)
			}
		}
	}()
}

// Poll requeues orphaned claims, then claims and dispatches one batch of due
// events. Exported so tests can drive ticks by hand.
func (s *WebhookDispatcherService) Poll(ctx context.Context) {
	now := s.clk.Now()

	released, err := s.repo.ReleaseStale(s.db, now, s.config.WebhookLease())
	if err != nil {
		s.l.Error("release stale claims error: " + err.Error())
	} else if released > 0 {
		s.l.Info("released stale webhook claims", "count", released)
	}

	events, err := s.repo.ListDue(s.db, now, s.config.Webhook.BatchSize)
	if err != nil {
		s.l.Error("list due events error: " + err.Error())
		return
	}

	for _, event := range events {
		select {
		case s.workers <- struct{}{}:
		case <-ctx.Done():
			return
		}

		go func(event domain.WebhookEvents) {
			defer func() { <-s.workers }()

			claimed, err := s.repo.Claim(s.db, event.EventID, now)
			if err != nil {
				s.l.Error("claim error: "+err.Error(), "event_id", event.EventID)
				return
			}
			if !claimed { // another worker owns it, or it already moved on
				return
			}

			// the ListDue snapshot may predate attempts made by another
			// instance; count from the claimed row, not the snapshot
			fresh, err := s.repo.FindByEventID(s.db, event.EventID)
			if err != nil {
				// stays in_flight until the lease expires and ReleaseStale requeues it
				s.l.Error("reload claimed event error: "+err.Error(), "event_id", event.EventID)
				return
			}

			s.Dispatch(fresh)
		}(event)
	}
}

// Dispatch performs exactly one delivery attempt for a claimed event:
// one attempt row appended, one status transition out of in_flight.
func (s *WebhookDispatcherService) Dispatch(event *domain.WebhookEvents) {
	result, err := s.deliver(event)

	attempt := &domain.WebhookAttempts{
		AttemptID: uuid.NewString(),
		EventID:   event.EventID,
		CreatedAt: s.clk.Now(),
	}

	success := err == nil && result.IsSuccess()
	if success {
		attempt.Status = domain.ATTEMPT_SUCCESS
	} else {
		attempt.Status = domain.ATTEMPT_FAILED
	}

	if result != nil {
		code := result.Code
		attempt.ResponseCode = &code
		attempt.ResponseBody = result.Body
	} else if err != nil {
		attempt.ResponseBody = err.Error()
	}

	if err := s.repo.CreateAttempt(s.db, attempt); err != nil {
		s.l.Error("create attempt error: "+err.Error(), "event_id", event.EventID)
	}

	count := event.AttemptCount + 1

	if success {
		if err := s.repo.Finish(s.db, event.EventID, domain.WEBHOOK_SUCCESS, nil, count); err != nil {
			s.l.Error("finish event error: "+err.Error(), "event_id", event.EventID)
			return
		}
		s.l.TemplWebhookInfo("webhook delivered", event.EventType, event.EventID, count)
		return
	}

	status, next := s.scheduler.NextState(count, s.clk.Now())
	if err := s.repo.Finish(s.db, event.EventID, status, next, count); err != nil {
		s.l.Error("finish event error: "+err.Error(), "event_id", event.EventID)
		return
	}

	if status == domain.WEBHOOK_FAILED {
		s.l.TemplWebhookErr("webhook exhausted all attempts", event.EventType, event.EventID, count, []byte(event.Payload))
	}
}

func (s *WebhookDispatcherService) deliver(event *domain.WebhookEvents) (*domain.DeliveryResult, error) {
	merchant, err := s.merchants.FindByID(s.db, event.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant.WebhookUrl == "" {
		return nil, domain.WrapNotFound("merchant webhook url")
	}

	return s.sender.Send(merchant.WebhookUrl, []byte(event.Payload))
}
