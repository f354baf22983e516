package repository

import (
	"encoding/json"
	"fmt"
	"gateway/api/internal/domain"
	"time"

	"gorm.io/gorm"
)

type WebhookEventsRepo struct {
}

func InitWebhookEventsRepo() *WebhookEventsRepo {
	return &WebhookEventsRepo{}
}

func (r *WebhookEventsRepo) Create(tx *gorm.DB, event *domain.WebhookEvents) error {
	if !json.Valid([]byte(event.Payload)) {
		return fmt.Errorf("invalid payload: %s", event.Payload)
	}
	return tx.Create(event).Error
}

func (r *WebhookEventsRepo) FindByEventID(tx *gorm.DB, eventID string) (*domain.WebhookEvents, error) {
	var event domain.WebhookEvents
	return &event, tx.Where(&domain.WebhookEvents{EventID: eventID}).First(&event).Error
}

func (r *WebhookEventsRepo) List(tx *gorm.DB, filter WebhookEventsFilter) ([]domain.WebhookEvents, error) {
	q := tx.Model(&domain.WebhookEvents{})
	if filter.MerchantID != "" {
		q = q.Where("merchant_id = ?", filter.MerchantID)
	}
	if filter.EventType != "" {
		q = q.Where("event_type = ?", filter.EventType)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var events []domain.WebhookEvents
	return events, q.Order("created_at desc").Find(&events).Error
}

var dueStatuses = []domain.WebhookStatus{domain.WEBHOOK_PENDING, domain.WEBHOOK_RETRYING}

func (r *WebhookEventsRepo) ListDue(tx *gorm.DB, now time.Time, limit int) ([]domain.WebhookEvents, error) {
	var events []domain.WebhookEvents
	return events, tx.
		Where("status IN ? AND next_attempt_at <= ?", dueStatuses, now).
		Order("next_attempt_at asc").
		Limit(limit).
		Find(&events).Error
}

// Claim is the mutual-exclusion point: the row moves to in_flight only if it is
// still due, so concurrent claimers race on RowsAffected.
func (r *WebhookEventsRepo) Claim(tx *gorm.DB, eventID string, now time.Time) (bool, error) {
	res := tx.Model(&domain.WebhookEvents{}).
		Where("event_id = ? AND status IN ? AND next_attempt_at <= ?", eventID, dueStatuses, now).
		Update("status", domain.WEBHOOK_IN_FLIGHT)
	return res.RowsAffected == 1, res.Error
}

func (r *WebhookEventsRepo) Finish(tx *gorm.DB, eventID string, status domain.WebhookStatus, nextAttemptAt *time.Time, attemptCount int) error {
	if !domain.WEBHOOK_IN_FLIGHT.CanTransition(status) {
		return fmt.Errorf("finish %s: %w", status.ToString(), domain.ErrIllegalTransition)
	}

	return tx.Model(&domain.WebhookEvents{}).
		Where("event_id = ? AND status = ?", eventID, domain.WEBHOOK_IN_FLIGHT).
		Updates(map[string]any{
			"status":          status,
			"next_attempt_at": nextAttemptAt,
			"attempt_count":   attemptCount,
		}).Error
}

func (r *WebhookEventsRepo) RetryNow(tx *gorm.DB, eventID string, now time.Time) (bool, error) {
	res := tx.Model(&domain.WebhookEvents{}).
		Where("event_id = ? AND status = ?", eventID, domain.WEBHOOK_FAILED).
		Updates(map[string]any{
			"status":          domain.WEBHOOK_RETRYING,
			"next_attempt_at": now,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *WebhookEventsRepo) ReleaseStale(tx *gorm.DB, now time.Time, lease time.Duration) (int64, error) {
	res := tx.Model(&domain.WebhookEvents{}).
		Where("status = ? AND updated_at < ?", domain.WEBHOOK_IN_FLIGHT, now.Add(-lease)).
		Updates(map[string]any{
			"status":          domain.WEBHOOK_RETRYING,
			"next_attempt_at": now,
		})
	return res.RowsAffected, res.Error
}

func (r *WebhookEventsRepo) CreateAttempt(tx *gorm.DB, attempt *domain.WebhookAttempts) error {
	return tx.Create(attempt).Error
}

func (r *WebhookEventsRepo) ListAttempts(tx *gorm.DB, eventID string) ([]domain.WebhookAttempts, error) {
	var attempts []domain.WebhookAttempts
	return attempts, tx.
		Where(&domain.WebhookAttempts{EventID: eventID}).
		Order("created_at desc").
		Find(&attempts).Error
}
