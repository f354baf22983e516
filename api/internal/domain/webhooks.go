package domain

import "time"

type WebhookEvents struct {
	ID            uint          `gorm:"primaryKey"`
	EventID       string        `gorm:"unique;size:36;not null"`
	EventType     string        `gorm:"size:64;not null"` // e.g. payment.completed
	Payload       string        `gorm:"type:text;not null"`
	MerchantID    string        `gorm:"size:36;not null"`
	PaymentID     string        `gorm:"size:36"`
	Status        WebhookStatus `gorm:"type:int8;not null"`
	AttemptCount  int           `gorm:"not null;default:0"`
	NextAttemptAt *time.Time    `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type WebhookAttempts struct {
	ID           uint          `gorm:"primaryKey"`
	AttemptID    string        `gorm:"unique;size:36;not null"`
	EventID      string        `gorm:"size:36;not null;index"`
	Status       AttemptStatus `gorm:"type:int8;not null"`
	ResponseCode *int
	ResponseBody string `gorm:"type:text"`
	CreatedAt    time.Time
}

type WebhookStatus uint8

const (
	WEBHOOK_PENDING WebhookStatus = iota
	WEBHOOK_RETRYING
	WEBHOOK_IN_FLIGHT // claimed by a worker, one attempt in progress
	WEBHOOK_SUCCESS
	WEBHOOK_FAILED
)

var WebhookStatuses = [...]string{"pending", "retrying", "in_flight", "success", "failed"}

func (s WebhookStatus) ToString() string {
	return WebhookStatuses[s]
}

func StrToWebhookStatus(str string) (WebhookStatus, bool) {
	for i, statusName := range WebhookStatuses {
		if str == statusName {
			return WebhookStatus(i), true
		}
	}
	return WEBHOOK_PENDING, false
}

func (s WebhookStatus) IsTerminal() bool {
	return s == WEBHOOK_SUCCESS || s == WEBHOOK_FAILED
}

// CanTransition is the single transition validator for webhook events.
// failed -> retrying is the manual retry edge, never taken by the dispatcher.
func (s WebhookStatus) CanTransition(to WebhookStatus) bool {
	switch s {
	case WEBHOOK_PENDING, WEBHOOK_RETRYING:
		return to == WEBHOOK_IN_FLIGHT
	case WEBHOOK_IN_FLIGHT:
		return to == WEBHOOK_SUCCESS || to == WEBHOOK_RETRYING || to == WEBHOOK_FAILED
	case WEBHOOK_FAILED:
		return to == WEBHOOK_RETRYING
	default:
		return false
	}
}

type AttemptStatus uint8

const (
	ATTEMPT_SUCCESS AttemptStatus = iota
	ATTEMPT_FAILED
)

var AttemptStatuses = [...]string{"success", "failed"}

func (s AttemptStatus) ToString() string {
	return AttemptStatuses[s]
}

// PaymentSnapshot is the immutable webhook payload: flat ids only, so the
// payload stays stable even if related rows change later.
type PaymentSnapshot struct {
	PaymentID       string `json:"payment_id"`
	MerchantID      string `json:"merchant_id"`
	UserID          string `json:"user_id"`
	PaymentMethodID string `json:"payment_method_id"`
	QrID            string `json:"qr_id,omitempty"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

func SnapshotPayment(p *Payments) PaymentSnapshot {
	return PaymentSnapshot{
		PaymentID:       p.PaymentID,
		MerchantID:      p.MerchantID,
		UserID:          p.UserID,
		PaymentMethodID: p.PaymentMethodID,
		QrID:            p.QrID,
		Amount:          p.Amount.String(),
		Currency:        p.Currency.ToString(),
		Status:          p.Status.ToString(),
		CreatedAt:       p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// DeliveryResult is what one HTTP delivery try produced.
type DeliveryResult struct {
	Code int
	Body string
}

func (r DeliveryResult) IsSuccess() bool {
	return r.Code >= 200 && r.Code < 300
}
