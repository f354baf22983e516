package repository

import (
	"gateway/api/internal/domain"
	"time"

	"gorm.io/gorm"
)

type Users interface {
	Create(tx *gorm.DB, user *domain.Users) error
	FindByUserID(tx *gorm.DB, userID string) (*domain.Users, error)
	FindByEmail(tx *gorm.DB, email string) (*domain.Users, error)
	List(tx *gorm.DB) ([]domain.Users, error)
}

type Merchants interface {
	FindByID(tx *gorm.DB, merchantID string) (*domain.Merchants, error)
	FindByApiKey(tx *gorm.DB, apiKey string) (*domain.Merchants, error)
	FindByName(tx *gorm.DB, merchantName string) (*domain.Merchants, error)
	List(tx *gorm.DB) ([]domain.Merchants, error)
	Create(tx *gorm.DB, merchant *domain.Merchants) error
}

type PaymentMethods interface {
	Create(tx *gorm.DB, method *domain.PaymentMethods) error
	FindByMethodID(tx *gorm.DB, methodID string) (*domain.PaymentMethods, error)
	ListByMerchant(tx *gorm.DB, merchantID string) ([]domain.PaymentMethods, error)
	Update(tx *gorm.DB, method *domain.PaymentMethods) error
	Delete(tx *gorm.DB, methodID string) error
}

type PaymentsFilter struct {
	MerchantID string
	UserID     string
	Status     *domain.PaymentStatus
}

type Payments interface {
	Create(tx *gorm.DB, payment *domain.Payments) error
	FindByPaymentID(tx *gorm.DB, paymentID string) (*domain.Payments, error)
	List(tx *gorm.DB, filter PaymentsFilter) ([]domain.Payments, error)
	// compare-and-swap on the current status, returns false when the row moved
	UpdateStatus(tx *gorm.DB, paymentID string, from, to domain.PaymentStatus) (bool, error)
}

type QrPaymentsFilter struct {
	MerchantID string
	Status     *domain.QrStatus
}

type QrPayments interface {
	Create(tx *gorm.DB, qr *domain.QrPayments) error
	FindByQrID(tx *gorm.DB, qrID string) (*domain.QrPayments, error)
	FindByCode(tx *gorm.DB, codeString string) (*domain.QrPayments, error)
	List(tx *gorm.DB, filter QrPaymentsFilter) ([]domain.QrPayments, error)
	// CAS active -> expired; false means another writer got there first
	MarkExpired(tx *gorm.DB, qrID string) (bool, error)
	// CAS active -> used, linking the consuming payment
	MarkUsed(tx *gorm.DB, qrID string, paymentID string) (bool, error)
	// bulk sweep of active codes past their expiry
	ExpireDue(tx *gorm.DB, now time.Time) (int64, error)
}

type WebhookEventsFilter struct {
	MerchantID string
	EventType  string
	Status     *domain.WebhookStatus
}

type WebhookEvents interface {
	Create(tx *gorm.DB, event *domain.WebhookEvents) error
	FindByEventID(tx *gorm.DB, eventID string) (*domain.WebhookEvents, error)
	List(tx *gorm.DB, filter WebhookEventsFilter) ([]domain.WebhookEvents, error)
	// due = pending/retrying with next_attempt_at <= now, oldest first
	ListDue(tx *gorm.DB, now time.Time, limit int) ([]domain.WebhookEvents, error)
	// CAS pending/retrying -> in_flight; exactly one concurrent claimer wins
	Claim(tx *gorm.DB, eventID string, now time.Time) (bool, error)
	// one status transition per attempt, only valid from in_flight
	Finish(tx *gorm.DB, eventID string, status domain.WebhookStatus, nextAttemptAt *time.Time, attemptCount int) error
	// manual retry: CAS failed -> retrying with next attempt now
	RetryNow(tx *gorm.DB, eventID string, now time.Time) (bool, error)
	// requeue in_flight rows orphaned by a dead worker
	ReleaseStale(tx *gorm.DB, now time.Time, lease time.Duration) (int64, error)
	CreateAttempt(tx *gorm.DB, attempt *domain.WebhookAttempts) error
	ListAttempts(tx *gorm.DB, eventID string) ([]domain.WebhookAttempts, error)
}

type Repositories struct {
	Users          Users
	Merchants      Merchants
	PaymentMethods PaymentMethods
	Payments       Payments
	QrPayments     QrPayments
	WebhookEvents  WebhookEvents
}

func New() *Repositories {
	return &Repositories{
		Users:          InitUsersRepo(),
		Merchants:      InitMerchantsRepo(),
		PaymentMethods: InitPaymentMethodsRepo(),
		Payments:       InitPaymentsRepo(),
		QrPayments:     InitQrPaymentsRepo(),
		WebhookEvents:  InitWebhookEventsRepo(),
	}
}
