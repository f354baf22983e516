package service

import (
	"context"
	"gateway/api/internal/config"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"gateway/pkg/clock"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Users interface {
	Create(name, email, password string) (*domain.Users, error)
	FindByUserID(userID string) (*domain.Users, error)
	List() ([]domain.Users, error)
}

type Merchants interface {
	Create(name string, webhookUrl string, userID string) (*domain.Merchants, error)
	FindByID(merchantID string) (*domain.Merchants, error)
	FindByApiKey(apiKey string) (*domain.Merchants, error)
	List() ([]domain.Merchants, error)
}

type PaymentMethods interface {
	Create(merchantID, methodType, description string) (*domain.PaymentMethods, error)
	FindByMethodID(methodID string) (*domain.PaymentMethods, error)
	ListByMerchant(merchantID string) ([]domain.PaymentMethods, error)
	Update(methodID, methodType, description string) (*domain.PaymentMethods, error)
	Delete(methodID string) error
}

type Payments interface {
	Create(data CreatePayment) (*domain.Payments, error)
	// the status projector: payment write + webhook event, both or neither
	UpdateStatus(paymentID string, statusStr string) (*domain.Payments, error)
	FindByPaymentID(paymentID string) (*domain.Payments, error)
	List(filter repository.PaymentsFilter) ([]domain.Payments, error)
}

type QrPayments interface {
	Create(merchantID string, amount decimal.Decimal, ttl time.Duration) (*domain.QrPayments, error)
	// lazy expiry on lookup
	FindByCode(codeString string) (*domain.QrPayments, error)
	FindByQrID(qrID string) (*domain.QrPayments, error)
	List(filter repository.QrPaymentsFilter) ([]domain.QrPayments, error)
	StartExpirySweep(ctx context.Context)
}

type QrCodes interface {
	// generates qr code png (base64) and saves it to cache
	New(content string) (string, error)
	// returns qr code from cache or generates new one
	FindOrNew(content string) (string, error)
}

type WebhookEvents interface {
	Emit(tx *gorm.DB, eventType string, payload any, merchantID string, paymentID string) (string, error)
	FindByEventID(eventID string) (*domain.WebhookEvents, error)
	List(filter repository.WebhookEventsFilter) ([]domain.WebhookEvents, error)
	ListAttempts(eventID string) ([]domain.WebhookAttempts, error)
	RetryNow(eventID string) error
}

type WebhookSender interface {
	Send(url string, payload []byte) (*domain.DeliveryResult, error)
	UpdateList(proxies []string)
	GetList() []string
}

type RetryScheduler interface {
	MaxAttempts() int
	Backoff(attempts int) time.Duration
	NextState(attempts int, now time.Time) (domain.WebhookStatus, *time.Time)
}

type WebhookDispatcher interface {
	Start(ctx context.Context)
}

type Services struct {
	Users          Users
	Merchants      Merchants
	PaymentMethods PaymentMethods
	Payments       Payments
	QrPayments     QrPayments
	QrCodes        QrCodes
	WebhookEvents  WebhookEvents
	WebhookSender  WebhookSender
	Dispatcher     WebhookDispatcher
}

func NewServices(db *gorm.DB, l logger.Logger, config *config.Config, clk clock.Clock) *Services {
	repos := repository.New()

	sender := NewWebhookSenderService(config.Webhook.ProxyList, config.WebhookTimeout(), l)
	scheduler := NewRetrySchedulerService(config)
	events := NewWebhookEventsService(db, repos.WebhookEvents, clk, l)

	return &Services{
		Users:          NewUsersService(db, repos.Users),
		Merchants:      NewMerchantsService(db, repos.Merchants),
		PaymentMethods: NewPaymentMethodsService(db, repos.PaymentMethods, repos.Merchants),
		Payments:       NewPaymentsService(db, repos.Payments, repos.QrPayments, repos.PaymentMethods, repos.Merchants, events, clk, l),
		QrPayments:     NewQrPaymentsService(db, repos.QrPayments, repos.Merchants, clk, l, config),
		QrCodes:        NewQrCodesService(),
		WebhookEvents:  events,
		WebhookSender:  sender,
		Dispatcher:     NewWebhookDispatcherService(db, repos.WebhookEvents, repos.Merchants, sender, scheduler, clk, l, config),
	}
}
