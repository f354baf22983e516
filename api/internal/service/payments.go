package service

import (
	"gateway/api/internal/domain"
	"gateway/api/internal/infra/postgres"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"gateway/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentsService writes payments and projects every status change into a
// webhook event inside the same transaction.
type PaymentsService struct {
	repo      repository.Payments
	qr        repository.QrPayments
	methods   repository.PaymentMethods
	merchants repository.Merchants
	events    WebhookEvents

	db  *gorm.DB
	clk clock.Clock
	l   logger.Logger
}

func NewPaymentsService(db *gorm.DB, repo repository.Payments, qr repository.QrPayments, methods repository.PaymentMethods, merchants repository.Merchants, events WebhookEvents, clk clock.Clock, l logger.Logger) *PaymentsService {
	return &PaymentsService{repo: repo, qr: qr, methods: methods, merchants: merchants, events: events, db: db, clk: clk, l: l}
}

type CreatePayment struct {
	Amount          decimal.Decimal
	Currency        string
	MerchantID      string
	UserID          string
	PaymentMethodID string
	QrID            string // optional
}

func (s *PaymentsService) Create(data CreatePayment) (*domain.Payments, error) {
	if !data.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	currency := domain.StrToCurrency(data.Currency)
	if currency.IsNone() {
		return nil, domain.ErrInvalidCurrency
	}

	if _, err := s.merchants.FindByID(s.db, data.MerchantID); err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("merchant")
		}
		return nil, err
	}

	if _, err := s.methods.FindByMethodID(s.db, data.PaymentMethodID); err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("payment method")
		}
		return nil, err
	}

	payment := &domain.Payments{
		PaymentID:       uuid.NewString(),
		Amount:          data.Amount,
		Currency:        currency,
		Status:          domain.PAYMENT_PENDING,
		MerchantID:      data.MerchantID,
		UserID:          data.UserID,
		PaymentMethodID: data.PaymentMethodID,
		QrID:            data.QrID,
	}
	payment.CreatedAt = s.clk.Now()

	// payment row, qr consumption and announcement land together or not at all
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if data.QrID != "" {
			if err := s.consumeQrCode(tx, data.QrID, payment.PaymentID); err != nil {
				return err
			}
		}

		if err := s.repo.Create(tx, payment); err != nil {
			return err
		}

		_, err := s.events.Emit(tx, payment.Status.EventType(), domain.SnapshotPayment(payment), payment.MerchantID, payment.PaymentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *PaymentsService) consumeQrCode(tx *gorm.DB, qrID string, paymentID string) error {
	qr, err := s.qr.FindByQrID(tx, qrID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return domain.WrapNotFound("qr payment")
		}
		return err
	}

	if qr.Status == domain.QR_ACTIVE && qr.IsExpiredAt(s.clk.Now()) {
		// lazy correction, same as a lookup would do; runs on s.db because the
		// expired error rolls back the enclosing payment transaction and the
		// flip has to survive it
		if _, err := s.qr.MarkExpired(s.db, qrID); err != nil {
			return err
		}
		return domain.ErrQrCodeExpired
	}

	ok, err := s.qr.MarkUsed(tx, qrID, paymentID)
	if err != nil {
		return err
	}
	if !ok {
		switch qr.Status {
		case domain.QR_USED:
			return domain.ErrQrCodeUsed
		default:
			return domain.ErrQrCodeExpired
		}
	}

	return nil
}

// UpdateStatus is the payment status projector: the status write and the
// webhook event append are one logical operation.
func (s *PaymentsService) UpdateStatus(paymentID string, statusStr string) (*domain.Payments, error) {
	status, ok := domain.StrToPaymentStatus(statusStr)
	if !ok {
		return nil, domain.ErrInvalidStatus
	}

	payment, err := s.FindByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}

	if !payment.Status.CanTransition(status) {
		return nil, domain.ErrIllegalTransition
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		moved, err := s.repo.UpdateStatus(tx, paymentID, payment.Status, status)
		if err != nil {
			return err
		}
		if !moved { // row changed under us
			return domain.ErrIllegalTransition
		}

		payment.Status = status
		_, err = s.events.Emit(tx, status.EventType(), domain.SnapshotPayment(payment), payment.MerchantID, payment.PaymentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (s *PaymentsService) FindByPaymentID(paymentID string) (*domain.Payments, error) {
	payment, err := s.repo.FindByPaymentID(s.db, paymentID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("payment")
		}
		return nil, err
	}
	return payment, nil
}

func (s *PaymentsService) List(filter repository.PaymentsFilter) ([]domain.Payments, error) {
	return s.repo.List(s.db, filter)
}
