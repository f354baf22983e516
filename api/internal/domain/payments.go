package domain

import (
	"github.com/shopspring/decimal"
)

type Payments struct {
	Model
	ID              uint            `gorm:"primaryKey"`
	PaymentID       string          `gorm:"unique;size:36;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric;not null"`
	Currency        Currency        `gorm:"type:int8;not null"`
	Status          PaymentStatus   `gorm:"type:int8;not null"`
	MerchantID      string          `gorm:"size:36;not null"`
	UserID          string          `gorm:"size:36;not null"`
	PaymentMethodID string          `gorm:"size:36;not null"`
	QrID            string          `gorm:"size:36"` // empty when not a qr payment
}

type PaymentStatus uint8

const (
	PAYMENT_PENDING PaymentStatus = iota
	PAYMENT_PROCESSING
	PAYMENT_COMPLETED
	PAYMENT_FAILED
	PAYMENT_CANCELED
)

var PaymentStatuses = [...]string{"pending", "processing", "completed", "failed", "canceled"}

func (s PaymentStatus) ToString() string {
	return PaymentStatuses[s]
}

func StrToPaymentStatus(str string) (PaymentStatus, bool) {
	for i, statusName := range PaymentStatuses {
		if str == statusName {
			return PaymentStatus(i), true
		}
	}
	return PAYMENT_PENDING, false
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PAYMENT_COMPLETED || s == PAYMENT_FAILED || s == PAYMENT_CANCELED
}

// every legal transition lives here, nowhere else
func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	switch s {
	case PAYMENT_PENDING:
		return to == PAYMENT_PROCESSING || to == PAYMENT_COMPLETED || to == PAYMENT_FAILED || to == PAYMENT_CANCELED
	case PAYMENT_PROCESSING:
		return to == PAYMENT_COMPLETED || to == PAYMENT_FAILED || to == PAYMENT_CANCELED
	default:
		return false
	}
}

// EventType is the webhook event tag announced for this status.
func (s PaymentStatus) EventType() string {
	return "payment." + s.ToString()
}
