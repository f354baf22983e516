package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type QrPayments struct {
	Model
	ID         uint            `gorm:"primaryKey"`
	QrID       string          `gorm:"unique;size:36;not null"`
	CodeString string          `gorm:"unique;not null"` // 16 random bytes, hex encoded
	Amount     decimal.Decimal `gorm:"type:numeric;not null"`
	Status     QrStatus        `gorm:"type:int8;not null"`
	ExpiresAt  time.Time       `gorm:"not null"`
	MerchantID string          `gorm:"size:36;not null"`
	PaymentID  string          `gorm:"size:36"` // set when a payment consumes the code
}

type QrStatus uint8

const (
	QR_ACTIVE QrStatus = iota
	QR_USED
	QR_EXPIRED
)

var QrStatuses = [...]string{"active", "used", "expired"}

func (s QrStatus) ToString() string {
	return QrStatuses[s]
}

func (s QrStatus) IsTerminal() bool {
	return s == QR_USED || s == QR_EXPIRED
}

// USED and EXPIRED are both terminal and mutually exclusive.
func (s QrStatus) CanTransition(to QrStatus) bool {
	return s == QR_ACTIVE && (to == QR_USED || to == QR_EXPIRED)
}

func (q *QrPayments) IsExpiredAt(now time.Time) bool {
	return now.After(q.ExpiresAt)
}
