package repository

import (
	"gateway/api/internal/domain"

	"gorm.io/gorm"
)

type PaymentsRepo struct {
}

func InitPaymentsRepo() *PaymentsRepo {
	return &PaymentsRepo{}
}

func (r *PaymentsRepo) Create(tx *gorm.DB, payment *domain.Payments) error {
	return tx.Create(payment).Error
}

func (r *PaymentsRepo) FindByPaymentID(tx *gorm.DB, paymentID string) (*domain.Payments, error) {
	var payment domain.Payments
	return &payment, tx.Where(&domain.Payments{PaymentID: paymentID}).First(&payment).Error
}

func (r *PaymentsRepo) List(tx *gorm.DB, filter PaymentsFilter) ([]domain.Payments, error) {
	q := tx.Model(&domain.Payments{})
	if filter.MerchantID != "" {
		q = q.Where("merchant_id = ?", filter.MerchantID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var payments []domain.Payments
	return payments, q.Order("created_at desc").Find(&payments).Error
}

func (r *PaymentsRepo) UpdateStatus(tx *gorm.DB, paymentID string, from, to domain.PaymentStatus) (bool, error) {
	res := tx.Model(&domain.Payments{}).
		Where("payment_id = ? AND status = ?", paymentID, from).
		Update("status", to)
	return res.RowsAffected == 1, res.Error
}
