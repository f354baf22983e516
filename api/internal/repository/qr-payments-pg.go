package repository

import (
	"gateway/api/internal/domain"
	"time"

	"gorm.io/gorm"
)

type QrPaymentsRepo struct {
}

func InitQrPaymentsRepo() *QrPaymentsRepo {
	return &QrPaymentsRepo{}
}

func (r *QrPaymentsRepo) Create(tx *gorm.DB, qr *domain.QrPayments) error {
	return tx.Create(qr).Error
}

func (r *QrPaymentsRepo) FindByQrID(tx *gorm.DB, qrID string) (*domain.QrPayments, error) {
	var qr domain.QrPayments
	return &qr, tx.Where(&domain.QrPayments{QrID: qrID}).First(&qr).Error
}

func (r *QrPaymentsRepo) FindByCode(tx *gorm.DB, codeString string) (*domain.QrPayments, error) {
	var qr domain.QrPayments
	return &qr, tx.Where(&domain.QrPayments{CodeString: codeString}).First(&qr).Error
}

func (r *QrPaymentsRepo) List(tx *gorm.DB, filter QrPaymentsFilter) ([]domain.QrPayments, error) {
	q := tx.Model(&domain.QrPayments{})
	if filter.MerchantID != "" {
		q = q.Where("merchant_id = ?", filter.MerchantID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var qrs []domain.QrPayments
	return qrs, q.Order("created_at desc").Find(&qrs).Error
}

func (r *QrPaymentsRepo) MarkExpired(tx *gorm.DB, qrID string) (bool, error) {
	res := tx.Model(&domain.QrPayments{}).
		Where("qr_id = ? AND status = ?", qrID, domain.QR_ACTIVE).
		Update("status", domain.QR_EXPIRED)
	return res.RowsAffected == 1, res.Error
}

func (r *QrPaymentsRepo) MarkUsed(tx *gorm.DB, qrID string, paymentID string) (bool, error) {
	res := tx.Model(&domain.QrPayments{}).
		Where("qr_id = ? AND status = ?", qrID, domain.QR_ACTIVE).
		Updates(map[string]any{"status": domain.QR_USED, "payment_id": paymentID})
	return res.RowsAffected == 1, res.Error
}

func (r *QrPaymentsRepo) ExpireDue(tx *gorm.DB, now time.Time) (int64, error) {
	res := tx.Model(&domain.QrPayments{}).
		Where("status = ? AND expires_at < ?", domain.QR_ACTIVE, now).
		Update("status", domain.QR_EXPIRED)
	return res.RowsAffected, res.Error
}
