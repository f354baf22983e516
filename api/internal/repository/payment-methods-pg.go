package repository

import (
	"gateway/api/internal/domain"

	"gorm.io/gorm"
)

type PaymentMethodsRepo struct {
}

func InitPaymentMethodsRepo() *PaymentMethodsRepo {
	return &PaymentMethodsRepo{}
}

func (r *PaymentMethodsRepo) Create(tx *gorm.DB, method *domain.PaymentMethods) error {
	return tx.Create(method).Error
}

func (r *PaymentMethodsRepo) FindByMethodID(tx *gorm.DB, methodID string) (*domain.PaymentMethods, error) {
	var method domain.PaymentMethods
	return &method, tx.Where(&domain.PaymentMethods{MethodID: methodID}).First(&method).Error
}

func (r *PaymentMethodsRepo) ListByMerchant(tx *gorm.DB, merchantID string) ([]domain.PaymentMethods, error) {
	var methods []domain.PaymentMethods
	return methods, tx.Where(&domain.PaymentMethods{MerchantID: merchantID}).Order("created_at desc").Find(&methods).Error
}

func (r *PaymentMethodsRepo) Update(tx *gorm.DB, method *domain.PaymentMethods) error {
	return tx.Save(method).Error
}

func (r *PaymentMethodsRepo) Delete(tx *gorm.DB, methodID string) error {
	return tx.Where(&domain.PaymentMethods{MethodID: methodID}).Delete(&domain.PaymentMethods{}).Error
}
