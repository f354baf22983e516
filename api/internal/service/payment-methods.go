package service

import (
	"gateway/api/internal/domain"
	"gateway/api/internal/infra/postgres"
	"gateway/api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethodsService struct {
	repo      repository.PaymentMethods
	merchants repository.Merchants
	db        *gorm.DB
}

func NewPaymentMethodsService(db *gorm.DB, repo repository.PaymentMethods, merchants repository.Merchants) *PaymentMethodsService {
	return &PaymentMethodsService{repo: repo, merchants: merchants, db: db}
}

func (s *PaymentMethodsService) Create(merchantID, methodType, description string) (*domain.PaymentMethods, error) {
	if _, err := s.merchants.FindByID(s.db, merchantID); err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("merchant")
		}
		return nil, err
	}

	method := &domain.PaymentMethods{
		MethodID:    uuid.NewString(),
		MerchantID:  merchantID,
		Type:        methodType,
		Description: description,
	}

	if err := s.repo.Create(s.db, method); err != nil {
		return nil, err
	}

	return method, nil
}

func (s *PaymentMethodsService) FindByMethodID(methodID string) (*domain.PaymentMethods, error) {
	method, err := s.repo.FindByMethodID(s.db, methodID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("payment method")
		}
		return nil, err
	}
	return method, nil
}

func (s *PaymentMethodsService) ListByMerchant(merchantID string) ([]domain.PaymentMethods, error) {
	return s.repo.ListByMerchant(s.db, merchantID)
}

func (s *PaymentMethodsService) Update(methodID, methodType, description string) (*domain.PaymentMethods, error) {
	method, err := s.FindByMethodID(methodID)
	if err != nil {
		return nil, err
	}

	if methodType != "" {
		method.Type = methodType
	}
	if description != "" {
		method.Description = description
	}

	if err := s.repo.Update(s.db, method); err != nil {
		return nil, err
	}

	return method, nil
}

func (s *PaymentMethodsService) Delete(methodID string) error {
	if _, err := s.FindByMethodID(methodID); err != nil {
		return err
	}
	return s.repo.Delete(s.db, methodID)
}
