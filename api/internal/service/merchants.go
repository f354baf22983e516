package service

import (
	"crypto/rand"
	"encoding/hex"
	"gateway/api/internal/domain"
	"gateway/api/internal/infra/postgres"
	"gateway/api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MerchantsService struct {
	repo repository.Merchants
	db   *gorm.DB
}

func NewMerchantsService(db *gorm.DB, repo repository.Merchants) *MerchantsService {
	return &MerchantsService{repo: repo, db: db}
}

func (s *MerchantsService) Create(name string, webhookUrl string, userID string) (*domain.Merchants, error) {
	apiKey := make([]byte, 32)
	if _, err := rand.Read(apiKey); err != nil {
		return nil, err
	}

	merchant := &domain.Merchants{
		MerchantName: name,
		MerchantID:   uuid.NewString(),
		ApiKey:       hex.EncodeToString(apiKey),
		WebhookUrl:   webhookUrl,
		UserID:       userID,
	}

	if err := s.repo.Create(s.db, merchant); err != nil {
		if postgres.IsDuplicate(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, err
	}

	return merchant, nil
}

func (s *MerchantsService) FindByID(merchantID string) (*domain.Merchants, error) {
	merchant, err := s.repo.FindByID(s.db, merchantID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("merchant")
		}
		return nil, err
	}
	return merchant, nil
}

func (s *MerchantsService) FindByApiKey(apiKey string) (*domain.Merchants, error) {
	merchant, err := s.repo.FindByApiKey(s.db, apiKey)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("api key")
		}
		return nil, err
	}
	return merchant, nil
}

func (s *MerchantsService) List() ([]domain.Merchants, error) {
	return s.repo.List(s.db)
}
