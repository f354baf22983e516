package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"gateway/api/internal/config"
	"gateway/api/internal/domain"
	"gateway/api/internal/infra/postgres"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"gateway/pkg/clock"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QrPaymentsService owns the qr code lifecycle, including both expiry
// enforcement points: lazy on lookup and the periodic sweep.
type QrPaymentsService struct {
	repo      repository.QrPayments
	merchants repository.Merchants

	db     *gorm.DB
	clk    clock.Clock
	l      logger.Logger
	config *config.Config
}

func NewQrPaymentsService(db *gorm.DB, repo repository.QrPayments, merchants repository.Merchants, clk clock.Clock, l logger.Logger, config *config.Config) *QrPaymentsService {
	return &QrPaymentsService{repo: repo, merchants: merchants, db: db, clk: clk, l: l, config: config}
}

func (s *QrPaymentsService) Create(merchantID string, amount decimal.Decimal, ttl time.Duration) (*domain.QrPayments, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := s.merchants.FindByID(s.db, merchantID); err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("merchant")
		}
		return nil, err
	}

	if ttl <= 0 {
		ttl = s.config.QrDefaultTTL()
	}

	code := make([]byte, 16)
	if _, err := rand.Read(code); err != nil {
		return nil, err
	}

	qr := &domain.QrPayments{
		QrID:       uuid.NewString(),
		CodeString: hex.EncodeToString(code),
		Amount:     amount,
		Status:     domain.QR_ACTIVE,
		ExpiresAt:  s.clk.Now().Add(ttl),
		MerchantID: merchantID,
	}

	if err := s.repo.Create(s.db, qr); err != nil {
		if postgres.IsDuplicate(err) {
			return nil, domain.ErrDuplicateKey
		}
		return nil, err
	}

	return qr, nil
}

// FindByCode is the lazy enforcement point: a lookup of an expired but still
// active code flips it before reporting the expiry.
func (s *QrPaymentsService) FindByCode(codeString string) (*domain.QrPayments, error) {
	qr, err := s.repo.FindByCode(s.db, codeString)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("qr code")
		}
		return nil, err
	}

	if qr.Status == domain.QR_ACTIVE && qr.IsExpiredAt(s.clk.Now()) {
		// the CAS makes racing a sweep harmless, the loser is a no-op
		if _, err := s.repo.MarkExpired(s.db, qr.QrID); err != nil {
			return nil, err
		}
		return nil, domain.ErrQrCodeExpired
	}

	if qr.Status == domain.QR_EXPIRED {
		return nil, domain.ErrQrCodeExpired
	}

	return qr, nil
}

func (s *QrPaymentsService) FindByQrID(qrID string) (*domain.QrPayments, error) {
	qr, err := s.repo.FindByQrID(s.db, qrID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.WrapNotFound("qr payment")
		}
		return nil, err
	}
	return qr, nil
}

func (s *QrPaymentsService) List(filter repository.QrPaymentsFilter) ([]domain.QrPayments, error) {
	return s.repo.List(s.db, filter)
}

// StartExpirySweep runs the eager enforcement point on a fixed interval.
func (s *QrPaymentsService) StartExpirySweep(ctx context.Context) {
	go func() {
		s.l.Info("qr expiry sweep started", "interval", s.config.QrSweepInterval().String())

		ticker := time.NewTicker(s.config.QrSweepInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.l.Info("qr expiry sweep stopped")
				return
			case <-ticker.C:
				s.SweepOnce()
			}
		}
	}()
}

func (s *QrPaymentsService) SweepOnce() {
	expired, err := s.repo.ExpireDue(s.db, s.clk.Now())
	if err != nil {
		s.l.Error("qr expiry sweep error: " + err.Error())
		return
	}
	if expired > 0 {
		s.l.Info("qr codes expired by sweep", "count", expired)
	}
}
