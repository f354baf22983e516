package service

import (
	"errors"
	"gateway/api/internal/config"
	"gateway/api/internal/domain"
	"gateway/api/internal/logger"
	"gateway/api/internal/repository"
	"gateway/pkg/clock"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeQrRepo struct {
	mu  sync.Mutex
	qrs map[string]*domain.QrPayments // by qr id
}

func newFakeQrRepo() *fakeQrRepo {
	return &fakeQrRepo{qrs: map[string]*domain.QrPayments{}}
}

func (r *fakeQrRepo) Create(tx *gorm.DB, qr *domain.QrPayments) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *qr
	r.qrs[qr.QrID] = &cp
	return nil
}

func (r *fakeQrRepo) FindByQrID(tx *gorm.DB, qrID string) (*domain.QrPayments, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qr, ok := r.qrs[qrID]
	if !ok {
		return nil, domain.WrapNotFound("qr payment")
	}
	cp := *qr
	return &cp, nil
}

func (r *fakeQrRepo) FindByCode(tx *gorm.DB, codeString string) (*domain.QrPayments, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, qr := range r.qrs {
		if qr.CodeString == codeString {
			cp := *qr
			return &cp, nil
		}
	}
	return nil, domain.WrapNotFound("qr payment")
}

func (r *fakeQrRepo) List(tx *gorm.DB, filter repository.QrPaymentsFilter) ([]domain.QrPayments, error) {
	return nil, nil
}

func (r *fakeQrRepo) MarkExpired(tx *gorm.DB, qrID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qr, ok := r.qrs[qrID]
	if !ok || qr.Status != domain.QR_ACTIVE {
		return false, nil
	}
	qr.Status = domain.QR_EXPIRED
	return true, nil
}

func (r *fakeQrRepo) MarkUsed(tx *gorm.DB, qrID string, paymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	qr, ok := r.qrs[qrID]
	if !ok || qr.Status != domain.QR_ACTIVE {
		return false, nil
	}
	qr.Status = domain.QR_USED
	qr.PaymentID = paymentID
	return true, nil
}

func (r *fakeQrRepo) ExpireDue(tx *gorm.DB, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, qr := range r.qrs {
		if qr.Status == domain.QR_ACTIVE && now.After(qr.ExpiresAt) {
			qr.Status = domain.QR_EXPIRED
			n++
		}
	}
	return n, nil
}

func newTestQrService(repo *fakeQrRepo, clk clock.Clock) *QrPaymentsService {
	merchants := &fakeMerchantsRepo{merchants: map[string]*domain.Merchants{
		"m1": {MerchantID: "m1", WebhookUrl: "https://shop.example/hook"},
	}}

	cfg := &config.Config{}
	cfg.Qr.DefaultTTLMinutes = 30
	cfg.Qr.SweepIntervalSeconds = 60

	return NewQrPaymentsService(nil, repo, merchants, clk, logger.Logger{}, cfg)
}

func TestQrCreate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFake(now)
	repo := newFakeQrRepo()
	s := newTestQrService(repo, clk)

	qr, err := s.Create("m1", decimal.NewFromInt(150), 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if qr.Status != domain.QR_ACTIVE {
		t.Fatalf("expected active, got %s", qr.Status.ToString())
	}
	if len(qr.CodeString) != 32 { // 16 bytes hex
		t.Fatalf("expected 32 hex chars, got %d", len(qr.CodeString))
	}
	if !qr.ExpiresAt.Equal(now.Add(10 * time.Minute)) {
		t.Fatalf("expected expiry %v, got %v", now.Add(10*time.Minute), qr.ExpiresAt)
	}
}

func TestQrCreateDefaultTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFake(now)
	s := newTestQrService(newFakeQrRepo(), clk)

	qr, err := s.Create("m1", decimal.NewFromInt(150), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !qr.ExpiresAt.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("expected default ttl expiry %v, got %v", now.Add(30*time.Minute), qr.ExpiresAt)
	}
}

func TestQrCreateValidation(t *testing.T) {
	clk := clock.NewFake(time.Now())
	s := newTestQrService(newFakeQrRepo(), clk)

	if _, err := s.Create("m1", decimal.NewFromInt(-5), 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := s.Create("m1", decimal.Zero, 0); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for zero, got %v", err)
	}
	if _, err := s.Create("nobody", decimal.NewFromInt(5), 0); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown merchant, got %v", err)
	}
}

func TestQrLookupExpiresLazily(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFake(now)
	repo := newFakeQrRepo()
	s := newTestQrService(repo, clk)

	qr, err := s.Create("m1", decimal.NewFromInt(150), 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	// still valid one second before the deadline
	clk.Set(qr.ExpiresAt)
	if _, err := s.FindByCode(qr.CodeString); err != nil {
		t.Fatalf("lookup at the expiry instant must succeed, got %v", err)
	}

	clk.Advance(time.Second)
	if _, err := s.FindByCode(qr.CodeString); !errors.Is(err, domain.ErrQrCodeExpired) {
		t.Fatalf("expected expired, got %v", err)
	}

	// the lookup flipped the row
	stored, _ := repo.FindByQrID(nil, qr.QrID)
	if stored.Status != domain.QR_EXPIRED {
		t.Fatalf("expected stored status expired, got %s", stored.Status.ToString())
	}

	// repeat lookup is idempotent
	if _, err := s.FindByCode(qr.CodeString); !errors.Is(err, domain.ErrQrCodeExpired) {
		t.Fatalf("expected expired on second lookup, got %v", err)
	}
}

func TestQrLookupUnknownCode(t *testing.T) {
	s := newTestQrService(newFakeQrRepo(), clock.NewFake(time.Now()))

	if _, err := s.FindByCode("deadbeef"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestQrSweep(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFake(now)
	repo := newFakeQrRepo()
	s := newTestQrService(repo, clk)

	short, _ := s.Create("m1", decimal.NewFromInt(10), 5*time.Minute)
	long, _ := s.Create("m1", decimal.NewFromInt(20), time.Hour)
	used, _ := s.Create("m1", decimal.NewFromInt(30), 5*time.Minute)
	repo.MarkUsed(nil, used.QrID, "p1")

	clk.Advance(10 * time.Minute)
	s.SweepOnce()

	stored, _ := repo.FindByQrID(nil, short.QrID)
	if stored.Status != domain.QR_EXPIRED {
		t.Fatalf("expected short code expired, got %s", stored.Status.ToString())
	}

	stored, _ = repo.FindByQrID(nil, long.QrID)
	if stored.Status != domain.QR_ACTIVE {
		t.Fatalf("sweep must not touch live codes, got %s", stored.Status.ToString())
	}

	stored, _ = repo.FindByQrID(nil, used.QrID)
	if stored.Status != domain.QR_USED {
		t.Fatalf("sweep must not touch used codes, got %s", stored.Status.ToString())
	}

	// second sweep finds nothing
	n, _ := repo.ExpireDue(nil, clk.Now())
	if n != 0 {
		t.Fatalf("expected idempotent sweep, expired %d more", n)
	}
}
