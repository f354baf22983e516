package service

import (
	"gateway/api/internal/domain"
	"testing"
	"time"
)

func newTestScheduler(randFn func() float64) *RetrySchedulerService {
	return &RetrySchedulerService{
		maxAttempts: 5,
		base:        30 * time.Second,
		maxDelay:    time.Hour,
		jitter:      0.2,
		randFn:      randFn,
	}
}

func TestBackoffDoubles(t *testing.T) {
	s := newTestScheduler(func() float64 { return 0.5 }) // zero jitter

	cases := []struct {
		attempts int
		want     time.Duration
	}{
		{1, 30 * time.Second},
		{2, 60 * time.Second},
		{3, 120 * time.Second},
		{4, 240 * time.Second},
		{5, 480 * time.Second},
	}
	for _, c := range cases {
		if got := s.Backoff(c.attempts); got != c.want {
			t.Fatalf("attempts %d: expected %v, got %v", c.attempts, c.want, got)
		}
	}
}

func TestBackoffCapped(t *testing.T) {
	s := newTestScheduler(func() float64 { return 0.5 })

	// 30s * 2^9 is far past one hour
	if got := s.Backoff(10); got != time.Hour {
		t.Fatalf("expected cap at %v, got %v", time.Hour, got)
	}
	if got := s.Backoff(50); got != time.Hour {
		t.Fatalf("expected cap at %v, got %v", time.Hour, got)
	}
}

func TestBackoffJitterBounds(t *testing.T) {
	low := newTestScheduler(func() float64 { return 0 })  // -20%
	high := newTestScheduler(func() float64 { return 1 }) // +20%

	base := 30 * time.Second
	if got := low.Backoff(1); got != base-base/5 {
		t.Fatalf("expected %v, got %v", base-base/5, got)
	}
	if got := high.Backoff(1); got != base+base/5 {
		t.Fatalf("expected %v, got %v", base+base/5, got)
	}
}

func TestNextStateReschedules(t *testing.T) {
	s := newTestScheduler(func() float64 { return 0.5 })
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	status, next := s.NextState(1, now)
	if status != domain.WEBHOOK_RETRYING {
		t.Fatalf("expected retrying, got %s", status.ToString())
	}
	if next == nil || !next.Equal(now.Add(30*time.Second)) {
		t.Fatalf("expected next attempt at %v, got %v", now.Add(30*time.Second), next)
	}
}

func TestNextStateExhausts(t *testing.T) {
	s := newTestScheduler(func() float64 { return 0.5 })
	now := time.Now()

	status, next := s.NextState(5, now)
	if status != domain.WEBHOOK_FAILED {
		t.Fatalf("expected failed, got %s", status.ToString())
	}
	if next != nil {
		t.Fatalf("exhausted event must not be rescheduled, got %v", *next)
	}

	// past the limit stays terminal too
	status, _ = s.NextState(6, now)
	if status != domain.WEBHOOK_FAILED {
		t.Fatalf("expected failed, got %s", status.ToString())
	}
}
