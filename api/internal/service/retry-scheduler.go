package service

import (
	"gateway/api/internal/config"
	"gateway/api/internal/domain"
	"math/rand"
	"time"
)

// RetrySchedulerService decides whether a failed event gets another chance
// and when. Exponential backoff with a cap and symmetric jitter.
type RetrySchedulerService struct {
	maxAttempts int
	base        time.Duration
	maxDelay    time.Duration
	jitter      float64

	randFn func() float64 // injected for deterministic tests
}

func NewRetrySchedulerService(config *config.Config) *RetrySchedulerService {
	return &RetrySchedulerService{
		maxAttempts: config.Webhook.MaxAttempts,
		base:        config.WebhookBaseDelay(),
		maxDelay:    config.WebhookMaxDelay(),
		jitter:      config.Webhook.JitterPercent,
		randFn:      rand.Float64,
	}
}

func (s *RetrySchedulerService) MaxAttempts() int {
	return s.maxAttempts
}

// Backoff returns the delay before the next try after `attempts` failed tries.
// attempts starts at 1.
func (s *RetrySchedulerService) Backoff(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}

	delay := s.base
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= s.maxDelay {
			delay = s.maxDelay
			break
		}
	}
	if delay > s.maxDelay {
		delay = s.maxDelay
	}

	// +-jitter, spreads out events scheduled together
	spread := 2*s.randFn() - 1 // [-1, 1)
	delay += time.Duration(float64(delay) * s.jitter * spread)

	return delay
}

// NextState maps an attempt count after a failed delivery to the event's next
// status. Exhausted events go terminal, everything else is rescheduled.
func (s *RetrySchedulerService) NextState(attempts int, now time.Time) (domain.WebhookStatus, *time.Time) {
	if attempts >= s.maxAttempts {
		return domain.WEBHOOK_FAILED, nil
	}

	next := now.Add(s.Backoff(attempts))
	return domain.WEBHOOK_RETRYING, &next
}
