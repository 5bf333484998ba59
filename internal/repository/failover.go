package repository

import (
	"context"
	"sync"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

const failoverRetryInterval = time.Minute

// FailoverRateLimiter uses the primary limiter until it fails, then serves from
// the fallback and probes the primary again once per retry interval.
type FailoverRateLimiter struct {
	primary  domain.RateLimiter
	fallback domain.RateLimiter
	logger   *zerolog.Logger

	mu        sync.Mutex
	isDown    bool
	lastCheck time.Time
	now       func() time.Time
}

func NewFailoverRateLimiter(primary, fallback domain.RateLimiter, logger *zerolog.Logger) *FailoverRateLimiter {
	return &FailoverRateLimiter{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *FailoverRateLimiter) usePrimary() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isDown {
		return true
	}
	if r.now().Sub(r.lastCheck) > failoverRetryInterval {
		r.lastCheck = r.now()
		return true
	}
	return false
}

func (r *FailoverRateLimiter) markDown(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isDown {
		r.logger.Error().Err(err).Msg("Primary rate limiter failed, falling back to memory")
	}
	r.isDown = true
	r.lastCheck = r.now()
}

func (r *FailoverRateLimiter) markUp() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.isDown {
		r.logger.Info().Msg("Primary rate limiter recovered")
	}
	r.isDown = false
}

// IsDegraded reports whether requests are currently served by the fallback.
func (r *FailoverRateLimiter) IsDegraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isDown
}

func (r *FailoverRateLimiter) CheckRateLimit(ctx context.Context, callerID int64, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		allowed, err := r.primary.CheckRateLimit(ctx, callerID, limit, window)
		if err == nil {
			r.markUp()
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, callerID, limit, window)
}
