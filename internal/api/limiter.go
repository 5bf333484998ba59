package api

import (
	"sync"

	"shareit/internal/config"

	"golang.org/x/time/rate"
)

const defaultBurst = 5

// keyLimiter keeps one token bucket per API client (or remote address).
type keyLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rps      float64
	burst    int
}

func newKeyLimiter(cfg config.APIRateLimitConfig) *keyLimiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	return &keyLimiter{rps: cfg.RPS, burst: burst}
}

func (l *keyLimiter) enabled() bool {
	return l != nil && l.rps > 0
}

// allow reports whether key may proceed. A disabled limiter allows everything.
func (l *keyLimiter) allow(key string) bool {
	if !l.enabled() {
		return true
	}
	return l.get(key).Allow()
}

func (l *keyLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}
