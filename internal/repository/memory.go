package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is a fixed-window limiter kept in process memory.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	windows map[int64]*rateLimitEntry
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		windows: make(map[int64]*rateLimitEntry),
	}
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryRateLimiter) CheckRateLimit(ctx context.Context, callerID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.windows[callerID]
	if !ok || now.After(entry.expiresAt) {
		entry = &rateLimitEntry{expiresAt: now.Add(window)}
		r.windows[callerID] = entry
	}
	entry.count++

	return entry.count <= limit, nil
}

// Sweep drops expired windows so idle callers do not accumulate.
func (r *MemoryRateLimiter) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.windows {
		if now.After(entry.expiresAt) {
			delete(r.windows, id)
			removed++
		}
	}
	return removed
}
