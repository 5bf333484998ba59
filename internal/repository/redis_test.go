package repository

import (
	"context"
	"testing"
	"time"

	"shareit/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(config.RedisConfig{Address: s.Addr()})
	defer client.Close()

	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	t.Run("RateLimit", func(t *testing.T) {
		callerID := int64(789)
		limit := 2
		window := time.Second

		// First request
		allowed, err := limiter.CheckRateLimit(ctx, callerID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Second request
		allowed, err = limiter.CheckRateLimit(ctx, callerID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Third request (exceeds limit)
		allowed, err = limiter.CheckRateLimit(ctx, callerID, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)

		assert.True(t, s.Exists(rateLimitKeyPrefix+"789"))
		assert.Equal(t, window, s.TTL(rateLimitKeyPrefix+"789"))

		// Wait for window to expire
		s.FastForward(window + time.Millisecond)

		// Should be allowed again
		allowed, err = limiter.CheckRateLimit(ctx, callerID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		l := NewRedisRateLimiter(nil)
		_, err := l.CheckRateLimit(ctx, 123, 1, time.Second)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("ServerDown", func(t *testing.T) {
		down, err := miniredis.Run()
		require.NoError(t, err)
		c := redis.NewClient(&redis.Options{Addr: down.Addr(), MaxRetries: -1})
		defer c.Close()
		down.Close()

		_, err = NewRedisRateLimiter(c).CheckRateLimit(ctx, 1, 1, time.Second)
		assert.Error(t, err)
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})

	t.Run("Close", func(t *testing.T) {
		assert.NoError(t, Close(nil))
	})
}
