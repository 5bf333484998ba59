package database

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentResolve(t *testing.T) {
	logger := zerolog.Nop()
	dbPath := filepath.Join(t.TempDir(), "concurrency.db")
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	f := seedFixture(t, db)
	ctx := context.Background()

	start := time.Now().Add(24 * time.Hour)
	booking := createBooking(t, db, f.item.ID, f.booker.ID, start, start.Add(time.Hour), models.StatusWaiting)

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(n int) {
			defer wg.Done()
			status := models.StatusApproved
			if n%2 == 1 {
				status = models.StatusRejected
			}
			results <- db.UpdateBookingStatusWithVersion(ctx, booking.ID, booking.Version, status)
		}(i)
	}

	wg.Wait()
	close(results)

	successCount := 0
	for err := range results {
		if err == nil {
			successCount++
			continue
		}
		assert.True(t, errors.Is(err, ErrConcurrentModification), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, successCount, "exactly one resolution must win")

	final, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, final.Status.IsResolved())
	assert.Equal(t, int64(2), final.Version)
}
