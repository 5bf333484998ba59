package database

import (
	"context"
	"io"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDB_ErrorPaths(t *testing.T) {
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	db.Close() // Close the DB to trigger errors

	ctx := context.Background()

	t.Run("CreateBooking_Error", func(t *testing.T) {
		err := db.CreateBooking(ctx, &models.Booking{})
		assert.Error(t, err)
	})

	t.Run("ListBookings_Error", func(t *testing.T) {
		_, err := db.ListBookings(ctx, models.BookingFilter{BookerID: 1, Now: time.Now()})
		assert.Error(t, err)
	})

	t.Run("UpdateStatus_Error", func(t *testing.T) {
		err := db.UpdateBookingStatusWithVersion(ctx, 1, 1, models.StatusApproved)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrConcurrentModification)
	})

	t.Run("GetItem_Error", func(t *testing.T) {
		_, err := db.GetItemByID(ctx, 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("OwnerHasItems_Error", func(t *testing.T) {
		_, err := db.OwnerHasItems(ctx, 1)
		assert.Error(t, err)
	})

	t.Run("CreateUser_Error", func(t *testing.T) {
		err := db.CreateUser(ctx, &models.User{Name: "x", Email: "x@example.com"})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("Ping_Error", func(t *testing.T) {
		assert.Error(t, db.Ping(ctx))
	})
}

func TestDB_UnsupportedState(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.ListBookings(context.Background(), models.BookingFilter{
		BookerID: 1,
		State:    models.BookingState(42),
		Now:      time.Now(),
	})
	assert.Error(t, err)
}
