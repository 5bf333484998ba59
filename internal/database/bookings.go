package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const bookingColumns = `id, item_id, booker_id, status, start_at, end_at, created_at, updated_at, version`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (
				item_id, booker_id, status, start_at, end_at, created_at, updated_at, version
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	booking.Start = booking.Start.UTC()
	booking.End = booking.End.UTC()

	result, err := db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		string(booking.Status),
		booking.Start,
		booking.End,
		now,
		now,
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1

	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	if err := db.GetContext(ctx, &booking, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrBookingNotFound, id)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// UpdateBookingStatusWithVersion moves a WAITING booking to status if nobody changed it since fromVersion.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status models.BookingStatus) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ?
              WHERE id = ? AND version = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, string(status), time.Now().UTC(), id, fromVersion, string(models.StatusWaiting))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func (db *DB) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, err
	}

	var bookings []*models.Booking
	if err := db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	db.logger.Debug().
		Int64("booker_id", filter.BookerID).
		Int64("owner_id", filter.OwnerID).
		Str("state", filter.State.String()).
		Int("count", len(bookings)).
		Msg("bookings listed")

	return bookings, nil
}

// GetLastItemBooking returns the most recent finished, non-rejected booking of an item, or nil.
func (db *DB) GetLastItemBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query, args, err := buildLastItemBookingQuery(itemID, now.UTC())
	if err != nil {
		return nil, err
	}
	return db.getOptionalBooking(ctx, query, args)
}

// GetNextItemBooking returns the soonest upcoming, non-rejected booking of an item, or nil.
func (db *DB) GetNextItemBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query, args, err := buildNextItemBookingQuery(itemID, now.UTC())
	if err != nil {
		return nil, err
	}
	return db.getOptionalBooking(ctx, query, args)
}

func (db *DB) getOptionalBooking(ctx context.Context, query string, args []interface{}) (*models.Booking, error) {
	var booking models.Booking
	if err := db.GetContext(ctx, &booking, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item booking: %w", err)
	}
	return &booking, nil
}
