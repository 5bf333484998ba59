package service

import (
	"context"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// Projector computes the last/next booking summaries shown on item views.
type Projector struct {
	bookings domain.BookingStore
}

func NewProjector(bookings domain.BookingStore) *Projector {
	return &Projector{bookings: bookings}
}

func (p *Projector) LastBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingShort, error) {
	b, err := p.bookings.GetLastItemBooking(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return b.Short(), nil
}

func (p *Projector) NextBooking(ctx context.Context, itemID int64, now time.Time) (*models.BookingShort, error) {
	b, err := p.bookings.GetNextItemBooking(ctx, itemID, now)
	if err != nil {
		return nil, err
	}
	return b.Short(), nil
}

// Attach fills both projections on view.
func (p *Projector) Attach(ctx context.Context, view *models.ItemView, now time.Time) error {
	last, err := p.LastBooking(ctx, view.ID, now)
	if err != nil {
		return err
	}
	next, err := p.NextBooking(ctx, view.ID, now)
	if err != nil {
		return err
	}
	view.LastBooking = last
	view.NextBooking = next
	return nil
}
