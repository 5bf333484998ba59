package service

import (
	"errors"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// NewBookingRequest validates a reservation request before any lookup happens.
func NewBookingRequest(itemID int64, start, end time.Time) (models.BookingRequest, error) {
	if itemID <= 0 {
		return models.BookingRequest{}, domain.Validationf("item id must be positive")
	}
	if start.IsZero() || end.IsZero() {
		return models.BookingRequest{}, domain.Validationf("start and end are required")
	}
	if !start.Before(end) {
		return models.BookingRequest{}, domain.Validationf("booking start must be before its end")
	}
	return models.BookingRequest{ItemID: itemID, Start: start.UTC(), End: end.UTC()}, nil
}

// NewBookingQuery parses the raw state filter and checks the paging window.
func NewBookingQuery(rawState string, from, size int) (models.BookingQuery, error) {
	state, err := models.ParseBookingState(rawState)
	if err != nil {
		var unknown *models.UnknownStateError
		if errors.As(err, &unknown) {
			return models.BookingQuery{}, domain.Wrap(domain.ErrUnsupportedState, unknown)
		}
		return models.BookingQuery{}, err
	}
	if from < 0 {
		return models.BookingQuery{}, domain.Validationf("from must not be negative")
	}
	if size < 1 {
		return models.BookingQuery{}, domain.Validationf("size must be positive")
	}
	return models.BookingQuery{State: state, From: from, Size: size}, nil
}

// DefaultBookingQuery is ALL, from 0, default page size.
func DefaultBookingQuery() models.BookingQuery {
	return models.BookingQuery{State: models.StateAll, From: 0, Size: models.DefaultPageSize}
}

// QueryEngine turns a validated query into a store filter for one side of a booking.
type QueryEngine struct {
	now func() time.Time
}

func NewQueryEngine(now func() time.Time) *QueryEngine {
	if now == nil {
		now = time.Now
	}
	return &QueryEngine{now: now}
}

func (q *QueryEngine) Now() time.Time {
	return q.now().UTC()
}

func (q *QueryEngine) BookerFilter(bookerID int64, query models.BookingQuery) models.BookingFilter {
	return q.filter(query, models.BookingFilter{BookerID: bookerID})
}

func (q *QueryEngine) OwnerFilter(ownerID int64, query models.BookingQuery) models.BookingFilter {
	return q.filter(query, models.BookingFilter{OwnerID: ownerID})
}

func (q *QueryEngine) filter(query models.BookingQuery, f models.BookingFilter) models.BookingFilter {
	f.State = query.State
	f.Now = q.Now()
	f.Limit = query.Size
	f.Offset = query.Offset()
	return f
}
