package service

import (
	"context"
	"errors"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

var _ domain.BookingService = (*BookingService)(nil)

type BookingService struct {
	store    domain.Store
	guard    *Guard
	query    *QueryEngine
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(store domain.Store, eventBus domain.EventPublisher, query *QueryEngine, logger *zerolog.Logger) *BookingService {
	if query == nil {
		query = NewQueryEngine(nil)
	}
	return &BookingService{
		store:    store,
		guard:    NewGuard(store),
		query:    query,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, req models.BookingRequest, callerID int64) (*models.Booking, error) {
	if !req.Start.Before(req.End) {
		return nil, domain.Validationf("booking start must be before its end")
	}

	item, err := s.store.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if _, err := s.store.GetUserByID(ctx, callerID); err != nil {
		return nil, translateStoreError(err)
	}
	if !item.Available {
		return nil, domain.Validationf("item %d is not available for booking", item.ID)
	}
	if item.OwnerID == callerID {
		return nil, domain.NotFoundf("owner cannot book own item")
	}

	booking := &models.Booking{
		ItemID:   item.ID,
		BookerID: callerID,
		Status:   models.StatusWaiting,
		Start:    req.Start,
		End:      req.End,
	}
	if err := s.store.CreateBooking(ctx, booking); err != nil {
		return nil, translateStoreError(err)
	}

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("item_id", item.ID).
		Int64("booker_id", callerID).
		Msg("booking created")
	metrics.IncBookingTransition(string(models.StatusWaiting))
	s.publishEvent(events.EventBookingCreated, booking, item, callerID)

	return booking, nil
}

func (s *BookingService) ResolveBooking(ctx context.Context, bookingID, callerID int64, approve bool) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	item, err := s.store.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if err := s.guard.CanResolve(item, callerID); err != nil {
		return nil, err
	}
	if booking.Status != models.StatusWaiting {
		return nil, domain.Validationf("cannot change status from a non-pending status")
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approve {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	err = s.store.UpdateBookingStatusWithVersion(ctx, booking.ID, booking.Version, status)
	if errors.Is(err, database.ErrConcurrentModification) {
		metrics.IncResolveConflict()
		s.logger.Warn().Int64("booking_id", booking.ID).Msg("booking resolved concurrently")
		return nil, domain.Validationf("cannot change status from a non-pending status")
	}
	if err != nil {
		return nil, translateStoreError(err)
	}

	booking.Status = status
	booking.Version++

	s.logger.Info().
		Int64("booking_id", booking.ID).
		Int64("owner_id", callerID).
		Str("status", string(status)).
		Msg("booking resolved")
	metrics.IncBookingTransition(string(status))
	s.publishEvent(eventType, booking, item, callerID)

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID, callerID int64) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	item, err := s.store.GetItemByID(ctx, booking.ItemID)
	if err != nil {
		return nil, translateStoreError(err)
	}
	if err := s.guard.CanView(booking, item, callerID); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListBookerBookings(ctx context.Context, callerID int64, query models.BookingQuery) ([]*models.Booking, error) {
	if _, err := s.store.GetUserByID(ctx, callerID); err != nil {
		return nil, translateStoreError(err)
	}
	return s.list(ctx, s.query.BookerFilter(callerID, query))
}

func (s *BookingService) ListOwnerBookings(ctx context.Context, callerID int64, query models.BookingQuery) ([]*models.Booking, error) {
	if _, err := s.store.GetUserByID(ctx, callerID); err != nil {
		return nil, translateStoreError(err)
	}
	if err := s.guard.CanListAsOwner(ctx, callerID); err != nil {
		return nil, err
	}
	return s.list(ctx, s.query.OwnerFilter(callerID, query))
}

func (s *BookingService) list(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	bookings, err := s.store.ListBookings(ctx, filter)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	return bookings, nil
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, item *models.Item, actorID int64) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		OwnerID:   item.OwnerID,
		BookerID:  booking.BookerID,
		Status:    string(booking.Status),
		Start:     booking.Start,
		End:       booking.End,
		ActorID:   actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
