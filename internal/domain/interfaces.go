package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatusWithVersion(ctx context.Context, id int64, version int64, status models.BookingStatus) error
	ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
	GetLastItemBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
	GetNextItemBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error)
}

type ItemCatalog interface {
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	OwnerHasItems(ctx context.Context, ownerID int64) (bool, error)
	CreateItem(ctx context.Context, item *models.Item) error
}

type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Store bundles every persistence concern the service needs.
type Store interface {
	BookingStore
	ItemCatalog
	UserDirectory
	Ping(ctx context.Context) error
	Close() error
}

type RateLimiter interface {
	CheckRateLimit(ctx context.Context, callerID int64, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest, callerID int64) (*models.Booking, error)
	ResolveBooking(ctx context.Context, bookingID, callerID int64, approve bool) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID, callerID int64) (*models.Booking, error)
	ListBookerBookings(ctx context.Context, callerID int64, query models.BookingQuery) ([]*models.Booking, error)
	ListOwnerBookings(ctx context.Context, callerID int64, query models.BookingQuery) ([]*models.Booking, error)
}

type ItemService interface {
	GetItem(ctx context.Context, itemID, callerID int64) (*models.ItemView, error)
	GetOwnerItems(ctx context.Context, ownerID int64) ([]*models.ItemView, error)
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
}

type UserService interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
