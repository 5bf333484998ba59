package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"
)

var _ domain.Store = (*MemoryStore)(nil)

// MemoryStore keeps users, items and bookings in process memory.
// It mirrors database.DB semantics, including the optimistic version check.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[int64]models.User
	items    map[int64]models.Item
	bookings map[int64]models.Booking
	emails   map[string]int64

	nextUserID    int64
	nextItemID    int64
	nextBookingID int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]models.User),
		items:    make(map[int64]models.Item),
		bookings: make(map[int64]models.Booking),
		emails:   make(map[string]int64),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := s.emails[key]; exists {
		return fmt.Errorf("%w: %s", database.ErrDuplicateEmail, user.Email)
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	s.emails[key] = user.ID
	return nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", database.ErrUserNotFound, id)
	}
	return &user, nil
}

func (s *MemoryStore) CreateItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextItemID++
	item.ID = s.nextItemID
	item.CreatedAt = time.Now().UTC()
	stored := *item
	if item.RequestID != nil {
		rid := *item.RequestID
		stored.RequestID = &rid
	}
	s.items[item.ID] = stored
	return nil
}

func (s *MemoryStore) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", database.ErrItemNotFound, id)
	}
	return &item, nil
}

func (s *MemoryStore) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []*models.Item
	for _, item := range s.items {
		if item.OwnerID == ownerID {
			it := item
			items = append(items, &it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *MemoryStore) OwnerHasItems(ctx context.Context, ownerID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if !booking.Start.Before(booking.End) {
		return fmt.Errorf("failed to create booking: start must precede end")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	s.nextBookingID++
	booking.ID = s.nextBookingID
	booking.Start = booking.Start.UTC()
	booking.End = booking.End.UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryStore) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	booking, ok := s.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", database.ErrBookingNotFound, id)
	}
	return &booking, nil
}

func (s *MemoryStore) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, ok := s.bookings[id]
	if !ok || booking.Version != fromVersion || booking.Status != models.StatusWaiting {
		return database.ErrConcurrentModification
	}

	booking.Status = status
	booking.Version++
	booking.UpdatedAt = time.Now().UTC()
	s.bookings[id] = booking
	return nil
}

func (s *MemoryStore) ListBookings(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	if filter.OwnerID == 0 && filter.BookerID == 0 {
		return nil, fmt.Errorf("booking filter needs a booker or an owner")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Booking
	for _, booking := range s.bookings {
		if filter.OwnerID != 0 {
			item, ok := s.items[booking.ItemID]
			if !ok || item.OwnerID != filter.OwnerID {
				continue
			}
		} else if booking.BookerID != filter.BookerID {
			continue
		}
		if !filter.State.Matches(&booking, filter.Now) {
			continue
		}
		b := booking
		matched = append(matched, &b)
	}

	sortBookings(matched)
	return paginate(matched, filter.Offset, filter.Limit), nil
}

func (s *MemoryStore) GetLastItemBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return s.pickItemBooking(itemID, func(b *models.Booking) bool {
		return b.End.Before(now)
	}, func(a, b *models.Booking) bool {
		return a.Start.After(b.Start)
	})
}

func (s *MemoryStore) GetNextItemBooking(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	return s.pickItemBooking(itemID, func(b *models.Booking) bool {
		return b.Start.After(now)
	}, func(a, b *models.Booking) bool {
		return a.Start.Before(b.Start)
	})
}

// pickItemBooking returns the best non-rejected booking of an item by better, ties going to the lower id.
func (s *MemoryStore) pickItemBooking(itemID int64, keep func(*models.Booking) bool, better func(a, b *models.Booking) bool) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *models.Booking
	for _, booking := range s.bookings {
		b := booking
		if b.ItemID != itemID || b.Status == models.StatusRejected || !keep(&b) {
			continue
		}
		if best == nil || better(&b, best) || (b.Start.Equal(best.Start) && b.ID < best.ID) {
			best = &b
		}
	}
	return best, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

// sortBookings orders by start descending, then id ascending.
func sortBookings(bookings []*models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].Start.Equal(bookings[j].Start) {
			return bookings[i].Start.After(bookings[j].Start)
		}
		return bookings[i].ID < bookings[j].ID
	})
}

func paginate(bookings []*models.Booking, offset, limit int) []*models.Booking {
	if offset >= len(bookings) {
		return []*models.Booking{}
	}
	bookings = bookings[offset:]
	if limit > 0 && limit < len(bookings) {
		bookings = bookings[:limit]
	}
	return bookings
}
