package models

import "time"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// IsResolved reports whether the status is terminal.
func (s BookingStatus) IsResolved() bool {
	return s == StatusApproved || s == StatusRejected
}

type Booking struct {
	ID        int64         `json:"id" db:"id"`
	ItemID    int64         `json:"item_id" db:"item_id"`
	BookerID  int64         `json:"booker_id" db:"booker_id"`
	Status    BookingStatus `json:"status" db:"status"`
	Start     time.Time     `json:"start" db:"start_at"`
	End       time.Time     `json:"end" db:"end_at"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
	Version   int64         `json:"version" db:"version"`
}

// BookingShort is the booking summary attached to item views.
type BookingShort struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

func (b *Booking) Short() *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{ID: b.ID, BookerID: b.BookerID}
}

// BookingFilter selects bookings either by booker or by the owner of the booked item.
// Exactly one of BookerID and OwnerID is expected to be set.
type BookingFilter struct {
	BookerID int64
	OwnerID  int64
	State    BookingState
	Now      time.Time
	Limit    int
	Offset   int
}
