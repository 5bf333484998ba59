package models

import "time"

type Item struct {
	ID          int64     `json:"id" db:"id" yaml:"id"`
	OwnerID     int64     `json:"owner_id" db:"owner_id" yaml:"owner_id"`
	Name        string    `json:"name" db:"name" yaml:"name"`
	Description string    `json:"description" db:"description" yaml:"description"`
	Available   bool      `json:"available" db:"available" yaml:"available"`
	RequestID   *int64    `json:"request_id,omitempty" db:"request_id" yaml:"request_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" yaml:"-"`
}

// ItemView is an item as shown to a particular caller.
// LastBooking and NextBooking are only populated for the item's owner.
type ItemView struct {
	Item
	LastBooking *BookingShort `json:"lastBooking"`
	NextBooking *BookingShort `json:"nextBooking"`
}
