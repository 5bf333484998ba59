package models

import "time"

// BookingRequest is a validated reservation request; see service.NewBookingRequest.
type BookingRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// BookingQuery is a validated state filter with pagination.
type BookingQuery struct {
	State BookingState
	From  int
	Size  int
}

// Page returns the zero-based page index. Offsets that are not a multiple of
// Size land on the page that contains them.
func (q BookingQuery) Page() int {
	if q.From > 0 && q.Size > 0 {
		return q.From / q.Size
	}
	return 0
}

func (q BookingQuery) Offset() int {
	return q.Page() * q.Size
}
