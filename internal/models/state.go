package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingState is the temporal/status partition used to query bookings.
type BookingState int

const (
	StateAll BookingState = iota
	StateCurrent
	StatePast
	StateFuture
	StateWaiting
	StateRejected
)

var stateNames = map[BookingState]string{
	StateAll:      "ALL",
	StateCurrent:  "CURRENT",
	StatePast:     "PAST",
	StateFuture:   "FUTURE",
	StateWaiting:  "WAITING",
	StateRejected: "REJECTED",
}

// UnknownStateError is returned for state strings outside the known set.
type UnknownStateError struct {
	Raw string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("Unknown state: %s", e.Raw)
}

// ParseBookingState maps a query value to a BookingState. Empty means ALL.
func ParseBookingState(raw string) (BookingState, error) {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	if norm == "" {
		return StateAll, nil
	}
	for state, name := range stateNames {
		if name == norm {
			return state, nil
		}
	}
	return StateAll, &UnknownStateError{Raw: raw}
}

func (s BookingState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BookingState(%d)", int(s))
}

// Matches evaluates the state predicate for a booking at the given instant.
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return !b.Start.After(now) && !b.End.Before(now)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}
