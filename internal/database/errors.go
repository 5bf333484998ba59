package database

import "errors"

var (
	ErrBookingNotFound        = errors.New("booking not found")
	ErrItemNotFound           = errors.New("item not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrConcurrentModification = errors.New("concurrent modification detected")
)
