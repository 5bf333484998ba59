package service

import (
	"errors"

	"shareit/internal/database"
	"shareit/internal/domain"
)

// translateStoreError classifies store sentinels; unknown errors pass through as internal.
func translateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrBookingNotFound),
		errors.Is(err, database.ErrItemNotFound),
		errors.Is(err, database.ErrUserNotFound):
		return domain.Wrap(domain.ErrNotFound, err)
	case errors.Is(err, database.ErrDuplicateEmail):
		return domain.Wrap(domain.ErrValidation, err)
	default:
		return err
	}
}
