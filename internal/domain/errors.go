package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Unauthorized access is reported as ErrNotFound
// so that the existence of a resource is not disclosed.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrUnsupportedState = errors.New("unsupported state")
)

// KindError carries a user-facing message and classifies it with one of the kinds above.
type KindError struct {
	Kind    error
	Message string
	Cause   error
}

func (e *KindError) Error() string {
	return e.Message
}

func (e *KindError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NotFoundf(format string, args ...interface{}) error {
	return &KindError{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) error {
	return &KindError{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies cause under kind, keeping its message.
func Wrap(kind, cause error) error {
	return &KindError{Kind: kind, Message: cause.Error(), Cause: cause}
}
