package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindError(t *testing.T) {
	err := NotFoundf("item %d not found", 7)
	assert.EqualError(t, err, "item 7 not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)

	cause := errors.New("duplicate email")
	wrapped := Wrap(ErrValidation, cause)
	assert.EqualError(t, wrapped, "duplicate email")
	assert.ErrorIs(t, wrapped, ErrValidation)
	assert.ErrorIs(t, wrapped, cause)

	assert.ErrorIs(t, Validationf("bad"), ErrValidation)
}
