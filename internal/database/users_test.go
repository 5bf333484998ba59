package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserOperations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := &models.User{Name: "Test User", Email: "test@example.com"}
	require.NoError(t, db.CreateUser(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", found.Name)
	assert.Equal(t, "test@example.com", found.Email)

	_, err = db.GetUserByID(ctx, 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "A", Email: "same@example.com"}))
	err := db.CreateUser(ctx, &models.User{Name: "B", Email: "same@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}
