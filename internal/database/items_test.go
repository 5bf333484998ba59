package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))

	requestID := int64(5)
	item := &models.Item{
		OwnerID:     owner.ID,
		Name:        "Item 1",
		Description: "Desc 1",
		Available:   true,
		RequestID:   &requestID,
	}

	// Create
	require.NoError(t, db.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	// Get
	found, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Description, found.Description)
	assert.True(t, found.Available)
	require.NotNil(t, found.RequestID)
	assert.Equal(t, requestID, *found.RequestID)

	_, err = db.GetItemByID(ctx, 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	has, err := db.OwnerHasItems(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, db.CreateItem(ctx, &models.Item{OwnerID: 1, Name: "A", Description: "a", Available: true}))
	require.NoError(t, db.CreateItem(ctx, &models.Item{OwnerID: 2, Name: "B", Description: "b"}))
	require.NoError(t, db.CreateItem(ctx, &models.Item{OwnerID: 1, Name: "C", Description: "c"}))

	has, err = db.OwnerHasItems(ctx, 1)
	require.NoError(t, err)
	assert.True(t, has)

	items, err := db.GetItemsByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.Equal(t, "C", items[1].Name)
	assert.Nil(t, items[0].RequestID)
	assert.False(t, items[1].Available)

	none, err := db.GetItemsByOwner(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}
