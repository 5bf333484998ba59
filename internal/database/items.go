package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/models"
)

const itemColumns = `id, owner_id, name, description, available, request_id, created_at`

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (owner_id, name, description, available, request_id, created_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, query,
		item.OwnerID,
		item.Name,
		item.Description,
		item.Available,
		item.RequestID,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	item.CreatedAt = now

	return nil
}

func (db *DB) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	if err := db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	var items []*models.Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ? ORDER BY id`
	if err := db.SelectContext(ctx, &items, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to get owner items: %w", err)
	}
	return items, nil
}

// OwnerHasItems uses the owner index instead of scanning the whole catalog.
func (db *DB) OwnerHasItems(ctx context.Context, ownerID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM items WHERE owner_id = ?)`
	if err := db.GetContext(ctx, &exists, query, ownerID); err != nil {
		return false, fmt.Errorf("failed to check owner items: %w", err)
	}
	return exists, nil
}
