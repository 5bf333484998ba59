package service

import (
	"context"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// Guard decides who may see, resolve and list bookings. Denials are NotFound.
type Guard struct {
	items domain.ItemCatalog
}

func NewGuard(items domain.ItemCatalog) *Guard {
	return &Guard{items: items}
}

// CanView allows the item's owner and the booker.
func (g *Guard) CanView(booking *models.Booking, item *models.Item, callerID int64) error {
	if booking.BookerID == callerID || item.OwnerID == callerID {
		return nil
	}
	return domain.NotFoundf("booking %d is available only to the item owner or the booker", booking.ID)
}

// CanResolve allows the item's owner only.
func (g *Guard) CanResolve(item *models.Item, callerID int64) error {
	if item.OwnerID == callerID {
		return nil
	}
	return domain.NotFoundf("user %d is not the owner of item %d", callerID, item.ID)
}

// CanListAsOwner requires the caller to own at least one item.
func (g *Guard) CanListAsOwner(ctx context.Context, callerID int64) error {
	has, err := g.items.OwnerHasItems(ctx, callerID)
	if err != nil {
		return err
	}
	if !has {
		return domain.NotFoundf("no items found for this user")
	}
	return nil
}
