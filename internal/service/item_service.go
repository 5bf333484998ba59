package service

import (
	"context"
	"strings"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

var _ domain.ItemService = (*ItemService)(nil)

type ItemService struct {
	store     domain.Store
	projector *Projector
	query     *QueryEngine
	logger    *zerolog.Logger
}

func NewItemService(store domain.Store, query *QueryEngine, logger *zerolog.Logger) *ItemService {
	if query == nil {
		query = NewQueryEngine(nil)
	}
	return &ItemService{
		store:     store,
		projector: NewProjector(store),
		query:     query,
		logger:    logger,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, item *models.Item) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)
	if item.Name == "" {
		return domain.Validationf("item name is required")
	}
	if item.Description == "" {
		return domain.Validationf("item description is required")
	}
	if _, err := s.store.GetUserByID(ctx, item.OwnerID); err != nil {
		return translateStoreError(err)
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return translateStoreError(err)
	}
	s.logger.Info().Int64("item_id", item.ID).Int64("owner_id", item.OwnerID).Msg("item created")
	return nil
}

func (s *ItemService) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.store.GetItemByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err)
	}
	return item, nil
}

// GetItem returns the item view; last/next bookings are attached only for the owner.
func (s *ItemService) GetItem(ctx context.Context, itemID, callerID int64) (*models.ItemView, error) {
	item, err := s.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	view := &models.ItemView{Item: *item}
	if item.OwnerID == callerID {
		if err := s.projector.Attach(ctx, view, s.query.Now()); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// GetOwnerItems returns the owner's items, each with projections, ordered by id.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID int64) ([]*models.ItemView, error) {
	if _, err := s.store.GetUserByID(ctx, ownerID); err != nil {
		return nil, translateStoreError(err)
	}
	items, err := s.store.GetItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.query.Now()
	views := make([]*models.ItemView, 0, len(items))
	for _, item := range items {
		view := &models.ItemView{Item: *item}
		if err := s.projector.Attach(ctx, view, now); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
