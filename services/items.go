package services

import (
	"context"
	"errors"
	"strings"

	"homekeep/models"
)

// ItemStore is the persistence contract the item service needs.
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, id uint) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, f models.ItemFilter) ([]models.Item, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
}

// ItemService handles item CRUD and the subtree-scoped search, combining
// the item store with the location service's descendant resolver.
type ItemService struct {
	items     ItemStore
	locations *LocationService
}

func NewItemService(items ItemStore, locations *LocationService) *ItemService {
	return &ItemService{items: items, locations: locations}
}

// Create validates the location reference and stores the item for ownerID.
func (s *ItemService) Create(ctx context.Context, ownerID uint, item *models.Item) (*models.Item, error) {
	if item.Name == "" {
		return nil, models.NewValidationError("item name is required")
	}
	if err := s.checkLocation(ctx, ownerID, item.LocationID); err != nil {
		return nil, err
	}
	item.Categories = normalizeCategories(item.Categories)
	item.ID = 0
	item.UserID = ownerID
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Get(ctx context.Context, ownerID, id uint) (*models.Item, error) {
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != ownerID {
		return nil, models.ErrForbidden
	}
	return item, nil
}

func (s *ItemService) Update(ctx context.Context, ownerID, id uint, upd models.Item) (*models.Item, error) {
	item, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Name == "" {
		return nil, models.NewValidationError("item name is required")
	}
	if err := s.checkLocation(ctx, ownerID, upd.LocationID); err != nil {
		return nil, err
	}

	item.Name = upd.Name
	item.Description = upd.Description
	item.Categories = normalizeCategories(upd.Categories)
	item.LocationID = upd.LocationID
	item.Price = upd.Price
	item.PurchaseDate = upd.PurchaseDate
	item.ExpiryDate = upd.ExpiryDate
	if upd.ImageUrl != "" {
		item.ImageUrl = upd.ImageUrl
	}
	if upd.Quantity > 0 {
		item.Quantity = upd.Quantity
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ItemService) Delete(ctx context.Context, ownerID, id uint) (*models.Item, error) {
	item, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return nil, err
	}
	return item, nil
}

// Search finds the owner's items whose name or description contains query
// case-insensitively. When locationID is set the match is restricted to that
// location and everything under it; categories restrict to items carrying at
// least one of the given labels. A location that does not exist scopes the
// search to an empty subtree and therefore returns no items, not an error.
func (s *ItemService) Search(ctx context.Context, ownerID uint, query string, locationID *uint, categories []string, offset, limit int) ([]models.Item, error) {
	f := models.ItemFilter{
		UserID:     ownerID,
		Query:      query,
		Categories: normalizeCategories(categories),
		Offset:     offset,
		Limit:      limit,
	}

	if locationID != nil {
		descendants, err := s.locations.Descendants(ctx, ownerID, *locationID)
		if err != nil {
			return nil, err
		}
		f.LocationIDs = append([]uint{*locationID}, descendants...)
	}

	return s.items.Search(ctx, f)
}

func (s *ItemService) checkLocation(ctx context.Context, ownerID uint, locationID *uint) error {
	if locationID == nil {
		return nil
	}
	_, err := s.locations.Get(ctx, ownerID, *locationID)
	if errors.Is(err, models.ErrNotFound) {
		return models.NewValidationError("location %d does not exist", *locationID)
	}
	return err
}

func normalizeCategories(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
