package services

import (
	"context"
	"errors"

	"homekeep/models"
)

// LocationStore is the persistence contract the location service needs.
// The gorm implementation lives in the repository package.
type LocationStore interface {
	Create(ctx context.Context, loc *models.Location) error
	Get(ctx context.Context, id uint) (*models.Location, error)
	ByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]models.Location, error)
	ByParent(ctx context.Context, ownerID uint, parentID *uint) ([]models.Location, error)
	Update(ctx context.Context, loc *models.Location) error
	DeleteGuarded(ctx context.Context, id uint) error
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	PopularByItemCount(ctx context.Context, ownerID uint, limit int) ([]models.LocationItemCount, error)
}

// LocationService owns the storage hierarchy: tree materialization,
// descendant resolution and the guarded delete.
type LocationService struct {
	locations LocationStore
}

func NewLocationService(locations LocationStore) *LocationService {
	return &LocationService{locations: locations}
}

// Create validates the parent reference and stores the location for ownerID.
func (s *LocationService) Create(ctx context.Context, ownerID uint, loc *models.Location) (*models.Location, error) {
	if loc.Name == "" {
		return nil, models.NewValidationError("location name is required")
	}
	if loc.ParentID != nil {
		if err := s.checkParent(ctx, ownerID, 0, loc.ParentID); err != nil {
			return nil, err
		}
	}
	loc.ID = 0
	loc.UserID = ownerID
	if err := s.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Get returns the location, distinguishing NotFound from Forbidden.
func (s *LocationService) Get(ctx context.Context, ownerID, id uint) (*models.Location, error) {
	loc, err := s.locations.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc.UserID != ownerID {
		return nil, models.ErrForbidden
	}
	return loc, nil
}

func (s *LocationService) List(ctx context.Context, ownerID uint, offset, limit int) ([]models.Location, error) {
	return s.locations.ByOwner(ctx, ownerID, offset, limit)
}

// Children returns the direct children of parentID; nil selects the roots.
func (s *LocationService) Children(ctx context.Context, ownerID uint, parentID *uint) ([]models.Location, error) {
	return s.locations.ByParent(ctx, ownerID, parentID)
}

// Update applies name/description/image and, when the parent changes,
// re-validates the hierarchy so the move cannot introduce a cycle.
func (s *LocationService) Update(ctx context.Context, ownerID, id uint, upd models.Location) (*models.Location, error) {
	loc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Name == "" {
		return nil, models.NewValidationError("location name is required")
	}
	if upd.ParentID != nil {
		if err := s.checkParent(ctx, ownerID, id, upd.ParentID); err != nil {
			return nil, err
		}
	}

	loc.Name = upd.Name
	loc.Description = upd.Description
	loc.ImageUrl = upd.ImageUrl
	loc.ParentID = upd.ParentID
	if err := s.locations.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Delete removes a leaf-and-empty location. The has-items/has-children
// checks run atomically with the delete inside the store.
func (s *LocationService) Delete(ctx context.Context, ownerID, id uint) (*models.Location, error) {
	loc, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.locations.DeleteGuarded(ctx, id); err != nil {
		return nil, err
	}
	return loc, nil
}

// Tree assembles the owner's full location forest, roots first, each node
// carrying its recursively resolved children in primary-key order.
func (s *LocationService) Tree(ctx context.Context, ownerID uint) ([]models.LocationNode, error) {
	visited := make(map[uint]bool)
	roots, err := s.locations.ByParent(ctx, ownerID, nil)
	if err != nil {
		return nil, err
	}
	forest := make([]models.LocationNode, 0, len(roots))
	for _, root := range roots {
		node, err := s.subtree(ctx, ownerID, root, visited)
		if err != nil {
			return nil, err
		}
		forest = append(forest, node)
	}
	return forest, nil
}

func (s *LocationService) subtree(ctx context.Context, ownerID uint, loc models.Location, visited map[uint]bool) (models.LocationNode, error) {
	if visited[loc.ID] {
		return models.LocationNode{}, models.ErrLocationCycle
	}
	visited[loc.ID] = true

	node := models.LocationNode{Location: loc, Children: []models.LocationNode{}}
	children, err := s.locations.ByParent(ctx, ownerID, &loc.ID)
	if err != nil {
		return models.LocationNode{}, err
	}
	for _, child := range children {
		childNode, err := s.subtree(ctx, ownerID, child, visited)
		if err != nil {
			return models.LocationNode{}, err
		}
		node.Children = append(node.Children, childNode)
	}
	return node, nil
}

// Descendants resolves every location reachable downward from id, excluding
// id itself. A non-existent id simply yields an empty set. Revisiting an id
// means the stored parent graph is cyclic, which is surfaced as a
// data-integrity error rather than recursed into.
func (s *LocationService) Descendants(ctx context.Context, ownerID, id uint) ([]uint, error) {
	visited := map[uint]bool{id: true}
	var out []uint

	var walk func(parent uint) error
	walk = func(parent uint) error {
		children, err := s.locations.ByParent(ctx, ownerID, &parent)
		if err != nil {
			return err
		}
		for _, child := range children {
			if visited[child.ID] {
				return models.ErrLocationCycle
			}
			visited[child.ID] = true
			out = append(out, child.ID)
			if err := walk(child.ID); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(id); err != nil {
		return nil, err
	}
	return out, nil
}

// checkParent validates a parent reference for the location selfID (0 when
// creating): the parent must exist, belong to ownerID, and its ancestor
// chain must not pass through selfID.
func (s *LocationService) checkParent(ctx context.Context, ownerID, selfID uint, parentID *uint) error {
	if selfID != 0 && *parentID == selfID {
		return models.NewValidationError("a location cannot be its own parent")
	}

	seen := make(map[uint]bool)
	cur := parentID
	for cur != nil {
		if seen[*cur] {
			return models.ErrLocationCycle
		}
		seen[*cur] = true

		parent, err := s.locations.Get(ctx, *cur)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.NewValidationError("parent location %d does not exist", *parentID)
			}
			return err
		}
		if parent.UserID != ownerID {
			return models.ErrForbidden
		}
		if selfID != 0 && parent.ID == selfID {
			return models.NewValidationError("cannot move a location under its own descendant")
		}
		cur = parent.ParentID
	}
	return nil
}
