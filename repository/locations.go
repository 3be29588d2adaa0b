package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"homekeep/models"
)

// LocationRepository implements location persistence on gorm.
type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(ctx context.Context, loc *models.Location) error {
	if err := r.db.WithContext(ctx).Create(loc).Error; err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *LocationRepository) Get(ctx context.Context, id uint) (*models.Location, error) {
	var loc models.Location
	if err := r.db.WithContext(ctx).First(&loc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return &loc, nil
}

func (r *LocationRepository) ByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]models.Location, error) {
	var locs []models.Location
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&locs).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locs, nil
}

// ByParent returns the direct children of parentID for one owner, in
// primary-key order. A nil parentID selects the root locations.
func (r *LocationRepository) ByParent(ctx context.Context, ownerID uint, parentID *uint) ([]models.Location, error) {
	var locs []models.Location
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id")
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if err := q.Find(&locs).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations by parent: %w", err)
	}
	return locs, nil
}

func (r *LocationRepository) Update(ctx context.Context, loc *models.Location) error {
	if err := r.db.WithContext(ctx).Save(loc).Error; err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	return nil
}

// DeleteGuarded deletes a location only if no item references it and no
// child location exists. Both checks and the delete run in one serializable
// transaction, so a concurrent insert cannot slip between check and delete.
func (r *LocationRepository) DeleteGuarded(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itemCount int64
		if err := tx.Model(&models.Item{}).Where("location_id = ?", id).Count(&itemCount).Error; err != nil {
			return fmt.Errorf("failed to count items in location: %w", err)
		}
		if itemCount > 0 {
			return &models.HasItemsError{LocationID: id, Count: itemCount}
		}

		var childCount int64
		if err := tx.Model(&models.Location{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
			return fmt.Errorf("failed to count child locations: %w", err)
		}
		if childCount > 0 {
			return &models.HasChildrenError{LocationID: id, Count: childCount}
		}

		res := tx.Delete(&models.Location{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete location: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
}

func (r *LocationRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Location{}).Where("user_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count locations: %w", err)
	}
	return count, nil
}

// PopularByItemCount returns the owner's locations ordered by how many items
// they hold, most crowded first.
func (r *LocationRepository) PopularByItemCount(ctx context.Context, ownerID uint, limit int) ([]models.LocationItemCount, error) {
	var rows []models.LocationItemCount
	err := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Select("locations.id, locations.name, COUNT(items.id) AS count").
		Joins("JOIN items ON items.location_id = locations.id").
		Where("locations.user_id = ?", ownerID).
		Group("locations.id, locations.name").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank locations by item count: %w", err)
	}
	return rows, nil
}
