package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"homekeep/models"
)

// ReminderRepository implements reminder persistence on gorm.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, rem *models.Reminder) error {
	if err := r.db.WithContext(ctx).Create(rem).Error; err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Get(ctx context.Context, id uint) (*models.Reminder, error) {
	var rem models.Reminder
	if err := r.db.WithContext(ctx).First(&rem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	return &rem, nil
}

func (r *ReminderRepository) Update(ctx context.Context, rem *models.Reminder) error {
	if err := r.db.WithContext(ctx).Save(rem).Error; err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Reminder{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete reminder: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ReminderRepository) ByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]models.Reminder, error) {
	var rems []models.Reminder
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("id")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	if err := q.Find(&rems).Error; err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return rems, nil
}

func (r *ReminderRepository) ByItem(ctx context.Context, ownerID, itemID uint) ([]models.Reminder, error) {
	var rems []models.Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", ownerID, itemID).
		Order("id").
		Find(&rems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders by item: %w", err)
	}
	return rems, nil
}

// Due returns unfinished reminders whose due date is at or before now.
func (r *ReminderRepository) Due(ctx context.Context, ownerID uint, now time.Time) ([]models.Reminder, error) {
	var rems []models.Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date <= ? AND is_completed = ?", ownerID, now, false).
		Order("due_date").
		Find(&rems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	return rems, nil
}

// Upcoming returns unfinished reminders due after now and no later than until.
func (r *ReminderRepository) Upcoming(ctx context.Context, ownerID uint, now, until time.Time) ([]models.Reminder, error) {
	var rems []models.Reminder
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND due_date > ? AND due_date <= ? AND is_completed = ?", ownerID, now, until, false).
		Order("due_date").
		Find(&rems).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	return rems, nil
}
