package services

import (
	"context"
	"errors"
	"time"

	"homekeep/models"
)

// ReminderStore is the persistence contract the reminder service needs.
type ReminderStore interface {
	Create(ctx context.Context, rem *models.Reminder) error
	Get(ctx context.Context, id uint) (*models.Reminder, error)
	Update(ctx context.Context, rem *models.Reminder) error
	Delete(ctx context.Context, id uint) error
	ByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]models.Reminder, error)
	ByItem(ctx context.Context, ownerID, itemID uint) ([]models.Reminder, error)
	Due(ctx context.Context, ownerID uint, now time.Time) ([]models.Reminder, error)
	Upcoming(ctx context.Context, ownerID uint, now, until time.Time) ([]models.Reminder, error)
}

// ReminderService handles reminder CRUD, the due/upcoming windows and the
// idempotent completion transition.
type ReminderService struct {
	reminders ReminderStore
	items     ItemStore
}

func NewReminderService(reminders ReminderStore, items ItemStore) *ReminderService {
	return &ReminderService{reminders: reminders, items: items}
}

func (s *ReminderService) Create(ctx context.Context, ownerID uint, rem *models.Reminder) (*models.Reminder, error) {
	if rem.Title == "" {
		return nil, models.NewValidationError("reminder title is required")
	}
	if rem.DueDate.IsZero() {
		return nil, models.NewValidationError("reminder due date is required")
	}
	if rem.RepeatType == "" {
		rem.RepeatType = models.RepeatNone
	}
	if !rem.RepeatType.Valid() {
		return nil, models.NewValidationError("invalid repeat type %q", rem.RepeatType)
	}
	if err := s.checkItem(ctx, ownerID, rem.ItemID); err != nil {
		return nil, err
	}
	rem.ID = 0
	rem.UserID = ownerID
	if err := s.reminders.Create(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *ReminderService) Get(ctx context.Context, ownerID, id uint) (*models.Reminder, error) {
	rem, err := s.reminders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rem.UserID != ownerID {
		return nil, models.ErrForbidden
	}
	return rem, nil
}

func (s *ReminderService) List(ctx context.Context, ownerID uint, offset, limit int) ([]models.Reminder, error) {
	return s.reminders.ByOwner(ctx, ownerID, offset, limit)
}

func (s *ReminderService) ByItem(ctx context.Context, ownerID, itemID uint) ([]models.Reminder, error) {
	return s.reminders.ByItem(ctx, ownerID, itemID)
}

// Due returns reminders past their due date and not yet completed.
func (s *ReminderService) Due(ctx context.Context, ownerID uint) ([]models.Reminder, error) {
	return s.reminders.Due(ctx, ownerID, time.Now().UTC())
}

// Upcoming returns unfinished reminders falling due within the next `days`
// days, excluding anything already overdue.
func (s *ReminderService) Upcoming(ctx context.Context, ownerID uint, days int) ([]models.Reminder, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now().UTC()
	return s.reminders.Upcoming(ctx, ownerID, now, now.AddDate(0, 0, days))
}

func (s *ReminderService) Update(ctx context.Context, ownerID, id uint, upd models.Reminder) (*models.Reminder, error) {
	rem, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if upd.Title == "" {
		return nil, models.NewValidationError("reminder title is required")
	}
	if upd.RepeatType == "" {
		upd.RepeatType = models.RepeatNone
	}
	if !upd.RepeatType.Valid() {
		return nil, models.NewValidationError("invalid repeat type %q", upd.RepeatType)
	}
	if err := s.checkItem(ctx, ownerID, upd.ItemID); err != nil {
		return nil, err
	}

	rem.Title = upd.Title
	rem.Description = upd.Description
	if !upd.DueDate.IsZero() {
		rem.DueDate = upd.DueDate
	}
	rem.RepeatType = upd.RepeatType
	rem.IsCompleted = upd.IsCompleted
	rem.ItemID = upd.ItemID
	if err := s.reminders.Update(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *ReminderService) Delete(ctx context.Context, ownerID, id uint) (*models.Reminder, error) {
	rem, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.reminders.Delete(ctx, id); err != nil {
		return nil, err
	}
	return rem, nil
}

// Complete marks a reminder done. Completing an already-completed reminder
// is a no-op, not an error.
func (s *ReminderService) Complete(ctx context.Context, ownerID, id uint) (*models.Reminder, error) {
	rem, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if rem.IsCompleted {
		return rem, nil
	}
	rem.IsCompleted = true
	if err := s.reminders.Update(ctx, rem); err != nil {
		return nil, err
	}
	return rem, nil
}

func (s *ReminderService) checkItem(ctx context.Context, ownerID uint, itemID *uint) error {
	if itemID == nil {
		return nil
	}
	item, err := s.items.Get(ctx, *itemID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewValidationError("item %d does not exist", *itemID)
		}
		return err
	}
	if item.UserID != ownerID {
		return models.ErrForbidden
	}
	return nil
}
