package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeep/models"
)

type fakeReminderStore struct {
	nextID    uint
	reminders map[uint]*models.Reminder
	updates   int
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{nextID: 1, reminders: make(map[uint]*models.Reminder)}
}

func (f *fakeReminderStore) add(ownerID uint, title string, due time.Time, completed bool) *models.Reminder {
	rem := &models.Reminder{ID: f.nextID, Title: title, UserID: ownerID, DueDate: due, IsCompleted: completed, RepeatType: models.RepeatNone}
	f.reminders[rem.ID] = rem
	f.nextID++
	return rem
}

func (f *fakeReminderStore) Create(_ context.Context, rem *models.Reminder) error {
	rem.ID = f.nextID
	f.nextID++
	cp := *rem
	f.reminders[rem.ID] = &cp
	return nil
}

func (f *fakeReminderStore) Get(_ context.Context, id uint) (*models.Reminder, error) {
	rem, ok := f.reminders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *rem
	return &cp, nil
}

func (f *fakeReminderStore) Update(_ context.Context, rem *models.Reminder) error {
	if _, ok := f.reminders[rem.ID]; !ok {
		return models.ErrNotFound
	}
	f.updates++
	cp := *rem
	f.reminders[rem.ID] = &cp
	return nil
}

func (f *fakeReminderStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.reminders[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.reminders, id)
	return nil
}

func (f *fakeReminderStore) ByOwner(_ context.Context, ownerID uint, _, _ int) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, rem := range f.reminders {
		if rem.UserID == ownerID {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReminderStore) ByItem(_ context.Context, ownerID, itemID uint) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, rem := range f.reminders {
		if rem.UserID == ownerID && rem.ItemID != nil && *rem.ItemID == itemID {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (f *fakeReminderStore) Due(_ context.Context, ownerID uint, now time.Time) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, rem := range f.reminders {
		if rem.UserID == ownerID && !rem.IsCompleted && !rem.DueDate.After(now) {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func (f *fakeReminderStore) Upcoming(_ context.Context, ownerID uint, now, until time.Time) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, rem := range f.reminders {
		if rem.UserID == ownerID && !rem.IsCompleted && rem.DueDate.After(now) && !rem.DueDate.After(until) {
			out = append(out, *rem)
		}
	}
	return out, nil
}

func newReminderService(store *fakeReminderStore, items *fakeItemStore) *ReminderService {
	if items == nil {
		items = newFakeItemStore()
	}
	return NewReminderService(store, items)
}

func TestReminderCreateValidation(t *testing.T) {
	store := newFakeReminderStore()
	items := newFakeItemStore()
	mine := items.add(1, "Boiler", nil)
	theirs := items.add(2, "Their boiler", nil)

	svc := newReminderService(store, items)
	ctx := context.Background()
	due := time.Now().Add(24 * time.Hour)

	var vErr *models.ValidationError

	_, err := svc.Create(ctx, 1, &models.Reminder{DueDate: due})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Create(ctx, 1, &models.Reminder{Title: "Service boiler"})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Create(ctx, 1, &models.Reminder{Title: "x", DueDate: due, RepeatType: "hourly"})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Create(ctx, 1, &models.Reminder{Title: "x", DueDate: due, ItemID: ptr(999)})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Create(ctx, 1, &models.Reminder{Title: "x", DueDate: due, ItemID: &theirs.ID})
	assert.ErrorIs(t, err, models.ErrForbidden)

	created, err := svc.Create(ctx, 1, &models.Reminder{Title: "Service boiler", DueDate: due, ItemID: &mine.ID})
	require.NoError(t, err)
	assert.Equal(t, models.RepeatNone, created.RepeatType)
	assert.Equal(t, uint(1), created.UserID)
}

func TestReminderCompleteIsIdempotent(t *testing.T) {
	store := newFakeReminderStore()
	rem := store.add(1, "Water plants", time.Now().Add(-time.Hour), false)

	svc := newReminderService(store, nil)
	ctx := context.Background()

	first, err := svc.Complete(ctx, 1, rem.ID)
	require.NoError(t, err)
	assert.True(t, first.IsCompleted)
	assert.Equal(t, 1, store.updates)

	// Completing again changes nothing and writes nothing.
	second, err := svc.Complete(ctx, 1, rem.ID)
	require.NoError(t, err)
	assert.True(t, second.IsCompleted)
	assert.Equal(t, 1, store.updates)
}

func TestReminderCompleteOwnership(t *testing.T) {
	store := newFakeReminderStore()
	theirs := store.add(2, "Not yours", time.Now(), false)

	svc := newReminderService(store, nil)

	_, err := svc.Complete(context.Background(), 1, theirs.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Complete(context.Background(), 1, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestReminderDueAndUpcomingWindows(t *testing.T) {
	store := newFakeReminderStore()
	now := time.Now().UTC()

	overdue := store.add(1, "Overdue", now.Add(-48*time.Hour), false)
	store.add(1, "Overdue but done", now.Add(-48*time.Hour), true)
	soon := store.add(1, "Due in 3 days", now.Add(72*time.Hour), false)
	store.add(1, "Due next month", now.Add(40*24*time.Hour), false)
	store.add(2, "Someone else's", now.Add(-time.Hour), false)

	svc := newReminderService(store, nil)
	ctx := context.Background()

	due, err := svc.Due(ctx, 1)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, overdue.ID, due[0].ID)

	upcoming, err := svc.Upcoming(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, soon.ID, upcoming[0].ID)

	// days <= 0 falls back to the one week window.
	upcoming, err = svc.Upcoming(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)
}
