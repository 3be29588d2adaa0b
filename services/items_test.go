package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homekeep/models"
)

// fakeItemStore records the last filter so tests can assert how a search was
// scoped, and answers from a fixed slice.
type fakeItemStore struct {
	nextID uint
	items  map[uint]*models.Item

	lastFilter models.ItemFilter
	results    []models.Item
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{nextID: 1, items: make(map[uint]*models.Item)}
}

func (f *fakeItemStore) add(ownerID uint, name string, locationID *uint) *models.Item {
	item := &models.Item{ID: f.nextID, Name: name, UserID: ownerID, LocationID: locationID}
	f.items[item.ID] = item
	f.nextID++
	return item
}

func (f *fakeItemStore) Create(_ context.Context, item *models.Item) error {
	item.ID = f.nextID
	f.nextID++
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemStore) Get(_ context.Context, id uint) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemStore) Update(_ context.Context, item *models.Item) error {
	if _, ok := f.items[item.ID]; !ok {
		return models.ErrNotFound
	}
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemStore) Search(_ context.Context, filter models.ItemFilter) ([]models.Item, error) {
	f.lastFilter = filter
	return f.results, nil
}

func (f *fakeItemStore) CountByOwner(_ context.Context, ownerID uint) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.UserID == ownerID {
			n++
		}
	}
	return n, nil
}

func TestItemSearchScopesToSubtree(t *testing.T) {
	locStore := newFakeLocationStore()
	garage := locStore.add(1, "Garage", nil)
	shelf := locStore.add(1, "Shelf", ptr(garage.ID))
	toolbox := locStore.add(1, "Toolbox", ptr(shelf.ID))
	locStore.add(1, "Attic", nil)

	itemStore := newFakeItemStore()
	svc := NewItemService(itemStore, NewLocationService(locStore))

	_, err := svc.Search(context.Background(), 1, "drill", &garage.ID, nil, 0, 50)
	require.NoError(t, err)

	f := itemStore.lastFilter
	assert.Equal(t, uint(1), f.UserID)
	assert.Equal(t, "drill", f.Query)
	assert.ElementsMatch(t, []uint{garage.ID, shelf.ID, toolbox.ID}, f.LocationIDs)
}

func TestItemSearchMissingLocationScopesToItAlone(t *testing.T) {
	itemStore := newFakeItemStore()
	svc := NewItemService(itemStore, NewLocationService(newFakeLocationStore()))

	missing := uint(999)
	items, err := svc.Search(context.Background(), 1, "", &missing, nil, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, []uint{missing}, itemStore.lastFilter.LocationIDs)
}

func TestItemSearchUnscoped(t *testing.T) {
	itemStore := newFakeItemStore()
	svc := NewItemService(itemStore, NewLocationService(newFakeLocationStore()))

	_, err := svc.Search(context.Background(), 1, "hammer", nil, []string{" tools ", "", "garden"}, 10, 20)
	require.NoError(t, err)

	f := itemStore.lastFilter
	assert.Nil(t, f.LocationIDs)
	assert.Equal(t, []string{"tools", "garden"}, f.Categories)
	assert.Equal(t, 10, f.Offset)
	assert.Equal(t, 20, f.Limit)
}

func TestItemCreate(t *testing.T) {
	locStore := newFakeLocationStore()
	garage := locStore.add(1, "Garage", nil)
	foreign := locStore.add(2, "Not yours", nil)

	itemStore := newFakeItemStore()
	svc := NewItemService(itemStore, NewLocationService(locStore))
	ctx := context.Background()

	var vErr *models.ValidationError

	_, err := svc.Create(ctx, 1, &models.Item{})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Create(ctx, 1, &models.Item{Name: "Drill", LocationID: ptr(999)})
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.Create(ctx, 1, &models.Item{Name: "Drill", LocationID: &foreign.ID})
	assert.ErrorIs(t, err, models.ErrForbidden)

	created, err := svc.Create(ctx, 1, &models.Item{
		Name:       "Drill",
		LocationID: &garage.ID,
		Categories: []string{"tools", "  ", "power"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.UserID)
	assert.Equal(t, 1, created.Quantity)
	assert.Equal(t, []string{"tools", "power"}, []string(created.Categories))
}

func TestItemOwnership(t *testing.T) {
	itemStore := newFakeItemStore()
	mine := itemStore.add(1, "Mine", nil)
	theirs := itemStore.add(2, "Theirs", nil)

	svc := NewItemService(itemStore, NewLocationService(newFakeLocationStore()))
	ctx := context.Background()

	_, err := svc.Get(ctx, 1, mine.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, 1, theirs.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Delete(ctx, 1, theirs.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.Update(ctx, 1, theirs.ID, models.Item{Name: "Hijacked"})
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestItemUpdate(t *testing.T) {
	itemStore := newFakeItemStore()
	item := itemStore.add(1, "Drill", nil)
	item.Quantity = 2
	item.ImageUrl = "/uploads/images/old.png"

	svc := NewItemService(itemStore, NewLocationService(newFakeLocationStore()))

	updated, err := svc.Update(context.Background(), 1, item.ID, models.Item{Name: "Cordless drill"})
	require.NoError(t, err)
	assert.Equal(t, "Cordless drill", updated.Name)
	// Zero quantity and empty image keep the stored values.
	assert.Equal(t, 2, updated.Quantity)
	assert.Equal(t, "/uploads/images/old.png", updated.ImageUrl)
}
