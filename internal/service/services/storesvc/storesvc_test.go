package storesvc

import (
	"context"
	"testing"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStoreRepo struct {
	stores     []store.Store
	lastFilter store.QueryStoresModel
}

func (f *fakeStoreRepo) Insert(_ context.Context, s store.Store) (*store.Store, error) {
	s.ID = int64(len(f.stores) + 1)
	f.stores = append(f.stores, s)
	return &s, nil
}

func (f *fakeStoreRepo) Query(
	_ context.Context,
	filter *store.QueryStoresModel,
) ([]store.Store, error) {
	f.lastFilter = *filter
	return f.stores, nil
}

func TestCreateStore(t *testing.T) {
	t.Parallel()

	t.Run("applies default hours", func(t *testing.T) {
		t.Parallel()

		svc := NewStoreService(&fakeStoreRepo{})

		created, err := svc.CreateStore(context.Background(), store.Store{
			Name:      "Downtown",
			Address:   "1 Main St",
			Latitude:  40.71,
			Longitude: -74.0,
		})
		require.NoError(t, err)

		assert.Equal(t, "06:00:00", created.HoursOpen)
		assert.Equal(t, "23:00:00", created.HoursClose)
	})

	t.Run("keeps explicit hours", func(t *testing.T) {
		t.Parallel()

		svc := NewStoreService(&fakeStoreRepo{})

		created, err := svc.CreateStore(context.Background(), store.Store{
			Name:       "Night market",
			Address:    "2 Main St",
			Latitude:   40.71,
			Longitude:  -74.0,
			HoursOpen:  "18:00:00",
			HoursClose: "02:00:00",
		})
		require.NoError(t, err)

		assert.Equal(t, "18:00:00", created.HoursOpen)
		assert.Equal(t, "02:00:00", created.HoursClose)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		t.Parallel()

		svc := NewStoreService(&fakeStoreRepo{})

		_, err := svc.CreateStore(context.Background(), store.Store{Name: "No address"})
		require.ErrorIs(t, err, errs.ErrValidation)

		_, err = svc.CreateStore(context.Background(), store.Store{
			Name:    "No coordinates",
			Address: "3 Main St",
		})
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestListStores(t *testing.T) {
	t.Parallel()

	repo := &fakeStoreRepo{}
	svc := NewStoreService(repo)

	lat, lng := 40.71, -74.0
	stores, err := svc.ListStores(context.Background(), store.QueryStoresModel{
		Latitude:  &lat,
		Longitude: &lng,
		RadiusKm:  5,
	})
	require.NoError(t, err)

	assert.NotNil(t, stores)
	require.NotNil(t, repo.lastFilter.Latitude)
	assert.Equal(t, 5.0, repo.lastFilter.RadiusKm)
}
