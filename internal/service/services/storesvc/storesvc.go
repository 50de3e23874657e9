package storesvc

import (
	"context"
	"fmt"

	"github.com/freshmart/storefront/internal/dal/interfaces/istorerepo"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/store"
)

// StoreService serves the physical store directory.
type StoreService struct {
	storeRepo istorerepo.IStoreRepository
}

// NewStoreService creates a new StoreService.
func NewStoreService(storeRepo istorerepo.IStoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// ListStores returns active stores, nearest first when coordinates are given.
func (s *StoreService) ListStores(
	ctx context.Context,
	filter store.QueryStoresModel,
) ([]store.Store, error) {
	stores, err := s.storeRepo.Query(ctx, &filter)
	if err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []store.Store{}
	}
	return stores, nil
}

// CreateStore adds a store location to the directory.
func (s *StoreService) CreateStore(ctx context.Context, st store.Store) (*store.Store, error) {
	if st.Name == "" || st.Address == "" {
		return nil, fmt.Errorf("store name and address are required: %w", errs.ErrValidation)
	}
	if st.Latitude == 0 && st.Longitude == 0 {
		return nil, fmt.Errorf("store coordinates are required: %w", errs.ErrValidation)
	}

	if st.HoursOpen == "" {
		st.HoursOpen = "06:00:00"
	}
	if st.HoursClose == "" {
		st.HoursClose = "23:00:00"
	}

	return s.storeRepo.Insert(ctx, st)
}
