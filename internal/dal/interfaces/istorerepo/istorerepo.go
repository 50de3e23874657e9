package istorerepo

import (
	"context"

	"github.com/freshmart/storefront/internal/service/models/store"
)

// IStoreRepository is an interface for the store directory postgres repository.
type IStoreRepository interface {
	Insert(ctx context.Context, s store.Store) (*store.Store, error)
	Query(ctx context.Context, filter *store.QueryStoresModel) ([]store.Store, error)
}
