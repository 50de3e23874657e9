package iauditrepo

import (
	"context"

	"github.com/freshmart/storefront/internal/service/models/order"
)

// IAuditorRepository is interface for the auditor repository.
type IAuditorRepository interface {
	LogOrdersPlaced(ctx context.Context, orders []order.Order) error
}
