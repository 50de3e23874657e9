package iloyaltyrepo

import (
	"context"

	"github.com/freshmart/storefront/internal/service/models/loyalty"
)

// ILoyaltyRepository is an interface for the loyalty ledger postgres
// repository.
type ILoyaltyRepository interface {
	// ApplyDelta increments the user's cached balance by delta (may be
	// negative) and appends exactly one ledger entry. It is the only
	// sanctioned write path to users.loyalty_points.
	ApplyDelta(
		ctx context.Context,
		userID int64,
		delta int64,
		orderID *int64,
		kind loyalty.TransactionType,
		description string,
	) (*loyalty.Transaction, error)

	ListRewards(ctx context.Context) ([]loyalty.Reward, error)
	ListTransactions(ctx context.Context, userID int64, limit int) ([]loyalty.Transaction, error)
}
