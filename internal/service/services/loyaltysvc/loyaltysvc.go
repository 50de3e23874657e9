package loyaltysvc

import (
	"context"
	"fmt"

	"github.com/freshmart/storefront/internal/dal/interfaces/iloyaltyrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/freshmart/storefront/internal/service/models/loyalty"
)

// LoyaltyService exposes the read side of the loyalty ledger: the cached
// balance, active rewards and recent transactions. Writes happen only inside
// the order transaction engine through the ledger repository.
type LoyaltyService struct {
	userRepo    iuserrepo.IUserRepository
	loyaltyRepo iloyaltyrepo.ILoyaltyRepository
}

// NewLoyaltyService creates a new LoyaltyService.
func NewLoyaltyService(
	userRepo iuserrepo.IUserRepository,
	loyaltyRepo iloyaltyrepo.ILoyaltyRepository,
) *LoyaltyService {
	return &LoyaltyService{
		userRepo:    userRepo,
		loyaltyRepo: loyaltyRepo,
	}
}

// Balance returns the user's current point balance.
func (s *LoyaltyService) Balance(ctx context.Context, userID int64) (int64, error) {
	usr, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("user %d: %w", userID, err)
	}
	return usr.LoyaltyPoints, nil
}

// Rewards returns active rewards, cheapest first.
func (s *LoyaltyService) Rewards(ctx context.Context) ([]loyalty.Reward, error) {
	return s.loyaltyRepo.ListRewards(ctx)
}

// Transactions returns the user's most recent ledger entries.
func (s *LoyaltyService) Transactions(
	ctx context.Context,
	userID int64,
	limit int,
) ([]loyalty.Transaction, error) {
	return s.loyaltyRepo.ListTransactions(ctx, userID, limit)
}

// Summary composes balance, rewards and recent transactions into the
// customer-facing loyalty view.
func (s *LoyaltyService) Summary(
	ctx context.Context,
	userID int64,
	limit int,
) (*loyalty.Summary, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.loyaltyRepo.ListRewards(ctx)
	if err != nil {
		return nil, err
	}

	transactions, err := s.loyaltyRepo.ListTransactions(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	return &loyalty.Summary{
		CurrentPoints: balance,
		Rewards:       rewards,
		Transactions:  transactions,
	}, nil
}
