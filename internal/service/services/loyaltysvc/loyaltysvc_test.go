package loyaltysvc

import (
	"context"
	"testing"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/loyalty"
	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[int64]*user.User
}

func (f *fakeUserRepo) Insert(_ context.Context, u user.User) (*user.User, error) {
	f.users[u.ID] = &u
	return &u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(context.Context, string) (*user.User, error) {
	return nil, errs.ErrNotFound
}

func (f *fakeUserRepo) GetForUpdate(ctx context.Context, id int64) (*user.User, error) {
	return f.GetByID(ctx, id)
}

type fakeLoyaltyRepo struct {
	rewards      []loyalty.Reward
	transactions []loyalty.Transaction
	lastLimit    int
}

func (f *fakeLoyaltyRepo) ApplyDelta(
	context.Context,
	int64,
	int64,
	*int64,
	loyalty.TransactionType,
	string,
) (*loyalty.Transaction, error) {
	return nil, nil
}

func (f *fakeLoyaltyRepo) ListRewards(context.Context) ([]loyalty.Reward, error) {
	return f.rewards, nil
}

func (f *fakeLoyaltyRepo) ListTransactions(
	_ context.Context,
	_ int64,
	limit int,
) ([]loyalty.Transaction, error) {
	f.lastLimit = limit
	if limit < len(f.transactions) {
		return f.transactions[:limit], nil
	}
	return f.transactions, nil
}

func TestSummary(t *testing.T) {
	t.Parallel()

	userRepo := &fakeUserRepo{users: map[int64]*user.User{
		1: {ID: 1, LoyaltyPoints: 120},
	}}
	loyaltyRepo := &fakeLoyaltyRepo{
		rewards: []loyalty.Reward{
			{ID: 1, Name: "Free coffee", PointsRequired: 100},
			{ID: 2, Name: "Free delivery", PointsRequired: 250},
		},
		transactions: []loyalty.Transaction{
			{ID: 3, UserID: 1, PointsChange: 10, Type: loyalty.TransactionEarned},
			{ID: 2, UserID: 1, PointsChange: -50, Type: loyalty.TransactionRedeemed},
			{ID: 1, UserID: 1, PointsChange: 160, Type: loyalty.TransactionEarned},
		},
	}

	svc := NewLoyaltyService(userRepo, loyaltyRepo)

	summary, err := svc.Summary(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(120), summary.CurrentPoints)
	assert.Len(t, summary.Rewards, 2)
	assert.Len(t, summary.Transactions, 2)
	assert.Equal(t, 2, loyaltyRepo.lastLimit)
}

func TestSummaryUnknownUser(t *testing.T) {
	t.Parallel()

	svc := NewLoyaltyService(
		&fakeUserRepo{users: map[int64]*user.User{}},
		&fakeLoyaltyRepo{},
	)

	_, err := svc.Summary(context.Background(), 42, 10)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestBalance(t *testing.T) {
	t.Parallel()

	svc := NewLoyaltyService(
		&fakeUserRepo{users: map[int64]*user.User{7: {ID: 7, LoyaltyPoints: 15}}},
		&fakeLoyaltyRepo{},
	)

	balance, err := svc.Balance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(15), balance)
}
