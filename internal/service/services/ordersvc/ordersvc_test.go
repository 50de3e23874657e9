package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/freshmart/storefront/internal/dal/interfaces/iloyaltyrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/category"
	"github.com/freshmart/storefront/internal/service/models/loyalty"
	"github.com/freshmart/storefront/internal/service/models/order"
	"github.com/freshmart/storefront/internal/service/models/orderitem"
	"github.com/freshmart/storefront/internal/service/models/product"
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
	return f.get(id)
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserRepo) GetForUpdate(_ context.Context, id int64) (*user.User, error) {
	return f.get(id)
}

func (f *fakeUserRepo) get(id int64) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

type fakeProductRepo struct {
	pricing map[int64]product.Pricing
}

func (f *fakeProductRepo) GetPricing(_ context.Context, productID int64) (*product.Pricing, error) {
	p, ok := f.pricing[productID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) Query(context.Context, *product.QueryProductsModel) ([]product.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Count(context.Context, *product.QueryProductsModel) (int, error) {
	return 0, nil
}

func (f *fakeProductRepo) ListCategories(context.Context) ([]category.Category, error) {
	return nil, nil
}

type fakeOrderRepo struct {
	nextID int64
	orders []order.Order
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	f.nextID++
	o.ID = f.nextID
	f.orders = append(f.orders, o)
	return &o, nil
}

func (f *fakeOrderRepo) Query(_ context.Context, _ *order.QueryOrdersModel) ([]order.Order, error) {
	return f.orders, nil
}

type fakeOrderItemRepo struct {
	nextID int64
	items  []orderitem.OrderItem
}

func (f *fakeOrderItemRepo) BulkInsert(
	_ context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	inserted := make([]orderitem.OrderItem, 0, len(orderItems))
	for _, item := range orderItems {
		f.nextID++
		item.ID = f.nextID
		f.items = append(f.items, item)
		inserted = append(inserted, item)
	}
	return inserted, nil
}

func (f *fakeOrderItemRepo) Query(
	_ context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	var matched []orderitem.OrderItem
	for _, item := range f.items {
		for _, id := range filter.OrderIds {
			if item.OrderID == id {
				matched = append(matched, item)
			}
		}
	}
	return matched, nil
}

type fakeLoyaltyRepo struct {
	users   *fakeUserRepo
	entries []loyalty.Transaction
}

func (f *fakeLoyaltyRepo) ApplyDelta(
	_ context.Context,
	userID int64,
	delta int64,
	orderID *int64,
	kind loyalty.TransactionType,
	description string,
) (*loyalty.Transaction, error) {
	u, ok := f.users.users[userID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	u.LoyaltyPoints += delta

	entry := loyalty.Transaction{
		ID:           int64(len(f.entries) + 1),
		UserID:       userID,
		OrderID:      orderID,
		PointsChange: delta,
		Type:         kind,
		Description:  description,
	}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeLoyaltyRepo) ListRewards(context.Context) ([]loyalty.Reward, error) {
	return nil, nil
}

func (f *fakeLoyaltyRepo) ListTransactions(
	context.Context,
	int64,
	int,
) ([]loyalty.Transaction, error) {
	return f.entries, nil
}

// fakeUnitOfWork hands out the shared fakes and records transaction
// boundaries so tests can assert commit-or-rollback behavior.
type fakeUnitOfWork struct {
	userRepo      *fakeUserRepo
	productRepo   *fakeProductRepo
	orderRepo     *fakeOrderRepo
	orderItemRepo *fakeOrderItemRepo
	loyaltyRepo   *fakeLoyaltyRepo

	begun      bool
	committed  bool
	rolledBack bool
	beginErr   error
}

func (f *fakeUnitOfWork) Begin(context.Context) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.begun = true
	return nil
}

func (f *fakeUnitOfWork) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeUnitOfWork) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

func (f *fakeUnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return f.orderRepo
}

func (f *fakeUnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return f.orderItemRepo
}

func (f *fakeUnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return f.productRepo
}

func (f *fakeUnitOfWork) UserRepository() iuserrepo.IUserRepository {
	return f.userRepo
}

func (f *fakeUnitOfWork) LoyaltyRepository() iloyaltyrepo.ILoyaltyRepository {
	return f.loyaltyRepo
}

func newFixture(balance int64, pricing map[int64]product.Pricing) (*OrderService, *fakeUnitOfWork) {
	userRepo := &fakeUserRepo{users: map[int64]*user.User{
		1: {ID: 1, Email: "shopper@example.com", LoyaltyPoints: balance},
	}}
	work := &fakeUnitOfWork{
		userRepo:      userRepo,
		productRepo:   &fakeProductRepo{pricing: pricing},
		orderRepo:     &fakeOrderRepo{},
		orderItemRepo: &fakeOrderItemRepo{},
		loyaltyRepo:   &fakeLoyaltyRepo{users: userRepo},
	}
	svc := MustNewOrderService(WithUnitOfWorkFactory(func() unitOfWork { return work }))
	return svc, work
}

func TestPlaceOrder(t *testing.T) {
	t.Parallel()

	pricing := map[int64]product.Pricing{
		10: {ProductID: 10, PriceCents: 249, LoyaltyPointsEarned: 5},
	}

	t.Run("redeems and earns in one transaction", func(t *testing.T) {
		t.Parallel()

		svc, work := newFixture(100, pricing)

		placed, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:            1,
			StoreID:           1,
			OrderType:         order.OrderTypePickup,
			LoyaltyPointsUsed: 50,
			Items: []order.PlaceOrderItem{
				{ProductID: 10, Quantity: 2},
			},
		})
		require.NoError(t, err)
		require.NotNil(t, placed)

		// 2 * 249 = 498 cents, minus 50 points worth one cent each.
		assert.Equal(t, int64(448), placed.TotalAmountCents)
		assert.Equal(t, int64(50), placed.LoyaltyPointsUsed)
		assert.Equal(t, int64(10), placed.LoyaltyPointsEarned)
		assert.Equal(t, order.StatusPending, placed.Status)
		require.Len(t, placed.OrderItems, 1)
		assert.Equal(t, int64(249), placed.OrderItems[0].UnitPriceCents)
		assert.Equal(t, int64(498), placed.OrderItems[0].TotalPriceCents)
		assert.Equal(t, placed.ID, placed.OrderItems[0].OrderID)

		assert.True(t, work.committed)
		assert.Equal(t, int64(60), work.userRepo.users[1].LoyaltyPoints)

		require.Len(t, work.loyaltyRepo.entries, 2)
		assert.Equal(t, loyalty.TransactionRedeemed, work.loyaltyRepo.entries[0].Type)
		assert.Equal(t, int64(-50), work.loyaltyRepo.entries[0].PointsChange)
		assert.Equal(t, loyalty.TransactionEarned, work.loyaltyRepo.entries[1].Type)
		assert.Equal(t, int64(10), work.loyaltyRepo.entries[1].PointsChange)
		require.NotNil(t, work.loyaltyRepo.entries[0].OrderID)
		assert.Equal(t, placed.ID, *work.loyaltyRepo.entries[0].OrderID)
	})

	t.Run("no redemption writes a single earned entry", func(t *testing.T) {
		t.Parallel()

		svc, work := newFixture(0, pricing)

		placed, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:    1,
			StoreID:   1,
			OrderType: order.OrderTypeDelivery,
			Items: []order.PlaceOrderItem{
				{ProductID: 10, Quantity: 1},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(249), placed.TotalAmountCents)
		require.Len(t, work.loyaltyRepo.entries, 1)
		assert.Equal(t, loyalty.TransactionEarned, work.loyaltyRepo.entries[0].Type)
		assert.Equal(t, int64(5), work.userRepo.users[1].LoyaltyPoints)
	})

	t.Run("over-redemption clamps the total at zero", func(t *testing.T) {
		t.Parallel()

		svc, work := newFixture(1000, pricing)

		placed, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:            1,
			StoreID:           1,
			OrderType:         order.OrderTypePickup,
			LoyaltyPointsUsed: 600,
			Items: []order.PlaceOrderItem{
				{ProductID: 10, Quantity: 2},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(0), placed.TotalAmountCents)
		// The full 600 points are still burned even though only 498 were needed.
		assert.Equal(t, int64(600), placed.LoyaltyPointsUsed)
		assert.Equal(t, int64(1000-600+10), work.userRepo.users[1].LoyaltyPoints)
	})

	t.Run("rejects redeeming more points than the balance", func(t *testing.T) {
		t.Parallel()

		svc, work := newFixture(30, pricing)

		_, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:            1,
			StoreID:           1,
			OrderType:         order.OrderTypePickup,
			LoyaltyPointsUsed: 50,
			Items: []order.PlaceOrderItem{
				{ProductID: 10, Quantity: 1},
			},
		})
		require.ErrorIs(t, err, errs.ErrInsufficientPoints)

		assert.False(t, work.committed)
		assert.True(t, work.rolledBack)
		assert.Empty(t, work.orderRepo.orders)
		assert.Equal(t, int64(30), work.userRepo.users[1].LoyaltyPoints)
	})

	t.Run("unknown product fails the whole order", func(t *testing.T) {
		t.Parallel()

		svc, work := newFixture(100, pricing)

		_, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:    1,
			StoreID:   1,
			OrderType: order.OrderTypePickup,
			Items: []order.PlaceOrderItem{
				{ProductID: 10, Quantity: 1},
				{ProductID: 404, Quantity: 1},
			},
		})
		require.ErrorIs(t, err, errs.ErrNotFound)

		assert.False(t, work.committed)
		assert.True(t, work.rolledBack)
		assert.Empty(t, work.orderRepo.orders)
		assert.Empty(t, work.loyaltyRepo.entries)
	})

	t.Run("unknown user fails before pricing", func(t *testing.T) {
		t.Parallel()

		svc, work := newFixture(100, pricing)

		_, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:    99,
			StoreID:   1,
			OrderType: order.OrderTypePickup,
			Items: []order.PlaceOrderItem{
				{ProductID: 10, Quantity: 1},
			},
		})
		require.ErrorIs(t, err, errs.ErrNotFound)
		assert.False(t, work.committed)
	})

	t.Run("begin failure surfaces", func(t *testing.T) {
		t.Parallel()

		svc, work := newFixture(100, pricing)
		work.beginErr = errors.New("pool exhausted")

		_, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:    1,
			StoreID:   1,
			OrderType: order.OrderTypePickup,
			Items: []order.PlaceOrderItem{
				{ProductID: 10, Quantity: 1},
			},
		})
		require.Error(t, err)
		assert.False(t, work.committed)
	})
}

func TestPlaceOrderValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		model order.PlaceOrderModel
	}{
		{
			name: "missing store",
			model: order.PlaceOrderModel{
				UserID: 1,
				Items:  []order.PlaceOrderItem{{ProductID: 10, Quantity: 1}},
			},
		},
		{
			name:  "empty items",
			model: order.PlaceOrderModel{UserID: 1, StoreID: 1},
		},
		{
			name: "zero quantity",
			model: order.PlaceOrderModel{
				UserID:  1,
				StoreID: 1,
				Items:   []order.PlaceOrderItem{{ProductID: 10, Quantity: 0}},
			},
		},
		{
			name: "negative points",
			model: order.PlaceOrderModel{
				UserID:            1,
				StoreID:           1,
				LoyaltyPointsUsed: -1,
				Items:             []order.PlaceOrderItem{{ProductID: 10, Quantity: 1}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, work := newFixture(100, nil)

			_, err := svc.PlaceOrder(context.Background(), tt.model)
			require.ErrorIs(t, err, errs.ErrValidation)
			assert.False(t, work.begun, "validation must fail before the transaction starts")
		})
	}
}

func TestGetOrders(t *testing.T) {
	t.Parallel()

	svc, work := newFixture(100, map[int64]product.Pricing{
		10: {ProductID: 10, PriceCents: 100, LoyaltyPointsEarned: 1},
		20: {ProductID: 20, PriceCents: 350, LoyaltyPointsEarned: 3},
	})

	for _, productID := range []int64{10, 20} {
		_, err := svc.PlaceOrder(context.Background(), order.PlaceOrderModel{
			UserID:    1,
			StoreID:   1,
			OrderType: order.OrderTypePickup,
			Items: []order.PlaceOrderItem{
				{ProductID: productID, Quantity: 1},
			},
		})
		require.NoError(t, err)
	}

	orders, err := svc.GetOrders(context.Background(), order.QueryOrdersModel{UserIds: []int64{1}})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	for _, o := range orders {
		require.Len(t, o.OrderItems, 1, fmt.Sprintf("order %d should carry its item", o.ID))
		assert.Equal(t, o.ID, o.OrderItems[0].OrderID)
	}

	assert.True(t, work.committed)
}
