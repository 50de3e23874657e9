package uow

import (
	"context"

	"github.com/freshmart/storefront/internal/dal/interfaces/iloyaltyrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/freshmart/storefront/internal/dal/postgres"
	loyaltyrepo "github.com/freshmart/storefront/internal/dal/repositories/loyalty/postgres"
	orderrepo "github.com/freshmart/storefront/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/freshmart/storefront/internal/dal/repositories/orderitem/postgres"
	productrepo "github.com/freshmart/storefront/internal/dal/repositories/product/postgres"
	userrepo "github.com/freshmart/storefront/internal/dal/repositories/user/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// unitOfWork binds the repositories touched by one order placement to a
// single pgx transaction. Before Begin the repositories run on the pool;
// after Begin they run on the transaction until Commit or Rollback.
type unitOfWork struct {
	pool          *pgxpool.Pool
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	productRepo   iproductrepo.IProductRepository
	userRepo      iuserrepo.IUserRepository
	loyaltyRepo   iloyaltyrepo.ILoyaltyRepository
}

func NewUnitOfWork(db *postgres.Client) *unitOfWork {
	pool := db.Pool()
	return &unitOfWork{
		pool:          pool,
		orderRepo:     orderrepo.NewPostgresOrderRepository(pool),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(pool),
		productRepo:   productrepo.NewPostgresProductRepository(pool),
		userRepo:      userrepo.NewPostgresUserRepository(pool),
		loyaltyRepo:   loyaltyrepo.NewPostgresLoyaltyRepository(pool),
	}
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) UserRepository() iuserrepo.IUserRepository {
	return u.userRepo
}

func (u *unitOfWork) LoyaltyRepository() iloyaltyrepo.ILoyaltyRepository {
	return u.loyaltyRepo
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.productRepo = productrepo.NewPostgresProductRepository(tx)
	u.userRepo = userrepo.NewPostgresUserRepository(tx)
	u.loyaltyRepo = loyaltyrepo.NewPostgresLoyaltyRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback is a no-op when the transaction already committed.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback(ctx)
	if err == pgx.ErrTxClosed {
		return nil
	}
	return err
}
