package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/freshmart/storefront/internal/dal/interfaces/iauditrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iloyaltyrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/freshmart/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/dal/uow"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/currency"
	"github.com/freshmart/storefront/internal/service/models/loyalty"
	"github.com/freshmart/storefront/internal/service/models/order"
	"github.com/freshmart/storefront/internal/service/models/orderitem"
	"github.com/freshmart/storefront/internal/service/models/outbox"
)

// OrderService is the order transaction engine: it validates and prices an
// order, applies the loyalty discount and persists the order, its items, the
// balance mutation and the ledger entries as one transaction.
type OrderService struct {
	pgClient   *postgres.Client
	uowFactory func() unitOfWork
	auditRepo  iauditrepo.IAuditorRepository
	outboxRepo ioutboxrepo.IOutboxRepository
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
	UserRepository() iuserrepo.IUserRepository
	LoyaltyRepository() iloyaltyrepo.ILoyaltyRepository
}

func (s *OrderService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}
	return uow.NewUnitOfWork(s.pgClient)
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithAuditRepository sets the audit publisher for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAuditRepository(repo iauditrepo.IAuditorRepository) option {
	return func(s *OrderService) {
		s.auditRepo = repo
	}
}

// WithOutboxRepository sets the outbox fallback for failed audit publishes.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOutboxRepository(repo ioutboxrepo.IOutboxRepository) option {
	return func(s *OrderService) {
		s.outboxRepo = repo
	}
}

// WithUnitOfWorkFactory overrides how units of work are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.uowFactory = factory
	}
}

// PlaceOrder runs the whole placement as one unit of work:
//
//  1. The user row is locked for the duration of the transaction, so
//     concurrent placements by the same user serialize on the balance.
//  2. Each item's price and earn rate are read once as a snapshot; an
//     unknown product fails the whole call.
//  3. One loyalty point redeems one cent. The discount is capped so the
//     total never goes negative; redeeming beyond the pre-discount total is
//     allowed and wastes the excess points.
//  4. Redeeming more points than the user holds is rejected, which keeps the
//     balance non-negative.
//
// Any error rolls back everything: no order without its items, no balance
// change without its ledger entries.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	model order.PlaceOrderModel,
) (*order.Order, error) {
	if err := validatePlaceOrder(&model); err != nil {
		return nil, err
	}

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := work.Rollback(ctx); err != nil {
			slog.Error("Failed to roll back order placement", "error", err)
		}
	}()

	usr, err := work.UserRepository().GetForUpdate(ctx, model.UserID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", model.UserID, err)
	}

	if model.LoyaltyPointsUsed > usr.LoyaltyPoints {
		return nil, fmt.Errorf(
			"redeeming %d points with balance %d: %w",
			model.LoyaltyPointsUsed, usr.LoyaltyPoints, errs.ErrInsufficientPoints,
		)
	}

	var subtotalCents, pointsEarned int64
	items := make([]orderitem.OrderItem, 0, len(model.Items))
	for _, item := range model.Items {
		pricing, err := work.ProductRepository().GetPricing(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}

		lineTotal := pricing.PriceCents * int64(item.Quantity)
		subtotalCents += lineTotal
		pointsEarned += pricing.LoyaltyPointsEarned * int64(item.Quantity)

		items = append(items, orderitem.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			UnitPriceCents:  pricing.PriceCents,
			TotalPriceCents: lineTotal,
			PriceCurrency:   currency.CurrencyUSD,
		})
	}

	// One point = one cent; clamp at zero, never a negative total.
	totalCents := subtotalCents - model.LoyaltyPointsUsed
	if totalCents < 0 {
		totalCents = 0
	}

	created, err := work.OrderRepository().Insert(ctx, order.Order{
		UserID:              model.UserID,
		StoreID:             model.StoreID,
		TotalAmountCents:    totalCents,
		TotalAmountCurrency: currency.CurrencyUSD,
		Status:              order.StatusPending,
		OrderType:           model.OrderType,
		DeliveryAddress:     model.DeliveryAddress,
		PaymentMethod:       model.PaymentMethod,
		LoyaltyPointsUsed:   model.LoyaltyPointsUsed,
		LoyaltyPointsEarned: pointsEarned,
	})
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = created.ID
	}
	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}
	created.OrderItems = insertedItems

	if model.LoyaltyPointsUsed > 0 {
		_, err = work.LoyaltyRepository().ApplyDelta(
			ctx,
			model.UserID,
			-model.LoyaltyPointsUsed,
			&created.ID,
			loyalty.TransactionRedeemed,
			"Points redeemed for order",
		)
		if err != nil {
			return nil, err
		}
	}

	if pointsEarned > 0 {
		_, err = work.LoyaltyRepository().ApplyDelta(
			ctx,
			model.UserID,
			pointsEarned,
			&created.ID,
			loyalty.TransactionEarned,
			"Points earned from purchase",
		)
		if err != nil {
			return nil, err
		}
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order placement: %w", err)
	}

	s.auditOrderPlaced(ctx, *created)

	return created, nil
}

func validatePlaceOrder(model *order.PlaceOrderModel) error {
	if model.StoreID <= 0 {
		return fmt.Errorf("store id is required: %w", errs.ErrValidation)
	}
	if len(model.Items) == 0 {
		return fmt.Errorf("order must contain at least one item: %w", errs.ErrValidation)
	}
	for _, item := range model.Items {
		if item.ProductID <= 0 || item.Quantity < 1 {
			return fmt.Errorf("invalid order item: %w", errs.ErrValidation)
		}
	}
	if model.LoyaltyPointsUsed < 0 {
		return fmt.Errorf("loyalty points used must be non-negative: %w", errs.ErrValidation)
	}

	return nil
}

// auditOrderPlaced publishes the order-placed event best effort; a failed
// publish is parked in the outbox for the retry worker.
func (s *OrderService) auditOrderPlaced(ctx context.Context, o order.Order) {
	if s.auditRepo == nil {
		return
	}

	publishErr := s.auditRepo.LogOrdersPlaced(ctx, []order.Order{o})
	if publishErr == nil {
		return
	}
	slog.Warn("Failed to publish order-placed audit event, queueing to outbox",
		"order_id", o.ID, "error", publishErr)

	if s.outboxRepo == nil {
		return
	}

	payload, err := json.Marshal(o)
	if err != nil {
		slog.Error("Failed to marshal order for outbox", "order_id", o.ID, "error", err)
		return
	}

	now := time.Now()
	err = s.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   "storefront.order.placed",
		RoutingKey:  "storefront.order.placed",
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  10,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
	if err != nil {
		slog.Error("Failed to queue audit event to outbox", "order_id", o.ID, "error", err)
	}
}

// GetOrders retrieves orders with their items based on filter.
func (s *OrderService) GetOrders(
	ctx context.Context,
	model order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &model)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderItemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		orderItemQuery.OrderIds = append(orderItemQuery.OrderIds, o.ID)
	}
	orderItems, err := work.OrderItemRepository().Query(ctx, orderItemQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range orderItems {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}
