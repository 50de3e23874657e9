package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/service/models/currency"
	"github.com/freshmart/storefront/internal/service/models/order"
	"github.com/freshmart/storefront/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                  int64     `db:"id"`
	UserId              int64     `db:"user_id"`
	StoreId             int64     `db:"store_id"`
	TotalAmountCents    int64     `db:"total_amount_cents"`
	TotalAmountCurrency string    `db:"total_amount_currency"`
	Status              string    `db:"status"`
	OrderType           string    `db:"order_type"`
	DeliveryAddress     string    `db:"delivery_address"`
	PaymentMethod       string    `db:"payment_method"`
	LoyaltyPointsUsed   int64     `db:"loyalty_points_used"`
	LoyaltyPointsEarned int64     `db:"loyalty_points_earned"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalAmountCurrency)
	if err != nil {
		return nil, err
	}
	return &order.Order{
		ID:                  o.Id,
		UserID:              o.UserId,
		StoreID:             o.StoreId,
		TotalAmountCents:    o.TotalAmountCents,
		TotalAmountCurrency: cur,
		Status:              order.Status(o.Status),
		OrderType:           order.OrderType(o.OrderType),
		DeliveryAddress:     o.DeliveryAddress,
		PaymentMethod:       o.PaymentMethod,
		LoyaltyPointsUsed:   o.LoyaltyPointsUsed,
		LoyaltyPointsEarned: o.LoyaltyPointsEarned,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		OrderItems:          []orderitem.OrderItem{}, // Populated separately
	}, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var orderColumns = []string{
	"id",
	"user_id",
	"store_id",
	"total_amount_cents",
	"total_amount_currency",
	"status",
	"order_type",
	"delivery_address",
	"payment_method",
	"loyalty_points_used",
	"loyalty_points_earned",
	"created_at",
	"updated_at",
}

// Insert persists the order header and returns it with the generated id and
// timestamps.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	query, args, err := r.sb.Insert("orders").
		Columns(
			"user_id",
			"store_id",
			"total_amount_cents",
			"total_amount_currency",
			"status",
			"order_type",
			"delivery_address",
			"payment_method",
			"loyalty_points_used",
			"loyalty_points_earned",
		).
		Values(
			o.UserID,
			o.StoreID,
			o.TotalAmountCents,
			o.TotalAmountCurrency.String(),
			string(o.Status),
			string(o.OrderType),
			o.DeliveryAddress,
			o.PaymentMethod,
			o.LoyaltyPointsUsed,
			o.LoyaltyPointsEarned,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var dal OrderDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.UserId,
		&dal.StoreId,
		&dal.TotalAmountCents,
		&dal.TotalAmountCurrency,
		&dal.Status,
		&dal.OrderType,
		&dal.DeliveryAddress,
		&dal.PaymentMethod,
		&dal.LoyaltyPointsUsed,
		&dal.LoyaltyPointsEarned,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}

	return model, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	query := r.sb.
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		query = query.Where(sq.Eq{"user_id": filter.UserIds})
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.StoreId,
			&dal.TotalAmountCents,
			&dal.TotalAmountCurrency,
			&dal.Status,
			&dal.OrderType,
			&dal.DeliveryAddress,
			&dal.PaymentMethod,
			&dal.LoyaltyPointsUsed,
			&dal.LoyaltyPointsEarned,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
