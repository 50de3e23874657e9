package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/loyalty"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresLoyaltyRepository persists the loyalty ledger and the cached user
// balance it reconciles against.
type PostgresLoyaltyRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresLoyaltyRepository creates a new Postgres loyalty repository.
func NewPostgresLoyaltyRepository(conn postgres.Conn) *PostgresLoyaltyRepository {
	return &PostgresLoyaltyRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ApplyDelta increments users.loyalty_points by delta and appends one ledger
// entry. Both writes run on the repository's connection, so inside a unit of
// work they share its transaction and roll back together.
func (r *PostgresLoyaltyRepository) ApplyDelta(
	ctx context.Context,
	userID int64,
	delta int64,
	orderID *int64,
	kind loyalty.TransactionType,
	description string,
) (*loyalty.Transaction, error) {
	query, args, err := r.sb.Update("users").
		Set("loyalty_points", sq.Expr("loyalty_points + ?", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING loyalty_points").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build balance update: %w", err)
	}

	var balance int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update loyalty balance: %w", err)
	}

	query, args, err = r.sb.Insert("loyalty_transactions").
		Columns("user_id", "order_id", "points_change", "transaction_type", "description").
		Values(userID, orderID, delta, string(kind), description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger insert: %w", err)
	}

	tr := loyalty.Transaction{
		UserID:       userID,
		OrderID:      orderID,
		PointsChange: delta,
		Type:         kind,
		Description:  description,
	}
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&tr.ID, &tr.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return &tr, nil
}

// ListRewards retrieves active rewards ordered by ascending points required.
func (r *PostgresLoyaltyRepository) ListRewards(ctx context.Context) ([]loyalty.Reward, error) {
	query, args, err := r.sb.
		Select("id", "name", "description", "points_required", "reward_type", "is_active", "created_at").
		From("loyalty_rewards").
		Where(sq.Eq{"is_active": true}).
		OrderBy("points_required ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	var result []loyalty.Reward
	for rows.Next() {
		var rw loyalty.Reward
		var description pgtype.Text
		err := rows.Scan(
			&rw.ID,
			&rw.Name,
			&description,
			&rw.PointsRequired,
			&rw.RewardType,
			&rw.IsActive,
			&rw.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rw.Description = description.String
		result = append(result, rw)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// ListTransactions retrieves the user's most recent ledger entries.
func (r *PostgresLoyaltyRepository) ListTransactions(
	ctx context.Context,
	userID int64,
	limit int,
) ([]loyalty.Transaction, error) {
	query := r.sb.
		Select("id", "user_id", "order_id", "points_change", "transaction_type", "description", "created_at").
		From("loyalty_transactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loyalty transactions: %w", err)
	}
	defer rows.Close()

	var result []loyalty.Transaction
	for rows.Next() {
		var tr loyalty.Transaction
		var orderID pgtype.Int8
		var kind string
		var description pgtype.Text
		err := rows.Scan(
			&tr.ID,
			&tr.UserID,
			&orderID,
			&tr.PointsChange,
			&kind,
			&description,
			&tr.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loyalty transaction: %w", err)
		}
		if orderID.Valid {
			id := orderID.Int64
			tr.OrderID = &id
		}
		tr.Type = loyalty.TransactionType(kind)
		tr.Description = description.String
		result = append(result, tr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
