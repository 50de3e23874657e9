package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/service/models/promotion"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresPromotionRepository represents a Postgres promotion repository.
type PostgresPromotionRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresPromotionRepository creates a new Postgres promotion repository.
func NewPostgresPromotionRepository(conn postgres.Conn) *PostgresPromotionRepository {
	return &PostgresPromotionRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListActive retrieves promotions that are active and within their date range.
func (r *PostgresPromotionRepository) ListActive(ctx context.Context) ([]promotion.Promotion, error) {
	query, args, err := r.sb.
		Select("id", "title", "description", "image_url", "promo_type",
			"discount_percentage", "start_date", "end_date", "is_active", "created_at").
		From("promotions").
		Where(sq.Eq{"is_active": true}).
		Where(sq.Expr("start_date <= now()")).
		Where(sq.Expr("end_date >= now()")).
		OrderBy("start_date DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query promotions: %w", err)
	}
	defer rows.Close()

	var result []promotion.Promotion
	for rows.Next() {
		var p promotion.Promotion
		var description, imageURL pgtype.Text
		var discount pgtype.Int4
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&description,
			&imageURL,
			&p.PromoType,
			&discount,
			&p.StartDate,
			&p.EndDate,
			&p.IsActive,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan promotion: %w", err)
		}
		p.Description = description.String
		p.ImageURL = imageURL.String
		p.DiscountPercentage = int(discount.Int32)
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
