package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/category"
	"github.com/freshmart/storefront/internal/service/models/currency"
	"github.com/freshmart/storefront/internal/service/models/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id                  int64       `db:"id"`
	Name                string      `db:"name"`
	Description         pgtype.Text `db:"description"`
	PriceCents          int64       `db:"price_cents"`
	PriceCurrency       string      `db:"price_currency"`
	CategoryId          pgtype.Int8 `db:"category_id"`
	CategoryName        pgtype.Text `db:"category_name"`
	ImageUrl            pgtype.Text `db:"image_url"`
	Barcode             pgtype.Text `db:"barcode"`
	StockQuantity       int         `db:"stock_quantity"`
	IsActive            bool        `db:"is_active"`
	LoyaltyPointsEarned int64       `db:"loyalty_points_earned"`
	CreatedAt           time.Time   `db:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}
	return &product.Product{
		ID:                  p.Id,
		Name:                p.Name,
		Description:         p.Description.String,
		PriceCents:          p.PriceCents,
		PriceCurrency:       cur,
		CategoryID:          p.CategoryId.Int64,
		CategoryName:        p.CategoryName.String,
		ImageURL:            p.ImageUrl.String,
		Barcode:             p.Barcode.String,
		StockQuantity:       p.StockQuantity,
		IsActive:            p.IsActive,
		LoyaltyPointsEarned: p.LoyaltyPointsEarned,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}, nil
}

// PostgresProductRepository represents a Postgres catalog repository.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres catalog repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetPricing returns the current price and loyalty earn rate of an active
// product. The order engine reads this once per item as a snapshot.
func (r *PostgresProductRepository) GetPricing(
	ctx context.Context,
	productID int64,
) (*product.Pricing, error) {
	query, args, err := r.sb.
		Select("id", "price_cents", "loyalty_points_earned").
		From("products").
		Where(sq.Eq{"id": productID, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var pricing product.Pricing
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&pricing.ProductID,
		&pricing.PriceCents,
		&pricing.LoyaltyPointsEarned,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product pricing: %w", err)
	}

	return &pricing, nil
}

func (r *PostgresProductRepository) listQuery(filter *product.QueryProductsModel) sq.SelectBuilder {
	query := r.sb.
		Select(
			"p.id",
			"p.name",
			"p.description",
			"p.price_cents",
			"p.price_currency",
			"p.category_id",
			"c.name AS category_name",
			"p.image_url",
			"p.barcode",
			"p.stock_quantity",
			"p.is_active",
			"p.loyalty_points_earned",
			"p.created_at",
			"p.updated_at",
		).
		From("products p").
		LeftJoin("categories c ON p.category_id = c.id").
		Where(sq.Eq{"p.is_active": true})

	if filter.CategoryID > 0 {
		query = query.Where(sq.Eq{"p.category_id": filter.CategoryID})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			sq.Or{
				sq.ILike{"p.name": pattern},
				sq.ILike{"p.description": pattern},
			},
		)
	}

	return query
}

// Query retrieves a page of active products ordered by name.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	query := r.listQuery(filter).OrderBy("p.name")

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
		if filter.Page > 1 {
			query = query.Offset(uint64((filter.Page - 1) * filter.Limit))
		}
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.PriceCents,
			&dal.PriceCurrency,
			&dal.CategoryId,
			&dal.CategoryName,
			&dal.ImageUrl,
			&dal.Barcode,
			&dal.StockQuantity,
			&dal.IsActive,
			&dal.LoyaltyPointsEarned,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert product dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the number of active products matching the filter.
func (r *PostgresProductRepository) Count(
	ctx context.Context,
	filter *product.QueryProductsModel,
) (int, error) {
	query := r.sb.
		Select("COUNT(*)").
		From("products p").
		Where(sq.Eq{"p.is_active": true})

	if filter.CategoryID > 0 {
		query = query.Where(sq.Eq{"p.category_id": filter.CategoryID})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			sq.Or{
				sq.ILike{"p.name": pattern},
				sq.ILike{"p.description": pattern},
			},
		)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}

// ListCategories retrieves active categories ordered by name.
func (r *PostgresProductRepository) ListCategories(ctx context.Context) ([]category.Category, error) {
	query, args, err := r.sb.
		Select("id", "name", "description", "image_url", "is_active", "created_at").
		From("categories").
		Where(sq.Eq{"is_active": true}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var c category.Category
		var description, imageURL pgtype.Text
		err := rows.Scan(&c.ID, &c.Name, &description, &imageURL, &c.IsActive, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.Description = description.String
		c.ImageURL = imageURL.String
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
