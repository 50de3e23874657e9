package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/service/models/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// PostgresStoreRepository represents a Postgres store directory repository.
type PostgresStoreRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresStoreRepository creates a new Postgres store repository.
func NewPostgresStoreRepository(conn postgres.Conn) *PostgresStoreRepository {
	return &PostgresStoreRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a new store location.
func (r *PostgresStoreRepository) Insert(ctx context.Context, s store.Store) (*store.Store, error) {
	query, args, err := r.sb.Insert("stores").
		Columns("name", "address", "latitude", "longitude", "phone", "hours_open", "hours_close").
		Values(s.Name, s.Address, s.Latitude, s.Longitude, textOrNull(s.Phone), s.HoursOpen, s.HoursClose).
		Suffix("RETURNING id, is_active, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	err = r.conn.QueryRow(ctx, query, args...).Scan(&s.ID, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert store: %w", err)
	}

	return &s, nil
}

// Query retrieves active stores. With coordinates set it computes haversine
// distance in SQL, filters to the radius and orders nearest first; otherwise
// stores come back ordered by name.
func (r *PostgresStoreRepository) Query(
	ctx context.Context,
	filter *store.QueryStoresModel,
) ([]store.Store, error) {
	if filter.Latitude != nil && filter.Longitude != nil {
		return r.queryByProximity(ctx, *filter.Latitude, *filter.Longitude, filter.RadiusKm)
	}

	query, args, err := r.sb.
		Select("id", "name", "address", "latitude", "longitude", "phone",
			"hours_open", "hours_close", "is_active", "created_at").
		From("stores").
		Where(sq.Eq{"is_active": true}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	return scanStores(rows, false)
}

func (r *PostgresStoreRepository) queryByProximity(
	ctx context.Context,
	lat, lng, radiusKm float64,
) ([]store.Store, error) {
	if radiusKm <= 0 {
		radiusKm = 10
	}

	// Haversine distance in kilometers (earth radius 6371 km).
	sql := `
		SELECT id, name, address, latitude, longitude, phone,
		       hours_open, hours_close, is_active, created_at, distance
		FROM (
			SELECT *,
			       6371 * acos(
			           cos(radians($1)) * cos(radians(latitude)) *
			           cos(radians(longitude) - radians($2)) +
			           sin(radians($1)) * sin(radians(latitude))
			       ) AS distance
			FROM stores
			WHERE is_active = true
		) s
		WHERE distance < $3
		ORDER BY distance
	`

	rows, err := r.conn.Query(ctx, sql, lat, lng, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores by proximity: %w", err)
	}
	defer rows.Close()

	return scanStores(rows, true)
}

func scanStores(rows pgx.Rows, withDistance bool) ([]store.Store, error) {
	var result []store.Store
	for rows.Next() {
		var s store.Store
		var phone pgtype.Text
		dest := []any{
			&s.ID, &s.Name, &s.Address, &s.Latitude, &s.Longitude, &phone,
			&s.HoursOpen, &s.HoursClose, &s.IsActive, &s.CreatedAt,
		}
		if withDistance {
			dest = append(dest, &s.DistanceKm)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		s.Phone = phone.String
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func textOrNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
