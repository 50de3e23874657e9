package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/freshmart/storefront/internal/dal/postgres"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// UserDal represents the user data access layer model.
type UserDal struct {
	Id            int64       `db:"id"`
	Email         string      `db:"email"`
	PasswordHash  string      `db:"password_hash"`
	FirstName     string      `db:"first_name"`
	LastName      string      `db:"last_name"`
	Phone         pgtype.Text `db:"phone"`
	LoyaltyPoints int64       `db:"loyalty_points"`
	Role          string      `db:"role"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:            u.Id,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone.String,
		LoyaltyPoints: u.LoyaltyPoints,
		Role:          user.Role(u.Role),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

var userColumns = []string{
	"id",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"phone",
	"loyalty_points",
	"role",
	"created_at",
	"updated_at",
}

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.Conn) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a new user. Duplicate emails map to errs.ErrConflict.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (*user.User, error) {
	query, args, err := r.sb.Insert("users").
		Columns("email", "password_hash", "first_name", "last_name", "phone", "role").
		Values(u.Email, u.PasswordHash, u.FirstName, u.LastName, textOrNull(u.Phone), string(u.Role)).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := r.scanRow(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, errs.ErrConflict
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return dal.ToModel(), nil
}

// GetByID retrieves a user by id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getWhere(ctx, sq.Eq{"id": id}, "")
}

// GetByEmail retrieves a user by email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getWhere(ctx, sq.Eq{"email": email}, "")
}

// GetForUpdate locks the user row until the surrounding transaction ends.
// The order engine relies on this to serialize balance mutations per user.
func (r *PostgresUserRepository) GetForUpdate(ctx context.Context, id int64) (*user.User, error) {
	return r.getWhere(ctx, sq.Eq{"id": id}, "FOR UPDATE")
}

func (r *PostgresUserRepository) getWhere(
	ctx context.Context,
	where sq.Eq,
	suffix string,
) (*user.User, error) {
	query := r.sb.
		Select(userColumns...).
		From("users").
		Where(where)

	if suffix != "" {
		query = query.Suffix(suffix)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	dal, err := r.scanRow(r.conn.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return dal.ToModel(), nil
}

func (r *PostgresUserRepository) scanRow(row pgx.Row) (*UserDal, error) {
	var dal UserDal
	err := row.Scan(
		&dal.Id,
		&dal.Email,
		&dal.PasswordHash,
		&dal.FirstName,
		&dal.LastName,
		&dal.Phone,
		&dal.LoyaltyPoints,
		&dal.Role,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dal, nil
}

func textOrNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
