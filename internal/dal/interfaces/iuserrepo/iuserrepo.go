package iuserrepo

import (
	"context"

	"github.com/freshmart/storefront/internal/service/models/user"
)

// IUserRepository is an interface for the user postgres repository.
type IUserRepository interface {
	Insert(ctx context.Context, u user.User) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetForUpdate locks the user row for the rest of the transaction.
	// Only meaningful on a repository bound to a unit of work.
	GetForUpdate(ctx context.Context, id int64) (*user.User, error)
}
