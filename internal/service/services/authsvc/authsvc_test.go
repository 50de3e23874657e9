package authsvc

import (
	"context"
	"testing"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	nextID  int64
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*user.User{}}
}

func (f *fakeUserRepo) Insert(_ context.Context, u user.User) (*user.User, error) {
	if _, exists := f.byEmail[u.Email]; exists {
		return nil, errs.ErrConflict
	}
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = &u
	return &u, nil
}

func (f *fakeUserRepo) GetByID(context.Context, int64) (*user.User, error) {
	return nil, errs.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetForUpdate(context.Context, int64) (*user.User, error) {
	return nil, errs.ErrNotFound
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) CreateToken(u *user.User) (string, error) {
	return "token-for-" + u.Email, nil
}

func TestRegister(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newFakeUserRepo(), fakeTokenIssuer{})

	registered, token, err := svc.Register(context.Background(), RegisterModel{
		Email:     "shopper@example.com",
		Password:  "hunter22",
		FirstName: "Sam",
		LastName:  "Shopper",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-shopper@example.com", token)
	assert.Equal(t, user.RoleCustomer, registered.Role)
	assert.Zero(t, registered.LoyaltyPoints)
	assert.NotEqual(t, "hunter22", registered.PasswordHash, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := NewAuthService(newFakeUserRepo(), fakeTokenIssuer{})

	model := RegisterModel{
		Email:     "shopper@example.com",
		Password:  "hunter22",
		FirstName: "Sam",
		LastName:  "Shopper",
	}

	_, _, err := svc.Register(context.Background(), model)
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), model)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		model RegisterModel
	}{
		{
			name: "missing email",
			model: RegisterModel{
				Password: "hunter22", FirstName: "Sam", LastName: "Shopper",
			},
		},
		{
			name: "missing password",
			model: RegisterModel{
				Email: "shopper@example.com", FirstName: "Sam", LastName: "Shopper",
			},
		},
		{
			name: "malformed email",
			model: RegisterModel{
				Email: "not-an-email", Password: "hunter22",
				FirstName: "Sam", LastName: "Shopper",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := NewAuthService(newFakeUserRepo(), fakeTokenIssuer{})

			_, _, err := svc.Register(context.Background(), tt.model)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := NewAuthService(repo, fakeTokenIssuer{})

	_, _, err := svc.Register(context.Background(), RegisterModel{
		Email:     "shopper@example.com",
		Password:  "hunter22",
		FirstName: "Sam",
		LastName:  "Shopper",
	})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		loggedIn, token, err := svc.Login(context.Background(), "shopper@example.com", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "shopper@example.com", loggedIn.Email)
		assert.Equal(t, "token-for-shopper@example.com", token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "shopper@example.com", "wrong")
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter22")
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})
}
