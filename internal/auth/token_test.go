package auth

import (
	"testing"
	"time"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte("test-secret"),
		ttl:    ttl,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(time.Hour)

	signed, err := svc.CreateToken(&user.User{
		ID:    7,
		Email: "shopper@example.com",
		Role:  user.RoleCustomer,
	})
	require.NoError(t, err)

	identity, err := svc.VerifyToken(signed)
	require.NoError(t, err)

	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "shopper@example.com", identity.Email)
	assert.Equal(t, user.RoleCustomer, identity.Role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(time.Hour)

	_, err := svc.VerifyToken("not.a.token")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signed, err := newTestTokenService(time.Hour).CreateToken(&user.User{ID: 1})
	require.NoError(t, err)

	other := &TokenService{secret: []byte("different-secret"), ttl: time.Hour}
	_, err = other.VerifyToken(signed)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	svc := newTestTokenService(-time.Minute)

	signed, err := svc.CreateToken(&user.User{ID: 1})
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
