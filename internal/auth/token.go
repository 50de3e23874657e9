package auth

import (
	"fmt"
	"time"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// Identity is the authenticated principal carried by a bearer token.
type Identity struct {
	UserID int64     `json:"userId"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
}

type claims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// MustNewTokenService creates a TokenService from config. The signing secret
// is required.
func MustNewTokenService() *TokenService {
	secret := viper.GetString("auth.jwt_secret")
	if secret == "" {
		panic("auth.jwt_secret is not configured")
	}

	ttl := viper.GetDuration("auth.token_ttl")
	if ttl == 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// CreateToken signs a token for the given user.
func (s *TokenService) CreateToken(u *user.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Identity: Identity{
			UserID: u.ID,
			Email:  u.Email,
			Role:   u.Role,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and validates a token and returns the identity.
func (s *TokenService) VerifyToken(tokenString string) (*Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrUnauthorized
	}

	return &c.Identity, nil
}
