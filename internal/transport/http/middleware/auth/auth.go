package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/freshmart/storefront/internal/auth"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/transport/http/response"
)

type contextKey struct{}

// verifier validates a bearer token and returns the identity it carries.
type verifier interface {
	VerifyToken(token string) (*auth.Identity, error)
}

// NewAuthMiddleware rejects requests without a valid bearer token and puts
// the identity into the request context.
func NewAuthMiddleware(tokens verifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Error(w, errs.ErrUnauthorized)

				return
			}

			identity, err := tokens.VerifyToken(token)
			if err != nil {
				response.Error(w, errs.ErrUnauthorized)

				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*auth.Identity)
	return identity, ok
}
