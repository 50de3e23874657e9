package loyaltysummary

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/loyalty"
	authmw "github.com/freshmart/storefront/internal/transport/http/middleware/auth"
	"github.com/freshmart/storefront/internal/transport/http/response"
)

const defaultTransactionLimit = 10

type service interface {
	Summary(ctx context.Context, userID int64, limit int) (*loyalty.Summary, error)
}

// GetSummary handles the loyalty summary request for the authenticated user.
func GetSummary(w http.ResponseWriter, r *http.Request, service service) {
	identity, ok := authmw.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, errs.ErrUnauthorized)

		return
	}

	limit := defaultTransactionLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	summary, err := service.Summary(r.Context(), identity.UserID, limit)
	if err != nil {
		response.Error(w, err)
		slog.Error("Error getting loyalty summary", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, summary)
}
