package listpromotions

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/models/promotion"
	"github.com/freshmart/storefront/internal/transport/http/response"
)

type service interface {
	ListPromotions(ctx context.Context) ([]promotion.Promotion, error)
}

// ListPromotions handles the promotion listing request.
func ListPromotions(w http.ResponseWriter, r *http.Request, service service) {
	promotions, err := service.ListPromotions(r.Context())
	if err != nil {
		response.Error(w, err)
		slog.Error("Error listing promotions", "error", err)

		return
	}

	if promotions == nil {
		promotions = []promotion.Promotion{}
	}

	response.JSON(w, http.StatusOK, promotions)
}
