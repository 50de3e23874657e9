package listcategories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/models/category"
	"github.com/freshmart/storefront/internal/transport/http/response"
)

type service interface {
	ListCategories(ctx context.Context) ([]category.Category, error)
}

// ListCategories handles the category listing request.
func ListCategories(w http.ResponseWriter, r *http.Request, service service) {
	categories, err := service.ListCategories(r.Context())
	if err != nil {
		response.Error(w, err)
		slog.Error("Error listing categories", "error", err)

		return
	}

	if categories == nil {
		categories = []category.Category{}
	}

	response.JSON(w, http.StatusOK, categories)
}
