package listproducts

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/models/product"
	"github.com/freshmart/storefront/internal/transport/http/response"
	"github.com/gorilla/schema"
)

type service interface {
	ListProducts(ctx context.Context, filter product.QueryProductsModel) (*product.Page, error)
}

type queryProductsRequest struct {
	Category int64  `schema:"category,omitempty"`
	Search   string `schema:"search,omitempty"`
	Page     int    `schema:"page,omitempty"`
	Limit    int    `schema:"limit,omitempty"`
}

// ListProducts handles the product listing request.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryProductsRequest{}
	err := decoder.Decode(query, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	page, err := service.ListProducts(r.Context(), product.QueryProductsModel{
		CategoryID: query.Category,
		Search:     query.Search,
		Page:       query.Page,
		Limit:      query.Limit,
	})
	if err != nil {
		response.Error(w, err)
		slog.Error("Error listing products", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, page)
}
