package liststores

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/models/store"
	"github.com/freshmart/storefront/internal/transport/http/response"
	"github.com/gorilla/schema"
)

type service interface {
	ListStores(ctx context.Context, filter store.QueryStoresModel) ([]store.Store, error)
}

type queryStoresRequest struct {
	Lat    *float64 `schema:"lat,omitempty"`
	Lng    *float64 `schema:"lng,omitempty"`
	Radius float64  `schema:"radius,omitempty"`
}

// ListStores handles the store listing request. With lat and lng present
// the listing is restricted to the radius and ordered nearest first.
func ListStores(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &queryStoresRequest{}
	err := decoder.Decode(query, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	stores, err := service.ListStores(r.Context(), store.QueryStoresModel{
		Latitude:  query.Lat,
		Longitude: query.Lng,
		RadiusKm:  query.Radius,
	})
	if err != nil {
		response.Error(w, err)
		slog.Error("Error listing stores", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, stores)
}
