package listorders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/order"
	authmw "github.com/freshmart/storefront/internal/transport/http/middleware/auth"
	"github.com/freshmart/storefront/internal/transport/http/response"
	"github.com/gorilla/schema"
)

type service interface {
	GetOrders(ctx context.Context, model order.QueryOrdersModel) ([]order.Order, error)
}

type queryOrdersRequest struct {
	Ids    []int64 `schema:"ids,omitempty"`
	Limit  int     `schema:"limit,omitempty"`
	Offset int     `schema:"offset,omitempty"`
}

// ListOrders handles the list orders request, scoped to the authenticated
// user regardless of query parameters.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	identity, ok := authmw.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, errs.ErrUnauthorized)

		return
	}

	decoder := schema.NewDecoder()
	query := &queryOrdersRequest{}
	err := decoder.Decode(query, r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	orders, err := service.GetOrders(r.Context(), order.QueryOrdersModel{
		Ids:     query.Ids,
		UserIds: []int64{identity.UserID},
		Limit:   query.Limit,
		Offset:  query.Offset,
	})
	if err != nil {
		response.Error(w, err)
		slog.Error("Error getting orders", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, orders)
}
