package placeorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/order"
	authmw "github.com/freshmart/storefront/internal/transport/http/middleware/auth"
	"github.com/freshmart/storefront/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	PlaceOrder(ctx context.Context, model order.PlaceOrderModel) (*order.Order, error)
}

// itemInPlaceOrderRequest represents an item in a place order request.
type itemInPlaceOrderRequest struct {
	ProductID int64 `json:"productId" validate:"gt=0"`
	Quantity  int   `json:"quantity"  validate:"gte=1"`
}

// placeOrderRequest represents a place order request.
type placeOrderRequest struct {
	StoreID           int64                     `json:"storeId"           validate:"gt=0"`
	Items             []itemInPlaceOrderRequest `json:"items"             validate:"required,min=1,dive"`
	OrderType         string                    `json:"orderType"         validate:"required,oneof=pickup delivery"`
	DeliveryAddress   string                    `json:"deliveryAddress"`
	PaymentMethod     string                    `json:"paymentMethod"`
	LoyaltyPointsUsed int64                     `json:"loyaltyPointsUsed" validate:"gte=0"`
}

// Validate validates the place order request.
func (r *placeOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts placeOrderRequest to order.PlaceOrderModel.
func (r *placeOrderRequest) toModel(userID int64) order.PlaceOrderModel {
	items := make([]order.PlaceOrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = order.PlaceOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return order.PlaceOrderModel{
		UserID:            userID,
		StoreID:           r.StoreID,
		Items:             items,
		OrderType:         order.OrderType(r.OrderType),
		DeliveryAddress:   r.DeliveryAddress,
		PaymentMethod:     r.PaymentMethod,
		LoyaltyPointsUsed: r.LoyaltyPointsUsed,
	}
}

// PlaceOrder handles the place order request for the authenticated user.
func PlaceOrder(w http.ResponseWriter, r *http.Request, service service) {
	identity, ok := authmw.IdentityFromContext(r.Context())
	if !ok {
		response.Error(w, errs.ErrUnauthorized)

		return
	}

	orderReq := placeOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for place order", "error", err)

		return
	}

	if err := orderReq.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for place order", "error", err)

		return
	}

	placed, err := service.PlaceOrder(r.Context(), orderReq.toModel(identity.UserID))
	if err != nil {
		response.Error(w, err)
		slog.Error("Error placing order", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, placed)
}
