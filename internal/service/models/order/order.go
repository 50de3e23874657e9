package order

import (
	"time"

	"github.com/freshmart/storefront/internal/service/models/currency"
	"github.com/freshmart/storefront/internal/service/models/orderitem"
)

// Status of an order. Orders are created Pending; later transitions are
// handled outside the placement path.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
)

// OrderType distinguishes how the order is fulfilled.
type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
)

// Order is the aggregate root for a placed order. TotalAmountCents,
// LoyaltyPointsEarned and the item price snapshots are derived during
// placement and never supplied by the caller.
type Order struct {
	ID                  int64                 `json:"id"`
	UserID              int64                 `json:"userId"`
	StoreID             int64                 `json:"storeId"`
	TotalAmountCents    int64                 `json:"totalAmountCents"`
	TotalAmountCurrency currency.Currency     `json:"totalAmountCurrency"`
	Status              Status                `json:"status"`
	OrderType           OrderType             `json:"orderType"`
	DeliveryAddress     string                `json:"deliveryAddress,omitempty"`
	PaymentMethod       string                `json:"paymentMethod,omitempty"`
	LoyaltyPointsUsed   int64                 `json:"loyaltyPointsUsed"`
	LoyaltyPointsEarned int64                 `json:"loyaltyPointsEarned"`
	CreatedAt           time.Time             `json:"createdAt"`
	UpdatedAt           time.Time             `json:"updatedAt"`
	OrderItems          []orderitem.OrderItem `json:"orderItems"`
}
