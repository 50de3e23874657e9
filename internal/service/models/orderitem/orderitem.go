package orderitem

import (
	"time"

	"github.com/freshmart/storefront/internal/service/models/currency"
)

// OrderItem is a priced, quantity-snapshotted line within an order.
// UnitPriceCents and TotalPriceCents are captured at order time and stay
// fixed even if the product price changes later.
type OrderItem struct {
	ID              int64             `json:"id"`
	OrderID         int64             `json:"orderId"`
	ProductID       int64             `json:"productId"`
	Quantity        int               `json:"quantity"`
	UnitPriceCents  int64             `json:"unitPriceCents"`
	TotalPriceCents int64             `json:"totalPriceCents"`
	PriceCurrency   currency.Currency `json:"priceCurrency"`
	CreatedAt       time.Time         `json:"createdAt"`
}
