package product

import (
	"time"

	"github.com/freshmart/storefront/internal/service/models/currency"
)

// Product represents a catalog product.
//
// StockQuantity is advisory only: order placement does not decrement it.
type Product struct {
	ID                  int64             `json:"id"`
	Name                string            `json:"name"`
	Description         string            `json:"description,omitempty"`
	PriceCents          int64             `json:"priceCents"`
	PriceCurrency       currency.Currency `json:"priceCurrency"`
	CategoryID          int64             `json:"categoryId"`
	CategoryName        string            `json:"categoryName,omitempty"`
	ImageURL            string            `json:"imageUrl,omitempty"`
	Barcode             string            `json:"barcode,omitempty"`
	StockQuantity       int               `json:"stockQuantity"`
	IsActive            bool              `json:"isActive"`
	LoyaltyPointsEarned int64             `json:"loyaltyPointsEarned"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// Pricing is the point-in-time snapshot the order engine reads per item.
type Pricing struct {
	ProductID           int64
	PriceCents          int64
	LoyaltyPointsEarned int64
}
