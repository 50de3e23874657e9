package promotion

import "time"

// Promotion represents a marketing promotion shown on the storefront.
type Promotion struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description,omitempty"`
	ImageURL           string    `json:"imageUrl,omitempty"`
	PromoType          string    `json:"promoType"`
	DiscountPercentage int       `json:"discountPercentage,omitempty"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
}
