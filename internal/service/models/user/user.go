package user

import "time"

// Role of a user within the storefront.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// User represents a registered customer.
//
// LoyaltyPoints is a cached balance reconciled against the loyalty ledger:
// it must always equal the sum of points_change over the user's ledger
// entries. The loyalty repository's ApplyDelta is the only write path.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone,omitempty"`
	LoyaltyPoints int64     `json:"loyaltyPoints"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
