package loyalty

import "time"

// TransactionType classifies a ledger entry. Earned and redeemed points of
// one order are recorded as separate entries, never a combined delta, so the
// audit history stays legible.
type TransactionType string

const (
	TransactionEarned   TransactionType = "earned"
	TransactionRedeemed TransactionType = "redeemed"
)

// Transaction is an immutable, append-only loyalty ledger entry.
// PointsChange is negative for redemptions.
type Transaction struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	OrderID      *int64          `json:"orderId,omitempty"`
	PointsChange int64           `json:"pointsChange"`
	Type         TransactionType `json:"transactionType"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Reward is a redeemable loyalty reward.
type Reward struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	PointsRequired int64     `json:"pointsRequired"`
	RewardType     string    `json:"rewardType"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Summary is the loyalty view returned to a customer: the cached balance
// plus rewards and recent ledger entries.
type Summary struct {
	CurrentPoints int64         `json:"currentPoints"`
	Rewards       []Reward      `json:"rewards"`
	Transactions  []Transaction `json:"transactions"`
}
