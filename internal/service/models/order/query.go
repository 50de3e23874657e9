package order

// PlaceOrderItem is one requested line of a new order.
type PlaceOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrderModel is the request contract of the order transaction engine.
type PlaceOrderModel struct {
	UserID            int64            `json:"userId"`
	StoreID           int64            `json:"storeId"`
	Items             []PlaceOrderItem `json:"items"`
	OrderType         OrderType        `json:"orderType"`
	DeliveryAddress   string           `json:"deliveryAddress,omitempty"`
	PaymentMethod     string           `json:"paymentMethod,omitempty"`
	LoyaltyPointsUsed int64            `json:"loyaltyPointsUsed"`
}

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids     []int64 `json:"ids,omitempty"`
	UserIds []int64 `json:"userIds,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}
