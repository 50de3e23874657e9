package store

// QueryStoresModel represents filter parameters for listing stores.
// When Latitude and Longitude are both set, stores are filtered to
// RadiusKm and ordered by distance.
type QueryStoresModel struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	RadiusKm  float64  `json:"radiusKm,omitempty"`
}
