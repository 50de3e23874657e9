package store

import "time"

// Store represents a physical store location.
type Store struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Phone      string    `json:"phone,omitempty"`
	HoursOpen  string    `json:"hoursOpen"`
	HoursClose string    `json:"hoursClose"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`

	// DistanceKm is populated only by proximity queries.
	DistanceKm float64 `json:"distanceKm,omitempty"`
}
