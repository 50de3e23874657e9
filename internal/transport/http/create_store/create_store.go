package createstore

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/models/store"
	"github.com/freshmart/storefront/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
)

type service interface {
	CreateStore(ctx context.Context, st store.Store) (*store.Store, error)
}

type createStoreRequest struct {
	Name       string  `json:"name"      validate:"required"`
	Address    string  `json:"address"   validate:"required"`
	Phone      string  `json:"phone"`
	Latitude   float64 `json:"latitude"  validate:"required,gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	HoursOpen  string  `json:"hoursOpen"`
	HoursClose string  `json:"hoursClose"`
}

func (r *createStoreRequest) Validate() error {
	return validator.New().Struct(r)
}

// CreateStore handles the create store request.
func CreateStore(w http.ResponseWriter, r *http.Request, service service) {
	req := createStoreRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create store", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create store", "error", err)

		return
	}

	created, err := service.CreateStore(r.Context(), store.Store{
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		HoursOpen:  req.HoursOpen,
		HoursClose: req.HoursClose,
	})
	if err != nil {
		response.Error(w, err)
		slog.Error("Error creating store", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, created)
}
