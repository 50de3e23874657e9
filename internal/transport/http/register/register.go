package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/freshmart/storefront/internal/service/services/authsvc"
	"github.com/freshmart/storefront/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
)

type service interface {
	Register(ctx context.Context, model authsvc.RegisterModel) (*user.User, string, error)
}

type registerRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Phone     string `json:"phone"`
}

func (r *registerRequest) Validate() error {
	return validator.New().Struct(r)
}

type registerResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Register handles the account registration request.
func Register(w http.ResponseWriter, r *http.Request, service service) {
	req := registerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for register", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for register", "error", err)

		return
	}

	registered, token, err := service.Register(r.Context(), authsvc.RegisterModel{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		response.Error(w, err)
		slog.Error("Error registering user", "error", err)

		return
	}

	response.JSON(w, http.StatusCreated, registerResponse{User: registered, Token: token})
}
