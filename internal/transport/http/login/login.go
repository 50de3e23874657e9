package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/models/user"
	"github.com/freshmart/storefront/internal/transport/http/response"
	"github.com/go-playground/validator/v10"
)

type service interface {
	Login(ctx context.Context, email, password string) (*user.User, string, error)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) Validate() error {
	return validator.New().Struct(r)
}

type loginResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

// Login handles the login request.
func Login(w http.ResponseWriter, r *http.Request, service service) {
	req := loginRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for login", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for login", "error", err)

		return
	}

	loggedIn, token, err := service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, err)
		slog.Error("Error logging in", "error", err)

		return
	}

	response.JSON(w, http.StatusOK, loginResponse{User: loggedIn, Token: token})
}
