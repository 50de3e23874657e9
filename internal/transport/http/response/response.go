package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/freshmart/storefront/internal/service/errs"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error writing response", "error", err)
	}
}

// Error maps service errors to HTTP statuses. Validation and not-found are
// the caller's fault; conflicts are retryable; everything else is reported
// as an opaque internal error without leaking detail.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrInsufficientPoints):
		JSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		JSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, errs.ErrConflict):
		JSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	case errors.Is(err, errs.ErrInvalidCredentials),
		errors.Is(err, errs.ErrUnauthorized):
		JSON(w, http.StatusUnauthorized, errorBody{Error: err.Error()})
	default:
		slog.Error("Internal error", "error", err)
		JSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}
