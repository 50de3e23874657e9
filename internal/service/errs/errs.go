package errs

import "errors"

// Sentinel errors shared by services and mapped to HTTP statuses at the
// transport layer. Wrap them with fmt.Errorf("...: %w", ...) to add context.
var (
	// ErrValidation means the request was malformed or missed required fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the write conflicted with existing data or a
	// concurrent mutation. The whole operation is safe to retry.
	ErrConflict = errors.New("conflicting data")

	// ErrInsufficientPoints means the user tried to redeem more loyalty
	// points than the current balance holds.
	ErrInsufficientPoints = errors.New("insufficient loyalty points")

	// ErrInvalidCredentials means email/password did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized means the request carries no valid identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternal hides storage and infrastructure failures from callers.
	ErrInternal = errors.New("internal error")
)
