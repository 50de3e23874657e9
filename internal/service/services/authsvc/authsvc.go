package authsvc

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/freshmart/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/freshmart/storefront/internal/service/errs"
	"github.com/freshmart/storefront/internal/service/models/user"
	"golang.org/x/crypto/bcrypt"
)

// tokenIssuer signs tokens for authenticated users.
type tokenIssuer interface {
	CreateToken(u *user.User) (string, error)
}

// AuthService registers customers and authenticates logins.
type AuthService struct {
	userRepo iuserrepo.IUserRepository
	tokens   tokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo iuserrepo.IUserRepository, tokens tokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterModel is the registration request contract.
type RegisterModel struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register creates a customer account and returns the user with a signed
// token. A duplicate email maps to errs.ErrConflict.
func (s *AuthService) Register(
	ctx context.Context,
	model RegisterModel,
) (*user.User, string, error) {
	if model.Email == "" || model.Password == "" || model.FirstName == "" || model.LastName == "" {
		return nil, "", fmt.Errorf("missing required fields: %w", errs.ErrValidation)
	}
	if _, err := mail.ParseAddress(model.Email); err != nil {
		return nil, "", fmt.Errorf("invalid email: %w", errs.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(model.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Insert(ctx, user.User{
		Email:        model.Email,
		PasswordHash: string(hash),
		FirstName:    model.FirstName,
		LastName:     model.LastName,
		Phone:        model.Phone,
		Role:         user.RoleCustomer,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.CreateToken(created)
	if err != nil {
		return nil, "", err
	}

	return created, token, nil
}

// Login authenticates by email and password and returns the user with a
// signed token. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(
	ctx context.Context,
	email, password string,
) (*user.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("email and password are required: %w", errs.ErrValidation)
	}

	usr, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, "", errs.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, "", errs.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(usr)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}
