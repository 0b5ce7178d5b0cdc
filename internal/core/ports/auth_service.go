package ports

import (
	"context"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// RegisterInput carries a registration request. Role may be empty.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
	RemoteIP string
}

// LoginInput carries a login request.
type LoginInput struct {
	Username string
	Password string
	RemoteIP string
}

// AuthResult is returned by successful registrations and logins.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	CurrentUser(ctx context.Context, id uint) (*domain.User, error)
}
