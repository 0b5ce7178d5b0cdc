package ports

import (
	"context"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// AuthRepository is the credential store: user records with salted password
// hashes and their assigned role.
//
// Create must enforce uniqueness of username and email at the storage layer
// and report violations as domain.ErrUserExists.
type AuthRepository interface {
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	FindRoleByName(ctx context.Context, name string) (*domain.Role, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
