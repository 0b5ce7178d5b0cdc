package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *AuthRepository) FindRoleByName(ctx context.Context, name string) (*domain.Role, error) {
	var m roleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: m.ID, Name: m.Name}, nil
}

// Create relies on the unique indexes on username and email, so concurrent
// registrations racing past the existence check still collapse to one row.
func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := userModel{
		Username: user.Username,
		Email:    user.Email,
		Password: user.PasswordHash,
		RoleID:   user.RoleID,
	}
	if err := r.db.WithContext(ctx).Omit("Role").Create(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domain.ErrInvalidRole
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	// fetch back to load the role name
	return r.FindByID(ctx, m.ID)
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *AuthRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.findOne(ctx, "users.id = ?", id)
}

func (r *AuthRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).Joins("Role").Where(query, arg).First(&m).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return m.toDomain(), nil
}
