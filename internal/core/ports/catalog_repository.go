package ports

import (
	"context"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
// Returned products have their category summary loaded.
type ProductRepository interface {
	// List returns all products, or only those of categoryID when it is non-nil.
	List(ctx context.Context, categoryID *uint) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id uint, patch domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository defines persistence operations for categories.
// Create and Update report name collisions as domain.ErrCategoryExists.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	// FindByID loads the category together with its products.
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id uint, name, description *string) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
	CountProducts(ctx context.Context, id uint) (int64, error)
}

// CatalogCache is a read-through cache for catalog listings.
type CatalogCache interface {
	// Get decodes the cached value for key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	InvalidateAll(ctx context.Context) error
}
