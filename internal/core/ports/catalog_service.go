package ports

import (
	"context"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// CreateProductInput carries the fields for a new product.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
	CategoryID  *uint
}

// ProductService defines use-case operations for products.
type ProductService interface {
	ListProducts(ctx context.Context, categoryID *uint) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uint) (*domain.Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uint, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// CategoryService defines use-case operations for categories.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id uint) (*domain.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uint, name, description *string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}
