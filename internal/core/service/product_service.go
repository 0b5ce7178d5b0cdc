package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

type productService struct {
	repo  ports.ProductRepository
	cache cacheGuard
	log   zerolog.Logger
}

// NewProductService returns a ProductService. cache may be nil.
func NewProductService(repo ports.ProductRepository, cache ports.CatalogCache, log zerolog.Logger) ports.ProductService {
	return &productService{repo: repo, cache: newCacheGuard(cache, log), log: log}
}

func (s *productService) ListProducts(ctx context.Context, categoryID *uint) ([]domain.Product, error) {
	key := productsCacheKey(categoryID)

	var cached []domain.Product
	if s.cache.get(ctx, key, &cached) {
		return cached, nil
	}

	products, err := s.repo.List(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	s.cache.set(ctx, key, products)
	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *productService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price == 0 {
		return nil, fmt.Errorf("%w: nombre and precio are required", domain.ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: precio must be greater than 0", domain.ErrValidation)
	}

	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.cache.invalidate(ctx)
	s.log.Info().Uint("product_id", created.ID).Msg("product created")
	return created, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, fmt.Errorf("%w: precio must be greater than 0", domain.ErrValidation)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: nombre cannot be empty", domain.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.cache.invalidate(ctx)
	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.cache.invalidate(ctx)
	s.log.Info().Uint("product_id", id).Msg("product deleted")
	return nil
}
