package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

type categoryService struct {
	repo  ports.CategoryRepository
	cache cacheGuard
	log   zerolog.Logger
}

// NewCategoryService returns a CategoryService. cache may be nil.
func NewCategoryService(repo ports.CategoryRepository, cache ports.CatalogCache, log zerolog.Logger) ports.CategoryService {
	return &categoryService{repo: repo, cache: newCacheGuard(cache, log), log: log}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cached []domain.Category
	if s.cache.get(ctx, cacheKeyCategories, &cached) {
		return cached, nil
	}

	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	s.cache.set(ctx, cacheKeyCategories, categories)
	return categories, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	created, err := s.repo.Create(ctx, &domain.Category{Name: name, Description: description})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.cache.invalidate(ctx)
	s.log.Info().Uint("category_id", created.ID).Msg("category created")
	return created, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uint, name, description *string) (*domain.Category, error) {
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, id, name, description)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	s.cache.invalidate(ctx)
	return updated, nil
}

// DeleteCategory refuses to remove a category that still has products.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	n, err := s.repo.CountProducts(ctx, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: cannot delete category with %d associated product(s)", domain.ErrCategoryInUse, n)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	s.cache.invalidate(ctx)
	s.log.Info().Uint("category_id", id).Msg("category deleted")
	return nil
}
