package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, categoryID *uint) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).Preload("Category").Order("products.id ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	var rows []productModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]domain.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var m productModel
	if err := r.db.WithContext(ctx).Preload("Category").First(&m, id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	p := m.toDomain()
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	m := productModel{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
	}
	if err := r.db.WithContext(ctx).Omit("Category").Create(&m).Error; err != nil {
		return nil, mapProductWriteErr("insert product", err)
	}
	return r.FindByID(ctx, m.ID)
}

func (r *ProductRepository) Update(ctx context.Context, id uint, patch domain.ProductPatch) (*domain.Product, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["nombre"] = *patch.Name
	}
	if patch.Price != nil {
		updates["precio"] = *patch.Price
	}
	if patch.Description != nil {
		updates["descripcion"] = *patch.Description
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}

	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&productModel{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, mapProductWriteErr("update product", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrProductNotFound
		}
	}
	return r.FindByID(ctx, id)
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&productModel{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func mapProductWriteErr(op string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrCategoryNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
