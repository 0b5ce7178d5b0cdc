package postgres

import (
	"time"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

type roleModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50;not null;uniqueIndex"`
}

func (roleModel) TableName() string { return "roles" }

type userModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:100;not null;uniqueIndex"`
	Email     string    `gorm:"size:255;not null;uniqueIndex"`
	Password  string    `gorm:"size:255;not null"`
	RoleID    uint      `gorm:"not null;index"`
	Role      roleModel `gorm:"foreignKey:RoleID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.Password,
		RoleID:       m.RoleID,
		Role:         m.Role.Name,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type categoryModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"size:100;not null;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Products    []productModel `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (categoryModel) TableName() string { return "categories" }

func (m *categoryModel) toDomain() *domain.Category {
	c := &domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, p := range m.Products {
		c.Products = append(c.Products, domain.ProductRef{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			ImageURL:    p.ImageURL,
		})
	}
	return c
}

// productModel keeps the storefront's Spanish column names.
type productModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"column:nombre;size:255;not null"`
	Price       float64        `gorm:"column:precio;type:decimal(10,2);not null"`
	Description string         `gorm:"column:descripcion;type:text"`
	ImageURL    string         `gorm:"column:image_url;size:500"`
	CategoryID  *uint          `gorm:"index"`
	Category    *categoryModel `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productModel) TableName() string { return "products" }

func (m *productModel) toDomain() domain.Product {
	p := domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		CategoryID:  m.CategoryID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Category != nil {
		p.Category = &domain.CategoryRef{
			ID:          m.Category.ID,
			Name:        m.Category.Name,
			Description: m.Category.Description,
		}
	}
	return p
}
