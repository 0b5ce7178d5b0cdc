package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// CategoryRef is the category summary embedded in a product.
type CategoryRef struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Product is a catalog item. JSON names follow the storefront's wire format.
type Product struct {
	ID          uint         `json:"id"`
	Name        string       `json:"nombre"`
	Price       float64      `json:"precio"`
	Description string       `json:"descripcion"`
	ImageURL    string       `json:"image_url"`
	CategoryID  *uint        `json:"category_id"`
	Category    *CategoryRef `json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ProductPatch carries the fields of a partial product update; nil means unchanged.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
	ImageURL    *string
	CategoryID  *uint
}
