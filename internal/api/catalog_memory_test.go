package api

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// memoryCatalog is an in-process product and category store used by the
// router tests. categoryStore exposes the category half of it.
type memoryCatalog struct {
	mu         sync.Mutex
	products   map[uint]domain.Product
	categories map[uint]domain.Category
	nextID     uint
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{products: map[uint]domain.Product{}, categories: map[uint]domain.Category{}}
}

func (m *memoryCatalog) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memoryCatalog) withCategory(p domain.Product) domain.Product {
	if p.CategoryID != nil {
		if c, ok := m.categories[*p.CategoryID]; ok {
			p.Category = &domain.CategoryRef{ID: c.ID, Name: c.Name, Description: c.Description}
		}
	}
	return p
}

func (m *memoryCatalog) List(_ context.Context, categoryID *uint) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Product{}
	for _, p := range m.products {
		if categoryID != nil && (p.CategoryID == nil || *p.CategoryID != *categoryID) {
			continue
		}
		out = append(out, m.withCategory(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memoryCatalog) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p = m.withCategory(p)
	return &p, nil
}

func (m *memoryCatalog) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.CategoryID != nil {
		if _, ok := m.categories[*p.CategoryID]; !ok {
			return nil, domain.ErrCategoryNotFound
		}
	}
	stored := *p
	stored.ID = m.id()
	m.products[stored.ID] = stored
	stored = m.withCategory(stored)
	return &stored, nil
}

func (m *memoryCatalog) Update(_ context.Context, id uint, patch domain.ProductPatch) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	m.products[id] = p
	p = m.withCategory(p)
	return &p, nil
}

func (m *memoryCatalog) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

type categoryStore struct {
	*memoryCatalog
}

func (s categoryStore) List(context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s categoryStore) FindByID(_ context.Context, id uint) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	for _, p := range s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			c.Products = append(c.Products, domain.ProductRef{ID: p.ID, Name: p.Name, Price: p.Price})
		}
	}
	return &c, nil
}

func (s categoryStore) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Name == c.Name {
			return nil, domain.ErrCategoryExists
		}
	}
	stored := *c
	stored.ID = s.id()
	s.categories[stored.ID] = stored
	return &stored, nil
}

func (s categoryStore) Update(_ context.Context, id uint, name, description *string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if name != nil {
		c.Name = *name
	}
	if description != nil {
		c.Description = *description
	}
	s.categories[id] = c
	return &c, nil
}

func (s categoryStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(s.categories, id)
	return nil
}

func (s categoryStore) CountProducts(_ context.Context, id uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, p := range s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func jsonNumber(f float64) string {
	return strconv.FormatUint(uint64(f), 10)
}
