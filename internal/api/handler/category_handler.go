package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for catalog categories.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /api/categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  catalogResponse{data=[]domain.Category}
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// Get handles GET /api/categories/:id and includes the category's products.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  catalogResponse{data=domain.Category}
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cat, err := h.service.GetCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "Category retrieved successfully", cat)
}

// Create handles POST /api/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201   {object}  catalogResponse{data=domain.Category}
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cat, err := h.service.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, "Category created successfully", cat)
}

// Update handles PUT /api/categories/:id.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Category ID"
// @Param        body  body      updateCategoryRequest  true  "Fields to change"
// @Success      200   {object}  catalogResponse{data=domain.Category}
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req updateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	cat, err := h.service.UpdateCategory(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "Category updated successfully", cat)
}

// Delete handles DELETE /api/categories/:id. Categories that still have
// products cannot be deleted.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  catalogResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return ok(c, http.StatusOK, "Category deleted successfully", nil)
}
