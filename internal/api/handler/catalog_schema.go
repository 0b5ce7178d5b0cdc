package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// catalogResponse is the envelope used by the product and category endpoints.
type catalogResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type createProductRequest struct {
	Name        string  `json:"nombre"`
	Price       float64 `json:"precio"`
	Description string  `json:"descripcion"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	CategoryID  *uint   `json:"category_id"`
}

type updateProductRequest struct {
	Name        *string  `json:"nombre"`
	Price       *float64 `json:"precio"`
	Description *string  `json:"descripcion"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
	CategoryID  *uint    `json:"category_id"`
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func ok(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, catalogResponse{Success: true, Message: message, Data: data})
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || n == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(n), nil
}

// queryID parses an optional positive numeric query parameter.
func queryID(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || n == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	id := uint(n)
	return &id, nil
}
