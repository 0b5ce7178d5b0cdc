package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. Its
// absence means the route was registered without the middleware.
func ctxIdentity(c echo.Context) (*domain.IdentityClaim, error) {
	id := domain.IdentityFromContext(c.Request().Context())
	if id == nil {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}
