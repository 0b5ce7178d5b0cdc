package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/dawa-marketplace/ecommerce-api/internal/api/metrics"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := domain.IdentityFromContext(c.Request().Context())
			if id == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[id.Role]; !ok {
				metrics.RBACDenialsTotal.Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
