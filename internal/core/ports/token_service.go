package ports

import (
	"time"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// TokenService issues and verifies signed, time-limited identity tokens.
//
// Verify returns domain.ErrMalformedToken, domain.ErrInvalidSignature or
// domain.ErrTokenExpired on failure.
type TokenService interface {
	Issue(claim domain.IdentityClaim, ttl time.Duration) (string, error)
	Verify(token string) (*domain.IdentityClaim, error)
}
