package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/dawa-marketplace/ecommerce-api/internal/api/metrics"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/ports"
)

// Auth validates the bearer token and stores its identity in the request context.
//
// A missing or unusable Authorization header yields domain.ErrMissingToken (401);
// any verification failure yields domain.ErrInvalidToken (403).
func Auth(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingToken
			}

			claim, err := tokens.Verify(raw)
			if err != nil {
				reason := rejectionReason(err)
				metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
				log.Debug().Err(err).
					Str("reason", reason).
					Str("path", c.Path()).
					Msg("token rejected")
				return domain.ErrInvalidToken
			}

			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), claim)))
			return next(c)
		}
	}
}

// bearerToken splits the header on single spaces and returns the second
// element when the scheme is Bearer.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) < 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
