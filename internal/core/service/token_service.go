package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
)

// MinSecretLen is the shortest HMAC secret accepted for signing tokens.
const MinSecretLen = 32

// DefaultTokenTTL is the lifetime of tokens issued by the auth flows.
const DefaultTokenTTL = 24 * time.Hour

var ErrWeakSecret = fmt.Errorf("token secret must be at least %d bytes", MinSecretLen)

// TokenConfig configures a JWTTokenService.
type TokenConfig struct {
	Secret string
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// tokenClaims is the signed payload: {id, username, role, iat, exp}.
type tokenClaims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService with HS256-signed JWTs.
// Tokens are stateless: validity depends only on signature and expiry.
type JWTTokenService struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

func NewTokenService(cfg TokenConfig) (*JWTTokenService, error) {
	if len(cfg.Secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &JWTTokenService{
		secret: []byte(cfg.Secret),
		now:    now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(now),
		),
	}, nil
}

// Issue signs claim with an expiry ttl from now. A non-positive ttl yields a
// token that is already expired.
func (s *JWTTokenService) Issue(claim domain.IdentityClaim, ttl time.Duration) (string, error) {
	if ttl < 0 {
		ttl = 0
	}
	now := s.now()
	claims := tokenClaims{
		UserID:   claim.ID,
		Username: claim.Username,
		Role:     claim.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTTokenService) Verify(raw string) (*domain.IdentityClaim, error) {
	var claims tokenClaims
	if _, err := s.parser.ParseWithClaims(raw, &claims, s.key); err != nil {
		return nil, classifyTokenError(raw, err)
	}

	return &domain.IdentityClaim{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *JWTTokenService) key(*jwt.Token) (any, error) {
	return s.secret, nil
}

// classifyTokenError maps jwt parse errors onto the domain failure kinds.
// The signature is checked before the claims, so an expired token with a bad
// signature reports ErrInvalidSignature.
func classifyTokenError(raw string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		// Header and payload decode, so only the signature segment is broken.
		if _, _, uerr := jwt.NewParser().ParseUnverified(raw, &tokenClaims{}); uerr == nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
}
