package domain

import "errors"

// Input and state errors.
var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidRole   = errors.New("invalid role")
	ErrUserExists    = errors.New("username or email already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrRoleNotFound  = errors.New("role not found")
	ErrCategoryInUse = errors.New("category has associated products")
)

// Authentication and authorization errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthenticated    = errors.New("user not authenticated")
	ErrForbidden          = errors.New("access forbidden")
)

// Token verification failures. Each one is reported to clients as ErrInvalidToken.
var (
	ErrMalformedToken   = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrTokenExpired     = errors.New("token expired")
)
