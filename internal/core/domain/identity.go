package domain

import "context"

// IdentityClaim is the decoded payload of an access token.
type IdentityClaim struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ClaimFor builds the identity embedded in tokens issued for u.
func ClaimFor(u *User) IdentityClaim {
	return IdentityClaim{ID: u.ID, Username: u.Username, Role: u.Role}
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, id *IdentityClaim) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity, or nil.
func IdentityFromContext(ctx context.Context) *IdentityClaim {
	id, _ := ctx.Value(identityKey{}).(*IdentityClaim)
	return id
}
