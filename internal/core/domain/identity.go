package domain

import (
	"context"
	"time"
)

// Identity is the decoded, verified caller of a request. A nil *Identity
// means the request is anonymous.
type Identity struct {
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	IsVerified bool      `json:"isVerified"`
	IssuedAt   time.Time `json:"issuedAt"`
}

// IsAdmin reports whether the identity holds the admin role. Safe on nil.
func (id *Identity) IsAdmin() bool {
	return id != nil && id.Role == RoleAdmin
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached to ctx, or nil when anonymous.
func IdentityFrom(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}

// ActorFrom returns the acting username for audit purposes.
func ActorFrom(ctx context.Context) string {
	if id := IdentityFrom(ctx); id != nil {
		return id.Username
	}
	return "anonymous"
}
