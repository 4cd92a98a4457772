// Package authz decides whether a caller may act on a route.
//
// Every policy is a pure function of the decoded identity (nil when the
// request is anonymous) and, for ownership checks, the username the route
// acts on. A denial is always the same Unauthorized kind whether the caller
// is anonymous or simply the wrong user.
package authz

import "github.com/deadeye/laserworks/internal/core/domain"

// Policy evaluates id against the route owner. owner is ignored by policies
// that do not look at ownership.
type Policy func(id *domain.Identity, owner string) error

func denied() error { return domain.Unauthorized("unauthorized") }

// LoggedIn allows any present identity.
func LoggedIn(id *domain.Identity, _ string) error {
	if id == nil {
		return denied()
	}
	return nil
}

// AdminOnly allows identities holding the admin role.
func AdminOnly(id *domain.Identity, _ string) error {
	if !id.IsAdmin() {
		return denied()
	}
	return nil
}

// OwnerOrAdmin allows admins, and the user whose username is owner.
func OwnerOrAdmin(id *domain.Identity, owner string) error {
	if id == nil {
		return denied()
	}
	if id.Role == domain.RoleAdmin || (owner != "" && id.Username == owner) {
		return nil
	}
	return denied()
}
