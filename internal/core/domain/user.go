package domain

import "time"

// Role is one of the two authorization roles.
type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleRegular || r == RoleAdmin
}

// User models a registered customer or shop administrator.
// Username is the natural key and never changes after registration.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Role         Role       `json:"role"`
	IsVerified   bool       `json:"isVerified"`
	IsActive     bool       `json:"isActive"`
	PasswordHash string     `json:"-"`
}
