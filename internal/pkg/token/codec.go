// Package token signs and verifies the bearer tokens that carry a caller's
// identity, and the single-purpose tokens mailed out for email confirmation.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deadeye/laserworks/internal/core/domain"
)

// Subject is the part of a user that is embedded in a token. Nothing else,
// in particular no password material, is ever signed.
type Subject struct {
	Username   string
	Role       domain.Role
	IsVerified bool
}

// SubjectOf extracts the token subject from a user row.
func SubjectOf(u *domain.User) Subject {
	return Subject{Username: u.Username, Role: u.Role, IsVerified: u.IsVerified}
}

type identityClaims struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
	jwt.RegisteredClaims
}

// Codec issues and decodes HS256 identity tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret. A ttl of zero issues tokens
// without an expiry; they then stay valid until the secret is rotated.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Encode signs s into a bearer token. An empty role is issued as regular.
func (c *Codec) Encode(s Subject) (string, error) {
	role := s.Role
	if role == "" {
		role = domain.RoleRegular
	}

	now := c.now()
	claims := identityClaims{
		Username:   s.Username,
		Role:       string(role),
		IsVerified: s.IsVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies raw and returns the identity it carries. Any failure
// (bad signature, wrong algorithm, expiry, malformed payload, unknown role)
// yields ok=false and is indistinguishable from an absent token.
func (c *Codec) Decode(raw string) (id *domain.Identity, ok bool) {
	if raw == "" {
		return nil, false
	}

	claims := &identityClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		return nil, false
	}

	role := domain.Role(claims.Role)
	if role == "" {
		role = domain.RoleRegular
	}
	if claims.Username == "" || !role.Valid() {
		return nil, false
	}

	id = &domain.Identity{
		Username:   claims.Username,
		Role:       role,
		IsVerified: claims.IsVerified,
	}
	if claims.IssuedAt != nil {
		id.IssuedAt = claims.IssuedAt.Time
	}
	return id, true
}
