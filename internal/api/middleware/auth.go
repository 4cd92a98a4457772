package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/core/domain"
)

// IdentityKey is the echo context key holding the caller's *domain.Identity.
const IdentityKey = "identity"

// IdentityDecoder turns a raw bearer token into an identity.
type IdentityDecoder interface {
	Decode(raw string) (*domain.Identity, bool)
}

// Authenticate decodes an optional bearer token and attaches the identity to
// both the echo context and the request context. It never rejects: a missing
// or unusable token leaves the request anonymous and the route's policy
// decides.
func Authenticate(dec IdentityDecoder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}

			id, ok := dec.Decode(raw)
			if !ok {
				return next(c)
			}

			c.Set(IdentityKey, id)
			req := c.Request()
			c.SetRequest(req.WithContext(domain.WithIdentity(req.Context(), id)))
			return next(c)
		}
	}
}

// IdentityOf returns the identity set by Authenticate, or nil.
func IdentityOf(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityKey).(*domain.Identity)
	return id
}

func bearerToken(header string) (string, bool) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}
