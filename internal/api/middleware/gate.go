package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/api/metrics"
	"github.com/deadeye/laserworks/internal/core/authz"
)

// RequireLoggedIn admits any authenticated caller.
func RequireLoggedIn() echo.MiddlewareFunc {
	return require("logged_in", authz.LoggedIn, "")
}

// RequireAdmin admits admins only.
func RequireAdmin() echo.MiddlewareFunc {
	return require("admin_only", authz.AdminOnly, "")
}

// RequireOwnerOrAdmin admits admins and the user named by the path
// parameter param.
func RequireOwnerOrAdmin(param string) echo.MiddlewareFunc {
	return require("owner_or_admin", authz.OwnerOrAdmin, param)
}

func require(name string, policy authz.Policy, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var owner string
			if param != "" {
				owner = c.Param(param)
			}
			if err := policy(IdentityOf(c), owner); err != nil {
				metrics.AuthDenialsTotal.WithLabelValues(name).Inc()
				return err
			}
			return next(c)
		}
	}
}
