package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/core/domain"
)

func gateContext(id *domain.Identity, username string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/"+username, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/users/:username")
	c.SetParamNames("username")
	c.SetParamValues(username)
	if id != nil {
		c.Set(IdentityKey, id)
	}
	return c
}

func TestGate(t *testing.T) {
	alice := &domain.Identity{Username: "alice", Role: domain.RoleRegular}
	admin := &domain.Identity{Username: "root", Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		mw      echo.MiddlewareFunc
		id      *domain.Identity
		route   string
		allowed bool
	}{
		{"logged in: anonymous", RequireLoggedIn(), nil, "alice", false},
		{"logged in: regular", RequireLoggedIn(), alice, "alice", true},
		{"admin: regular", RequireAdmin(), alice, "alice", false},
		{"admin: admin", RequireAdmin(), admin, "alice", true},
		{"admin: anonymous", RequireAdmin(), nil, "alice", false},
		{"owner: self", RequireOwnerOrAdmin("username"), alice, "alice", true},
		{"owner: other user", RequireOwnerOrAdmin("username"), alice, "bob", false},
		{"owner: admin on other", RequireOwnerOrAdmin("username"), admin, "bob", true},
		{"owner: anonymous", RequireOwnerOrAdmin("username"), nil, "alice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := tt.mw(func(c echo.Context) error {
				called = true
				return nil
			})

			err := h(gateContext(tt.id, tt.route))

			if tt.allowed {
				if err != nil || !called {
					t.Fatalf("expected pass-through, got err=%v called=%v", err, called)
				}
				return
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("expected unauthorized, got %v", err)
			}
			if called {
				t.Fatalf("next handler ran on a denied request")
			}
		})
	}
}
