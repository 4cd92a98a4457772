package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
)

func TestUserHandler_Update_PassesOnlySentFields(t *testing.T) {
	users := &stubUserManager{
		updateFn: func(ctx context.Context, username string, in ports.UserUpdate) (*domain.User, error) {
			if username != "alice" {
				t.Fatalf("unexpected username: %s", username)
			}
			if in.FirstName == nil || *in.FirstName != "Alicia" {
				t.Fatalf("firstName not passed: %+v", in)
			}
			if in.LastName != nil || in.Email != nil || in.IsActive != nil || in.NewPassword != nil {
				t.Fatalf("unsent fields leaked into update: %+v", in)
			}
			if in.Password == nil || *in.Password != "secret1" {
				t.Fatalf("password not passed: %+v", in)
			}
			return &domain.User{Username: username, FirstName: *in.FirstName}, nil
		},
	}
	h := NewUserHandler(users)

	c, rec := newContext(http.MethodPatch, "/users/alice", `{"firstName":"Alicia","password":"secret1"}`, "username", "alice")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user"]["firstName"] != "Alicia" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
	if _, ok := resp["user"]["password"]; ok {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestUserHandler_Update_InvalidEmail(t *testing.T) {
	h := NewUserHandler(&stubUserManager{})

	c, _ := newContext(http.MethodPatch, "/users/alice", `{"email":"not-an-email"}`, "username", "alice")
	err := h.Update(c)
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	users := &stubUserManager{
		removeFn: func(ctx context.Context, username string) error {
			if username == "ghost" {
				return domain.NotFound("no user: ghost")
			}
			return nil
		},
	}
	h := NewUserHandler(users)

	c, rec := newContext(http.MethodDelete, "/users/alice", "", "username", "alice")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"deleted\":\"alice\"}\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}

	c, _ = newContext(http.MethodDelete, "/users/ghost", "", "username", "ghost")
	if err := h.Delete(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUserHandler_ActivateDeactivate(t *testing.T) {
	users := &stubUserManager{
		setActiveFn: func(ctx context.Context, username string, active bool) (*domain.User, error) {
			return &domain.User{Username: username, IsActive: active}, nil
		},
	}
	h := NewUserHandler(users)

	for _, tt := range []struct {
		name   string
		call   func(h *UserHandler) func(c echo.Context) error
		active bool
	}{
		{"activate", func(h *UserHandler) func(c echo.Context) error { return h.Activate }, true},
		{"deactivate", func(h *UserHandler) func(c echo.Context) error { return h.Deactivate }, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPatch, "/users/alice/"+tt.name, "", "username", "alice")
			if err := tt.call(h)(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			var resp userResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.User.IsActive != tt.active {
				t.Fatalf("expected isActive=%v, got %+v", tt.active, resp.User)
			}
		})
	}
}
