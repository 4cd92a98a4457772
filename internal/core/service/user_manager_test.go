package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newUserManager(users ...domain.User) (*UserManager, *stubUserRepo, *recordingAudit) {
	repo := newStubUserRepo(users...)
	audit := &recordingAudit{}
	return NewUserManager(repo, plainHasher{}, audit, discardLogger), repo, audit
}

func TestUserManager_Authenticate_Success(t *testing.T) {
	m, _, _ := newUserManager(seededUser("u1"))

	u, err := m.Authenticate(context.Background(), "u1", "password-u1")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if u.Username != "u1" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserManager_Authenticate_FailuresAreUniform(t *testing.T) {
	m, _, _ := newUserManager(seededUser("u1"))
	ctx := context.Background()

	_, wrongPassword := m.Authenticate(ctx, "u1", "nope")
	_, unknownUser := m.Authenticate(ctx, "nonexistent", "any")

	for _, err := range []error{wrongPassword, unknownUser} {
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestUserManager_Register(t *testing.T) {
	m, repo, audit := newUserManager()

	u, err := m.Register(context.Background(), ports.RegisterInput{
		Username: "new",
		Password: "secret1",
		Email:    "new@example.com",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !u.IsActive || u.IsVerified || u.Role != domain.RoleRegular {
		t.Fatalf("unexpected initial state: %+v", u)
	}
	stored := repo.users["new"]
	if stored.PasswordHash != "hashed:secret1" {
		t.Fatalf("expected hashed password, got %q", stored.PasswordHash)
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != domain.AuditCreated {
		t.Fatalf("expected one created audit entry, got %+v", audit.entries)
	}
}

func TestUserManager_Register_Duplicate(t *testing.T) {
	m, _, _ := newUserManager(seededUser("u1"))

	_, err := m.Register(context.Background(), ports.RegisterInput{Username: "u1", Password: "x"})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestUserManager_Register_MissingFields(t *testing.T) {
	m, _, _ := newUserManager()

	_, err := m.Register(context.Background(), ports.RegisterInput{Username: "u1"})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestUserManager_Update_Fields(t *testing.T) {
	m, repo, audit := newUserManager(seededUser("u1"))
	birth := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

	u, err := m.Update(context.Background(), "u1", ports.UserUpdate{
		FirstName: strPtr("Ann"),
		BirthDate: &birth,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if u.FirstName != "Ann" || u.BirthDate == nil || !u.BirthDate.Equal(birth) {
		t.Fatalf("unexpected user: %+v", u)
	}
	if repo.last.SetClause != "first_name = $1, birth_date = $2" {
		t.Fatalf("unexpected clause: %q", repo.last.SetClause)
	}
	if got := audit.entries[len(audit.entries)-1].Fields; len(got) != 2 {
		t.Fatalf("expected changed fields in audit, got %v", got)
	}
}

func TestUserManager_Update_ChangesPassword(t *testing.T) {
	m, repo, _ := newUserManager(seededUser("u1"))

	_, err := m.Update(context.Background(), "u1", ports.UserUpdate{
		Password:    strPtr("password-u1"),
		NewPassword: strPtr("fresh"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if repo.users["u1"].PasswordHash != "hashed:fresh" {
		t.Fatalf("expected new hash, got %q", repo.users["u1"].PasswordHash)
	}
	if repo.last.SetClause != "password = $1" {
		t.Fatalf("unexpected clause: %q", repo.last.SetClause)
	}
}

func TestUserManager_Update_WrongCurrentPassword(t *testing.T) {
	m, repo, _ := newUserManager(seededUser("u1"))

	_, err := m.Update(context.Background(), "u1", ports.UserUpdate{
		Password:  strPtr("wrong"),
		FirstName: strPtr("Ann"),
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if repo.users["u1"].FirstName == "Ann" {
		t.Fatalf("update must not be applied")
	}
}

func TestUserManager_Update_PasswordIsStripped(t *testing.T) {
	m, repo, _ := newUserManager(seededUser("u1"))

	u, err := m.Update(context.Background(), "u1", ports.UserUpdate{
		Password: strPtr("password-u1"),
		Email:    strPtr("new@example.com"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if u.Email != "new@example.com" || repo.last.SetClause != "email = $1" {
		t.Fatalf("unexpected update: %q %+v", repo.last.SetClause, u)
	}
	if repo.users["u1"].PasswordHash != "hashed:password-u1" {
		t.Fatalf("password must be unchanged")
	}
}

func TestUserManager_Update_PasswordOnlyIsEmpty(t *testing.T) {
	m, _, _ := newUserManager(seededUser("u1"))

	_, err := m.Update(context.Background(), "u1", ports.UserUpdate{Password: strPtr("password-u1")})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestUserManager_Update_NewPasswordNeedsCurrent(t *testing.T) {
	m, _, _ := newUserManager(seededUser("u1"))

	_, err := m.Update(context.Background(), "u1", ports.UserUpdate{NewPassword: strPtr("fresh")})
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestUserManager_Update_NotFound(t *testing.T) {
	m, _, _ := newUserManager()

	_, err := m.Update(context.Background(), "ghost", ports.UserUpdate{FirstName: strPtr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserManager_FlagTransitions(t *testing.T) {
	m, _, audit := newUserManager(seededUser("u1"))
	ctx := domain.WithIdentity(context.Background(), &domain.Identity{Username: "boss", Role: domain.RoleAdmin})

	u, err := m.Verify(ctx, "u1")
	if err != nil || !u.IsVerified {
		t.Fatalf("Verify: %v %+v", err, u)
	}
	u, err = m.Deactivate(ctx, "u1")
	if err != nil || u.IsActive {
		t.Fatalf("Deactivate: %v %+v", err, u)
	}
	u, err = m.Activate(ctx, "u1")
	if err != nil || !u.IsActive {
		t.Fatalf("Activate: %v %+v", err, u)
	}

	want := []domain.AuditAction{domain.AuditVerified, domain.AuditDeactivated, domain.AuditActivated}
	for i, a := range want {
		if audit.entries[i].Action != a || audit.entries[i].Actor != "boss" {
			t.Fatalf("entry %d: %+v", i, audit.entries[i])
		}
	}

	for name, fn := range map[string]func(context.Context, string) (*domain.User, error){
		"verify":     m.Verify,
		"activate":   m.Activate,
		"deactivate": m.Deactivate,
	} {
		if _, err := fn(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestUserManager_Remove(t *testing.T) {
	m, repo, _ := newUserManager(seededUser("u1"))
	ctx := context.Background()

	if err := m.Remove(ctx, "u1"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, ok := repo.users["u1"]; ok {
		t.Fatalf("user must be gone")
	}
	if err := m.Remove(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserManager_AuditFailureIsIgnored(t *testing.T) {
	repo := newStubUserRepo(seededUser("u1"))
	m := NewUserManager(repo, plainHasher{}, &recordingAudit{err: errors.New("mongo down")}, discardLogger)

	if _, err := m.Activate(context.Background(), "u1"); err != nil {
		t.Fatalf("audit failure must not surface, got %v", err)
	}
}
