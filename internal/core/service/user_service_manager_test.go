package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
)

func newOrderManager(t *testing.T) (*UserServiceManager, *stubUserServiceRepo) {
	t.Helper()
	repo := newStubUserServiceRepo()
	m := NewUserServiceManager(repo, newStubUserRepo(seededUser("u1")), newStubServiceRepo(engraving()), nil, discardLogger)
	return m, repo
}

func TestUserServiceManager_AddToUser(t *testing.T) {
	m, _ := newOrderManager(t)

	us, err := m.AddToUser(context.Background(), "u1", ports.AddUserServiceInput{ServiceID: 1, ConfirmedPrice: 20, AdditionInfo: "logo"})
	if err != nil {
		t.Fatalf("AddToUser returned error: %v", err)
	}
	if us.UserID != 1 || us.ServiceID != 1 || us.IsCompleted || us.FulfilledDate != nil {
		t.Fatalf("unexpected order: %+v", us)
	}
	if us.ConfirmationCode == "" || us.RequestedDate.IsZero() {
		t.Fatalf("expected confirmation code and requested date, got %+v", us)
	}
}

func TestUserServiceManager_AddToUser_MissingReferences(t *testing.T) {
	m, repo := newOrderManager(t)
	ctx := context.Background()

	if _, err := m.AddToUser(ctx, "ghost", ports.AddUserServiceInput{ServiceID: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for user, got %v", err)
	}
	if _, err := m.AddToUser(ctx, "u1", ports.AddUserServiceInput{ServiceID: 9}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for service, got %v", err)
	}
	if len(repo.orders) != 0 {
		t.Fatalf("nothing must be inserted")
	}
}

func TestUserServiceManager_Complete_Idempotent(t *testing.T) {
	m, _ := newOrderManager(t)
	ctx := context.Background()
	us, _ := m.AddToUser(ctx, "u1", ports.AddUserServiceInput{ServiceID: 1, ConfirmedPrice: 20})

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return first }
	done, err := m.Complete(ctx, us.ID)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if !done.IsCompleted || done.FulfilledDate == nil || !done.FulfilledDate.Equal(first) {
		t.Fatalf("unexpected completion: %+v", done)
	}

	m.now = func() time.Time { return first.Add(time.Hour) }
	again, err := m.Complete(ctx, us.ID)
	if err != nil {
		t.Fatalf("second Complete returned error: %v", err)
	}
	if !again.IsCompleted || again.FulfilledDate == nil {
		t.Fatalf("expected order to stay completed, got %+v", again)
	}

	if _, err := m.Complete(ctx, 404); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserServiceManager_ChangePrice(t *testing.T) {
	m, _ := newOrderManager(t)
	ctx := context.Background()
	us, _ := m.AddToUser(ctx, "u1", ports.AddUserServiceInput{ServiceID: 1, ConfirmedPrice: 20})

	got, err := m.ChangePrice(ctx, us.ID, 42)
	if err != nil || got.ConfirmedPrice != 42 {
		t.Fatalf("ChangePrice: %v %+v", err, got)
	}
	if _, err := m.ChangePrice(ctx, us.ID, 0); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
	if _, err := m.ChangePrice(ctx, 404, 10); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserServiceManager_Lists(t *testing.T) {
	m, _ := newOrderManager(t)
	ctx := context.Background()

	all, err := m.ListAll(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("expected empty list, got %v %v", all, err)
	}

	_, _ = m.AddToUser(ctx, "u1", ports.AddUserServiceInput{ServiceID: 1})
	mine, err := m.ListForUser(ctx, "u1")
	if err != nil || len(mine) != 1 {
		t.Fatalf("expected one order, got %v %v", mine, err)
	}
	if _, err := m.ListForUser(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserServiceManager_Remove(t *testing.T) {
	m, _ := newOrderManager(t)
	ctx := context.Background()
	us, _ := m.AddToUser(ctx, "u1", ports.AddUserServiceInput{ServiceID: 1})

	if err := m.Remove(ctx, us.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := m.Remove(ctx, us.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
