package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const entityUserService = "user_service"

var userServiceColumns = map[string]string{
	"confirmedPrice": "confirmed_price",
	"isCompleted":    "is_completed",
	"additionInfo":   "addition_info",
	"fulfilledDate":  "fulfilled_date",
}

// UserServiceManager handles orders placed by users for catalog services.
type UserServiceManager struct {
	repo     ports.UserServiceRepository
	users    ports.UserRepository
	services ports.ServiceRepository
	audit    auditTrail
	log      zerolog.Logger
	now      func() time.Time
}

func NewUserServiceManager(
	repo ports.UserServiceRepository,
	users ports.UserRepository,
	services ports.ServiceRepository,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *UserServiceManager {
	return &UserServiceManager{
		repo:     repo,
		users:    users,
		services: services,
		audit:    auditTrail{rec: audit, log: logger},
		log:      logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddToUser places an order for username. Both the user and the service
// must exist.
func (m *UserServiceManager) AddToUser(ctx context.Context, username string, in ports.AddUserServiceInput) (*domain.UserService, error) {
	if in.ConfirmedPrice < 0 {
		return nil, domain.BadRequest("confirmed price must not be negative")
	}

	u, err := m.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "no user: "+username)
	}
	if _, err := m.services.Get(ctx, in.ServiceID); err != nil {
		return nil, notFound(err, fmt.Sprintf("no service: %d", in.ServiceID))
	}

	us, err := m.repo.Insert(ctx, &domain.UserService{
		UserID:           u.ID,
		ServiceID:        in.ServiceID,
		ConfirmedPrice:   in.ConfirmedPrice,
		AdditionInfo:     in.AdditionInfo,
		ConfirmationCode: uuid.NewString(),
		RequestedDate:    m.now(),
	})
	if err != nil {
		// the user or service vanished between the checks and the insert
		return nil, notFound(err, "no user or service for order")
	}

	m.log.Info().
		Str("username", username).
		Int64("service_id", in.ServiceID).
		Str("confirmation_code", us.ConfirmationCode).
		Msg("order placed")
	m.audit.record(ctx, entityUserService, key(us.ID), domain.AuditCreated)
	return us, nil
}

func (m *UserServiceManager) ListForUser(ctx context.Context, username string) ([]domain.UserServiceDetail, error) {
	u, err := m.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "no user: "+username)
	}
	return m.repo.ListByUser(ctx, u.ID)
}

func (m *UserServiceManager) ListAll(ctx context.Context) ([]domain.UserServiceDetail, error) {
	return m.repo.ListAll(ctx)
}

// Complete marks the order fulfilled. Both columns change in one statement.
// Completing twice keeps it completed and restamps the date.
func (m *UserServiceManager) Complete(ctx context.Context, id int64) (*domain.UserService, error) {
	data := sqlpatch.Fields{
		{Name: "isCompleted", Value: true},
		{Name: "fulfilledDate", Value: m.now()},
	}
	upd, err := sqlpatch.Build(data, userServiceColumns)
	if err != nil {
		return nil, err
	}
	us, err := m.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("no user service found with ID: %d", id))
	}
	m.audit.record(ctx, entityUserService, key(id), domain.AuditCompleted, data.Names()...)
	return us, nil
}

func (m *UserServiceManager) ChangePrice(ctx context.Context, id int64, price float64) (*domain.UserService, error) {
	if price <= 0 {
		return nil, domain.BadRequest("price must be greater than zero")
	}
	upd, err := sqlpatch.Build(sqlpatch.Fields{{Name: "confirmedPrice", Value: price}}, userServiceColumns)
	if err != nil {
		return nil, err
	}
	us, err := m.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("no user service found with ID: %d", id))
	}
	m.audit.record(ctx, entityUserService, key(id), domain.AuditRepriced, "confirmedPrice")
	return us, nil
}

func (m *UserServiceManager) Remove(ctx context.Context, id int64) error {
	if err := m.repo.DeleteByID(ctx, id); err != nil {
		return notFound(err, fmt.Sprintf("no user service found with ID: %d", id))
	}
	m.audit.record(ctx, entityUserService, key(id), domain.AuditDeleted)
	return nil
}
