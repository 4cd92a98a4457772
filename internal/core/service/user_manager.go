package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const entityUser = "user"

var userColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"birthDate": "birth_date",
	"isActive":  "is_active",
}

var errInvalidCredentials = domain.Unauthorized("invalid username/password")

// UserManager implements registration, authentication and account changes.
type UserManager struct {
	repo   ports.UserRepository
	hasher ports.Hasher
	audit  auditTrail
	log    zerolog.Logger
}

func NewUserManager(repo ports.UserRepository, hasher ports.Hasher, audit ports.AuditRecorder, logger zerolog.Logger) *UserManager {
	return &UserManager{
		repo:   repo,
		hasher: hasher,
		audit:  auditTrail{rec: audit, log: logger},
		log:    logger,
	}
}

// Authenticate checks username and password. An unknown user and a wrong
// password fail with the same error.
func (m *UserManager) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := m.repo.GetByUsername(ctx, username)
	if errors.Is(err, ports.ErrNoRows) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !m.hasher.Compare(password, u.PasswordHash) {
		return nil, errInvalidCredentials
	}
	return u, nil
}

func (m *UserManager) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.BadRequest("username and password are required")
	}

	_, err := m.repo.GetByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, domain.BadRequestf("duplicate username: %s", in.Username)
	case !errors.Is(err, ports.ErrNoRows):
		return nil, err
	}

	hash, err := m.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := m.repo.Insert(ctx, &domain.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		BirthDate:    in.BirthDate,
		Role:         domain.RoleRegular,
		IsActive:     true,
		IsVerified:   false,
		PasswordHash: hash,
	})
	if errors.Is(err, ports.ErrConflict) {
		return nil, domain.BadRequestf("duplicate username: %s", in.Username)
	}
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	m.log.Info().Str("username", created.Username).Msg("user registered")
	m.audit.record(ctx, entityUser, created.Username, domain.AuditCreated)
	return created, nil
}

func (m *UserManager) Get(ctx context.Context, username string) (*domain.User, error) {
	u, err := m.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "no user: "+username)
	}
	return u, nil
}

func (m *UserManager) List(ctx context.Context) ([]domain.User, error) {
	return m.repo.List(ctx)
}

// Update applies a sparse change. When Password is present it must match the
// stored hash; NewPassword is then hashed and stored in its place. Password
// alone authorizes the change without altering anything itself.
func (m *UserManager) Update(ctx context.Context, username string, in ports.UserUpdate) (*domain.User, error) {
	var data sqlpatch.Fields
	sqlpatch.SetIf(&data, "firstName", in.FirstName)
	sqlpatch.SetIf(&data, "lastName", in.LastName)
	sqlpatch.SetIf(&data, "email", in.Email)
	sqlpatch.SetIf(&data, "birthDate", in.BirthDate)
	sqlpatch.SetIf(&data, "isActive", in.IsActive)

	if in.NewPassword != nil && in.Password == nil {
		return nil, domain.BadRequest("current password is required to set a new one")
	}
	if in.Password != nil {
		current, err := m.repo.GetByUsername(ctx, username)
		if err != nil {
			return nil, notFound(err, "no user: "+username)
		}
		if !m.hasher.Compare(*in.Password, current.PasswordHash) {
			return nil, domain.Unauthorized("invalid password")
		}
		if in.NewPassword != nil {
			hash, err := m.hasher.Hash(*in.NewPassword)
			if err != nil {
				return nil, err
			}
			// already the storage column name
			data.Set("password", hash)
		}
	}

	upd, err := sqlpatch.Build(data, userColumns)
	if err != nil {
		return nil, err
	}

	u, err := m.repo.UpdateByUsername(ctx, username, upd)
	if err != nil {
		return nil, notFound(err, "no user: "+username)
	}

	m.audit.record(ctx, entityUser, username, domain.AuditUpdated, data.Names()...)
	return u, nil
}

func (m *UserManager) Verify(ctx context.Context, username string) (*domain.User, error) {
	return m.setFlag(ctx, username, "is_verified", true, domain.AuditVerified)
}

func (m *UserManager) Activate(ctx context.Context, username string) (*domain.User, error) {
	return m.setFlag(ctx, username, "isActive", true, domain.AuditActivated)
}

func (m *UserManager) Deactivate(ctx context.Context, username string) (*domain.User, error) {
	return m.setFlag(ctx, username, "isActive", false, domain.AuditDeactivated)
}

func (m *UserManager) setFlag(ctx context.Context, username, field string, value bool, action domain.AuditAction) (*domain.User, error) {
	upd, err := sqlpatch.Build(sqlpatch.Fields{{Name: field, Value: value}}, userColumns)
	if err != nil {
		return nil, err
	}
	u, err := m.repo.UpdateByUsername(ctx, username, upd)
	if err != nil {
		return nil, notFound(err, "no user found with username: "+username)
	}
	m.audit.record(ctx, entityUser, username, action)
	return u, nil
}

func (m *UserManager) Remove(ctx context.Context, username string) error {
	if err := m.repo.DeleteByUsername(ctx, username); err != nil {
		return notFound(err, "no user found with username: "+username)
	}
	m.audit.record(ctx, entityUser, username, domain.AuditDeleted)
	return nil
}
