package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const entityService = "service"

var serviceColumns = map[string]string{
	"title":       "title",
	"description": "description",
	"price":       "price",
	"isActive":    "is_active",
}

// ServiceManager manages the catalog. Callers are trusted to have checked
// the admin role for every write.
type ServiceManager struct {
	repo    ports.ServiceRepository
	reviews ports.ReviewRepository
	audit   auditTrail
}

func NewServiceManager(repo ports.ServiceRepository, reviews ports.ReviewRepository, audit ports.AuditRecorder, logger zerolog.Logger) *ServiceManager {
	return &ServiceManager{repo: repo, reviews: reviews, audit: auditTrail{rec: audit, log: logger}}
}

func (m *ServiceManager) List(ctx context.Context) ([]domain.Service, error) {
	return m.repo.List(ctx)
}

func (m *ServiceManager) Get(ctx context.Context, id int64) (*domain.Service, error) {
	s, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("no service found with ID: %d", id))
	}
	return s, nil
}

func (m *ServiceManager) Create(ctx context.Context, in ports.ServiceInput) (*domain.Service, error) {
	if in.Title == "" || in.Description == "" {
		return nil, domain.BadRequest("missing required fields")
	}
	if in.Price < 0 {
		return nil, domain.BadRequest("price must not be negative")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	s, err := m.repo.Insert(ctx, &domain.Service{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		IsActive:    active,
	})
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}
	m.audit.record(ctx, entityService, key(s.ID), domain.AuditCreated)
	return s, nil
}

func (m *ServiceManager) Update(ctx context.Context, id int64, in ports.ServiceUpdate) (*domain.Service, error) {
	if in.Price != nil && *in.Price < 0 {
		return nil, domain.BadRequest("price must not be negative")
	}

	var data sqlpatch.Fields
	sqlpatch.SetIf(&data, "title", in.Title)
	sqlpatch.SetIf(&data, "description", in.Description)
	sqlpatch.SetIf(&data, "price", in.Price)
	sqlpatch.SetIf(&data, "isActive", in.IsActive)

	upd, err := sqlpatch.Build(data, serviceColumns)
	if err != nil {
		return nil, err
	}
	s, err := m.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("no service: %d", id))
	}
	m.audit.record(ctx, entityService, key(id), domain.AuditUpdated, data.Names()...)
	return s, nil
}

func (m *ServiceManager) Activate(ctx context.Context, id int64) (*domain.Service, error) {
	return m.setActive(ctx, id, true, domain.AuditActivated)
}

func (m *ServiceManager) Deactivate(ctx context.Context, id int64) (*domain.Service, error) {
	return m.setActive(ctx, id, false, domain.AuditDeactivated)
}

func (m *ServiceManager) setActive(ctx context.Context, id int64, active bool, action domain.AuditAction) (*domain.Service, error) {
	upd, err := sqlpatch.Build(sqlpatch.Fields{{Name: "isActive", Value: active}}, serviceColumns)
	if err != nil {
		return nil, err
	}
	s, err := m.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("no service found with ID: %d", id))
	}
	m.audit.record(ctx, entityService, key(id), action)
	return s, nil
}

func (m *ServiceManager) Remove(ctx context.Context, id int64) error {
	if err := m.repo.DeleteByID(ctx, id); err != nil {
		return notFound(err, fmt.Sprintf("no service found with service ID: %d", id))
	}
	m.audit.record(ctx, entityService, key(id), domain.AuditDeleted)
	return nil
}

// Reviews lists the reviews of a service. A service without reviews yields
// an empty list; only a missing service is NotFound.
func (m *ServiceManager) Reviews(ctx context.Context, id int64) ([]domain.Review, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return nil, err
	}
	return m.reviews.ListByService(ctx, id)
}

func key(id int64) string { return strconv.FormatInt(id, 10) }
