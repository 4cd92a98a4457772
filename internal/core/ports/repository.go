package ports

import (
	"context"
	"errors"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

// ErrNoRows is returned by repositories when a lookup or keyed write matched
// no row. Managers translate it into a NotFound error.
var ErrNoRows = errors.New("no rows")

// ErrConflict is returned when an insert collides with a unique key.
var ErrConflict = errors.New("conflict")

// UserRepository persists users keyed by username.
type UserRepository interface {
	// GetByUsername returns the full row, including the password hash.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Insert(ctx context.Context, u *domain.User) (*domain.User, error)
	UpdateByUsername(ctx context.Context, username string, upd sqlpatch.Update) (*domain.User, error)
	DeleteByUsername(ctx context.Context, username string) error
}

// ServiceRepository persists catalog services keyed by id.
type ServiceRepository interface {
	Get(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Insert(ctx context.Context, s *domain.Service) (*domain.Service, error)
	UpdateByID(ctx context.Context, id int64, upd sqlpatch.Update) (*domain.Service, error)
	DeleteByID(ctx context.Context, id int64) error
}

// UserServiceRepository persists orders keyed by id.
type UserServiceRepository interface {
	Get(ctx context.Context, id int64) (*domain.UserService, error)
	Insert(ctx context.Context, us *domain.UserService) (*domain.UserService, error)
	UpdateByID(ctx context.Context, id int64, upd sqlpatch.Update) (*domain.UserService, error)
	DeleteByID(ctx context.Context, id int64) error
	// ListByUser joins the user's orders with their catalog services.
	ListByUser(ctx context.Context, userID int64) ([]domain.UserServiceDetail, error)
	// ListAll joins every order with its user and catalog service.
	ListAll(ctx context.Context) ([]domain.UserServiceDetail, error)
}

// ReviewRepository persists reviews keyed by id. Reads join the author's
// username and first name.
type ReviewRepository interface {
	Get(ctx context.Context, id int64) (*domain.Review, error)
	Insert(ctx context.Context, r *domain.Review) (*domain.Review, error)
	UpdateByID(ctx context.Context, id int64, upd sqlpatch.Update) (*domain.Review, error)
	DeleteByID(ctx context.Context, id int64) error
	ListByService(ctx context.Context, serviceID int64) ([]domain.Review, error)
}
