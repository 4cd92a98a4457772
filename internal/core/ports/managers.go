package ports

import (
	"context"
	"time"

	"github.com/deadeye/laserworks/internal/core/domain"
)

// RegisterInput carries a new account. Role is always issued as regular.
type RegisterInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	BirthDate *time.Time
}

// UserUpdate is a sparse change to a user. Password is the current password
// and authorizes the change; NewPassword replaces it.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	BirthDate   *time.Time
	IsActive    *bool
	Password    *string
	NewPassword *string
}

type UserManager interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, username string, in UserUpdate) (*domain.User, error)
	Verify(ctx context.Context, username string) (*domain.User, error)
	Activate(ctx context.Context, username string) (*domain.User, error)
	Deactivate(ctx context.Context, username string) (*domain.User, error)
	Remove(ctx context.Context, username string) error
}

// ServiceInput creates a catalog entry. IsActive defaults to true.
type ServiceInput struct {
	Title       string
	Description string
	Price       float64
	IsActive    *bool
}

type ServiceUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	IsActive    *bool
}

type ServiceManager interface {
	List(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, in ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, id int64, in ServiceUpdate) (*domain.Service, error)
	Activate(ctx context.Context, id int64) (*domain.Service, error)
	Deactivate(ctx context.Context, id int64) (*domain.Service, error)
	Remove(ctx context.Context, id int64) error
	Reviews(ctx context.Context, id int64) ([]domain.Review, error)
}

type AddUserServiceInput struct {
	ServiceID      int64
	ConfirmedPrice float64
	AdditionInfo   string
}

type UserServiceManager interface {
	AddToUser(ctx context.Context, username string, in AddUserServiceInput) (*domain.UserService, error)
	ListForUser(ctx context.Context, username string) ([]domain.UserServiceDetail, error)
	ListAll(ctx context.Context) ([]domain.UserServiceDetail, error)
	Complete(ctx context.Context, id int64) (*domain.UserService, error)
	ChangePrice(ctx context.Context, id int64, price float64) (*domain.UserService, error)
	Remove(ctx context.Context, id int64) error
}

// AddReviewInput is decoded loosely: Rating holds whatever the client sent
// and is checked by the manager.
type AddReviewInput struct {
	UserID     int64
	ServiceID  int64
	ReviewText string
	Rating     any
}

type ReviewUpdate struct {
	ReviewText *string
	Rating     *int
}

// ReviewManager scopes writes to owner, the username the route acts on.
type ReviewManager interface {
	Get(ctx context.Context, id int64) (*domain.Review, error)
	Add(ctx context.Context, owner string, in AddReviewInput) (*domain.Review, error)
	Update(ctx context.Context, id int64, owner string, in ReviewUpdate) (*domain.Review, error)
	Remove(ctx context.Context, id int64, owner string) error
}

// Verifier runs the email confirmation flow.
type Verifier interface {
	SendConfirmation(ctx context.Context, username, email string) error
	Confirm(ctx context.Context, token string) (*domain.User, error)
}
