package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/token"
)

// newContext builds an echo context for method/target with an optional JSON
// body and the given path parameters (name, value, name, value...).
func newContext(method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

type stubUserManager struct {
	authenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	registerFn     func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	getFn          func(ctx context.Context, username string) (*domain.User, error)
	listFn         func(ctx context.Context) ([]domain.User, error)
	updateFn       func(ctx context.Context, username string, in ports.UserUpdate) (*domain.User, error)
	setActiveFn    func(ctx context.Context, username string, active bool) (*domain.User, error)
	removeFn       func(ctx context.Context, username string) error
}

func (s *stubUserManager) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return s.authenticateFn(ctx, username, password)
}

func (s *stubUserManager) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserManager) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.getFn(ctx, username)
}

func (s *stubUserManager) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserManager) Update(ctx context.Context, username string, in ports.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, username, in)
}

func (s *stubUserManager) Verify(ctx context.Context, username string) (*domain.User, error) {
	return &domain.User{Username: username, IsVerified: true}, nil
}

func (s *stubUserManager) Activate(ctx context.Context, username string) (*domain.User, error) {
	return s.setActiveFn(ctx, username, true)
}

func (s *stubUserManager) Deactivate(ctx context.Context, username string) (*domain.User, error) {
	return s.setActiveFn(ctx, username, false)
}

func (s *stubUserManager) Remove(ctx context.Context, username string) error {
	return s.removeFn(ctx, username)
}

type stubVerifier struct {
	sendFn    func(ctx context.Context, username, email string) error
	confirmFn func(ctx context.Context, raw string) (*domain.User, error)
}

func (s *stubVerifier) SendConfirmation(ctx context.Context, username, email string) error {
	return s.sendFn(ctx, username, email)
}

func (s *stubVerifier) Confirm(ctx context.Context, raw string) (*domain.User, error) {
	return s.confirmFn(ctx, raw)
}

type stubServiceManager struct {
	ports.ServiceManager
	getFn     func(ctx context.Context, id int64) (*domain.Service, error)
	createFn  func(ctx context.Context, in ports.ServiceInput) (*domain.Service, error)
	removeFn  func(ctx context.Context, id int64) error
	reviewsFn func(ctx context.Context, id int64) ([]domain.Review, error)
}

func (s *stubServiceManager) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return s.getFn(ctx, id)
}

func (s *stubServiceManager) Create(ctx context.Context, in ports.ServiceInput) (*domain.Service, error) {
	return s.createFn(ctx, in)
}

func (s *stubServiceManager) Remove(ctx context.Context, id int64) error {
	return s.removeFn(ctx, id)
}

func (s *stubServiceManager) Reviews(ctx context.Context, id int64) ([]domain.Review, error) {
	return s.reviewsFn(ctx, id)
}

type stubUserServiceManager struct {
	ports.UserServiceManager
	addFn      func(ctx context.Context, username string, in ports.AddUserServiceInput) (*domain.UserService, error)
	completeFn func(ctx context.Context, id int64) (*domain.UserService, error)
	priceFn    func(ctx context.Context, id int64, price float64) (*domain.UserService, error)
}

func (s *stubUserServiceManager) AddToUser(ctx context.Context, username string, in ports.AddUserServiceInput) (*domain.UserService, error) {
	return s.addFn(ctx, username, in)
}

func (s *stubUserServiceManager) Complete(ctx context.Context, id int64) (*domain.UserService, error) {
	return s.completeFn(ctx, id)
}

func (s *stubUserServiceManager) ChangePrice(ctx context.Context, id int64, price float64) (*domain.UserService, error) {
	return s.priceFn(ctx, id, price)
}

type stubReviewManager struct {
	ports.ReviewManager
	addFn    func(ctx context.Context, owner string, in ports.AddReviewInput) (*domain.Review, error)
	updateFn func(ctx context.Context, id int64, owner string, in ports.ReviewUpdate) (*domain.Review, error)
	removeFn func(ctx context.Context, id int64, owner string) error
}

func (s *stubReviewManager) Add(ctx context.Context, owner string, in ports.AddReviewInput) (*domain.Review, error) {
	return s.addFn(ctx, owner, in)
}

func (s *stubReviewManager) Update(ctx context.Context, id int64, owner string, in ports.ReviewUpdate) (*domain.Review, error) {
	return s.updateFn(ctx, id, owner, in)
}

func (s *stubReviewManager) Remove(ctx context.Context, id int64, owner string) error {
	return s.removeFn(ctx, id, owner)
}

func testCodec() *token.Codec {
	return token.NewCodec("handler-test-secret", 0)
}
