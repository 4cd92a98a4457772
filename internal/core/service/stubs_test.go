package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Update application
// ---------------------------------------------------------------------------

// applyUpdate decodes a SET clause back into column/value pairs and hands
// them to set, so stubs honour the same column names the SQL repos do.
func applyUpdate(upd sqlpatch.Update, set func(col string, v any) error) error {
	for i, part := range strings.Split(upd.SetClause, ", ") {
		col, ph, ok := strings.Cut(part, " = ")
		if !ok || ph != fmt.Sprintf("$%d", i+1) {
			return fmt.Errorf("malformed assignment %q", part)
		}
		if err := set(col, upd.Values[i]); err != nil {
			return err
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Hasher
// ---------------------------------------------------------------------------

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Compare(p, d string) bool      { return d == "hashed:"+p }

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int64
	last   sqlpatch.Update
	// updateErrs are returned, one per call, by the next updates.
	updateErrs []error
}

func newStubUserRepo(users ...domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		if _, err := r.Insert(context.Background(), &u); err != nil {
			panic(err)
		}
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, ports.ErrNoRows
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (r *stubUserRepo) Insert(_ context.Context, u *domain.User) (*domain.User, error) {
	if _, ok := r.users[u.Username]; ok {
		return nil, ports.ErrConflict
	}
	r.nextID++
	c := cloneUser(u)
	c.ID = r.nextID
	r.users[c.Username] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) UpdateByUsername(_ context.Context, username string, upd sqlpatch.Update) (*domain.User, error) {
	r.last = upd
	if len(r.updateErrs) > 0 {
		err := r.updateErrs[0]
		r.updateErrs = r.updateErrs[1:]
		return nil, err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, ports.ErrNoRows
	}
	c := cloneUser(u)
	err := applyUpdate(upd, func(col string, v any) error {
		switch col {
		case "first_name":
			c.FirstName = v.(string)
		case "last_name":
			c.LastName = v.(string)
		case "email":
			c.Email = v.(string)
		case "birth_date":
			t := v.(time.Time)
			c.BirthDate = &t
		case "is_active":
			c.IsActive = v.(bool)
		case "is_verified":
			c.IsVerified = v.(bool)
		case "password":
			c.PasswordHash = v.(string)
		default:
			return fmt.Errorf("unknown column %q", col)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.users[username] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) DeleteByUsername(_ context.Context, username string) error {
	if _, ok := r.users[username]; !ok {
		return ports.ErrNoRows
	}
	delete(r.users, username)
	return nil
}

// ---------------------------------------------------------------------------
// Services
// ---------------------------------------------------------------------------

type stubServiceRepo struct {
	services map[int64]*domain.Service
	nextID   int64
}

func newStubServiceRepo(services ...domain.Service) *stubServiceRepo {
	r := &stubServiceRepo{services: make(map[int64]*domain.Service)}
	for _, s := range services {
		_, _ = r.Insert(context.Background(), &s)
	}
	return r
}

func (r *stubServiceRepo) Get(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ports.ErrNoRows
	}
	clone := *s
	return &clone, nil
}

func (r *stubServiceRepo) List(_ context.Context) ([]domain.Service, error) {
	out := make([]domain.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubServiceRepo) Insert(_ context.Context, s *domain.Service) (*domain.Service, error) {
	r.nextID++
	clone := *s
	clone.ID = r.nextID
	r.services[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubServiceRepo) UpdateByID(_ context.Context, id int64, upd sqlpatch.Update) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, ports.ErrNoRows
	}
	clone := *s
	err := applyUpdate(upd, func(col string, v any) error {
		switch col {
		case "title":
			clone.Title = v.(string)
		case "description":
			clone.Description = v.(string)
		case "price":
			clone.Price = v.(float64)
		case "is_active":
			clone.IsActive = v.(bool)
		default:
			return fmt.Errorf("unknown column %q", col)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.services[id] = &clone
	out := clone
	return &out, nil
}

func (r *stubServiceRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.services[id]; !ok {
		return ports.ErrNoRows
	}
	delete(r.services, id)
	return nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type stubUserServiceRepo struct {
	orders map[int64]*domain.UserService
	nextID int64
}

func newStubUserServiceRepo() *stubUserServiceRepo {
	return &stubUserServiceRepo{orders: make(map[int64]*domain.UserService)}
}

func (r *stubUserServiceRepo) Get(_ context.Context, id int64) (*domain.UserService, error) {
	us, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNoRows
	}
	clone := *us
	return &clone, nil
}

func (r *stubUserServiceRepo) Insert(_ context.Context, us *domain.UserService) (*domain.UserService, error) {
	r.nextID++
	clone := *us
	clone.ID = r.nextID
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserServiceRepo) UpdateByID(_ context.Context, id int64, upd sqlpatch.Update) (*domain.UserService, error) {
	us, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNoRows
	}
	clone := *us
	err := applyUpdate(upd, func(col string, v any) error {
		switch col {
		case "confirmed_price":
			clone.ConfirmedPrice = v.(float64)
		case "is_completed":
			clone.IsCompleted = v.(bool)
		case "addition_info":
			clone.AdditionInfo = v.(string)
		case "fulfilled_date":
			t := v.(time.Time)
			clone.FulfilledDate = &t
		default:
			return fmt.Errorf("unknown column %q", col)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.orders[id] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserServiceRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNoRows
	}
	delete(r.orders, id)
	return nil
}

func (r *stubUserServiceRepo) ListByUser(_ context.Context, userID int64) ([]domain.UserServiceDetail, error) {
	out := []domain.UserServiceDetail{}
	for _, us := range r.orders {
		if us.UserID == userID {
			out = append(out, domain.UserServiceDetail{UserService: *us})
		}
	}
	return out, nil
}

func (r *stubUserServiceRepo) ListAll(_ context.Context) ([]domain.UserServiceDetail, error) {
	out := []domain.UserServiceDetail{}
	for _, us := range r.orders {
		out = append(out, domain.UserServiceDetail{UserService: *us})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Reviews
// ---------------------------------------------------------------------------

type stubReviewRepo struct {
	reviews map[int64]*domain.Review
	users   *stubUserRepo
	nextID  int64
}

func newStubReviewRepo(users *stubUserRepo) *stubReviewRepo {
	return &stubReviewRepo{reviews: make(map[int64]*domain.Review), users: users}
}

// withAuthor fills the joined author columns.
func (r *stubReviewRepo) withAuthor(rv domain.Review) *domain.Review {
	for _, u := range r.users.users {
		if u.ID == rv.UserID {
			rv.Username = u.Username
			rv.FirstName = u.FirstName
		}
	}
	return &rv
}

func (r *stubReviewRepo) Get(_ context.Context, id int64) (*domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, ports.ErrNoRows
	}
	return r.withAuthor(*rv), nil
}

func (r *stubReviewRepo) Insert(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	r.nextID++
	clone := *rv
	clone.ID = r.nextID
	r.reviews[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubReviewRepo) UpdateByID(_ context.Context, id int64, upd sqlpatch.Update) (*domain.Review, error) {
	rv, ok := r.reviews[id]
	if !ok {
		return nil, ports.ErrNoRows
	}
	clone := *rv
	err := applyUpdate(upd, func(col string, v any) error {
		switch col {
		case "review_text":
			clone.ReviewText = v.(string)
		case "rating":
			clone.Rating = v.(int)
		case "time":
			clone.Time = v.(time.Time)
		default:
			return fmt.Errorf("unknown column %q", col)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.reviews[id] = &clone
	return r.withAuthor(clone), nil
}

func (r *stubReviewRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := r.reviews[id]; !ok {
		return ports.ErrNoRows
	}
	delete(r.reviews, id)
	return nil
}

func (r *stubReviewRepo) ListByService(_ context.Context, serviceID int64) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ServiceID == serviceID {
			out = append(out, *r.withAuthor(*rv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type recordingAudit struct {
	entries []domain.AuditEntry
	err     error
}

func (a *recordingAudit) Record(_ context.Context, e domain.AuditEntry) error {
	a.entries = append(a.entries, e)
	return a.err
}

type captureQueue struct {
	mails []ports.Mail
	err   error
}

func (q *captureQueue) Enqueue(m ports.Mail) error {
	if q.err != nil {
		return q.err
	}
	q.mails = append(q.mails, m)
	return nil
}

type memoryConfirmationStore struct {
	used map[string]bool
}

func (s *memoryConfirmationStore) Consume(_ context.Context, id string, _ time.Duration) (bool, error) {
	if s.used == nil {
		s.used = make(map[string]bool)
	}
	if s.used[id] {
		return false, nil
	}
	s.used[id] = true
	return true, nil
}

func (s *memoryConfirmationStore) Release(_ context.Context, id string) error {
	delete(s.used, id)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func seededUser(username string) domain.User {
	return domain.User{
		Username:     username,
		FirstName:    "First-" + username,
		LastName:     "Last",
		Email:        username + "@example.com",
		Role:         domain.RoleRegular,
		IsActive:     true,
		PasswordHash: "hashed:password-" + username,
	}
}
