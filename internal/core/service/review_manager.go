package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const entityReview = "review"

var reviewColumns = map[string]string{
	"reviewText": "review_text",
	"rating":     "rating",
	"time":       "time",
}

// ReviewManager handles customer reviews. Writes are scoped to the owner
// username of the route; a review owned by someone else is Unauthorized.
type ReviewManager struct {
	repo     ports.ReviewRepository
	users    ports.UserRepository
	services ports.ServiceRepository
	audit    auditTrail
	now      func() time.Time
}

func NewReviewManager(
	repo ports.ReviewRepository,
	users ports.UserRepository,
	services ports.ServiceRepository,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *ReviewManager {
	return &ReviewManager{
		repo:     repo,
		users:    users,
		services: services,
		audit:    auditTrail{rec: audit, log: logger},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (m *ReviewManager) Get(ctx context.Context, id int64) (*domain.Review, error) {
	r, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("no review found with ID: %d", id))
	}
	return r, nil
}

func (m *ReviewManager) Add(ctx context.Context, owner string, in ports.AddReviewInput) (*domain.Review, error) {
	if in.UserID == 0 || in.ServiceID == 0 || in.ReviewText == "" || in.Rating == nil {
		return nil, domain.BadRequest("missing required fields")
	}
	rating, err := parseRating(in.Rating)
	if err != nil {
		return nil, err
	}

	u, err := m.users.GetByUsername(ctx, owner)
	if err != nil {
		return nil, notFound(err, "no user: "+owner)
	}
	if u.ID != in.UserID {
		return nil, domain.Unauthorized("review author does not match user")
	}
	if _, err := m.services.Get(ctx, in.ServiceID); err != nil {
		return nil, notFound(err, fmt.Sprintf("no service: %d", in.ServiceID))
	}

	r, err := m.repo.Insert(ctx, &domain.Review{
		UserID:     in.UserID,
		ServiceID:  in.ServiceID,
		ReviewText: in.ReviewText,
		Rating:     rating,
		Time:       m.now(),
	})
	if err != nil {
		return nil, notFound(err, "no user or service for review")
	}
	m.audit.record(ctx, entityReview, key(r.ID), domain.AuditCreated)
	return r, nil
}

func (m *ReviewManager) Update(ctx context.Context, id int64, owner string, in ports.ReviewUpdate) (*domain.Review, error) {
	if in.Rating != nil {
		if err := checkRating(*in.Rating); err != nil {
			return nil, err
		}
	}
	if _, err := m.owned(ctx, id, owner); err != nil {
		return nil, err
	}

	var data sqlpatch.Fields
	sqlpatch.SetIf(&data, "reviewText", in.ReviewText)
	sqlpatch.SetIf(&data, "rating", in.Rating)
	if len(data) > 0 {
		data.Set("time", m.now())
	}

	upd, err := sqlpatch.Build(data, reviewColumns)
	if err != nil {
		return nil, err
	}
	r, err := m.repo.UpdateByID(ctx, id, upd)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("no review: %d", id))
	}
	m.audit.record(ctx, entityReview, key(id), domain.AuditUpdated, data.Names()...)
	return r, nil
}

func (m *ReviewManager) Remove(ctx context.Context, id int64, owner string) error {
	if _, err := m.owned(ctx, id, owner); err != nil {
		return err
	}
	if err := m.repo.DeleteByID(ctx, id); err != nil {
		return notFound(err, fmt.Sprintf("no review found with ID: %d", id))
	}
	m.audit.record(ctx, entityReview, key(id), domain.AuditDeleted)
	return nil
}

func (m *ReviewManager) owned(ctx context.Context, id int64, owner string) (*domain.Review, error) {
	r, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Username != owner {
		return nil, domain.Unauthorized("review does not belong to user")
	}
	return r, nil
}

// parseRating accepts the numeric shapes a JSON decoder can produce.
// Strings, even numeric ones, are rejected.
func parseRating(v any) (int, error) {
	var f float64
	switch r := v.(type) {
	case int:
		f = float64(r)
	case int64:
		f = float64(r)
	case float64:
		f = r
	case json.Number:
		n, err := r.Float64()
		if err != nil {
			return 0, domain.BadRequest("rating must be a number")
		}
		f = n
	default:
		return 0, domain.BadRequest("rating must be a number")
	}
	if f != math.Trunc(f) {
		return 0, domain.BadRequest("rating must be a whole number")
	}
	if f < domain.MinRating || f > domain.MaxRating {
		return 0, errRatingRange
	}
	return int(f), nil
}

var errRatingRange = domain.BadRequestf("rating must be between %d and %d", domain.MinRating, domain.MaxRating)

func checkRating(r int) error {
	if r < domain.MinRating || r > domain.MaxRating {
		return errRatingRange
	}
	return nil
}
