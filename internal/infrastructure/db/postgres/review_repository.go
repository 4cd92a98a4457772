package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const reviewColumns = `r.id, r.user_id, r.service_id, r.review_text, r.rating, r.time, u.username, u.first_name`

// ReviewRepository implements ports.ReviewRepository on PostgreSQL. Every
// read joins the author so ownership can be checked by username.
type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

func (r *ReviewRepository) Get(ctx context.Context, id int64) (*domain.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews r JOIN users u ON u.id = r.user_id WHERE r.id = $1`
	rv, err := scanReview(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, classify("get review", err)
	}
	return rv, nil
}

func (r *ReviewRepository) Insert(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	const q = `
		WITH r AS (
			INSERT INTO reviews (user_id, service_id, review_text, rating, time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + reviewColumns + ` FROM r JOIN users u ON u.id = r.user_id`

	created, err := scanReview(r.pool.QueryRow(ctx, q, rv.UserID, rv.ServiceID, rv.ReviewText, rv.Rating, rv.Time))
	if err != nil {
		return nil, classify("insert review", err)
	}
	return created, nil
}

func (r *ReviewRepository) UpdateByID(ctx context.Context, id int64, upd sqlpatch.Update) (*domain.Review, error) {
	q := `
		WITH r AS (
			UPDATE reviews SET ` + upd.SetClause + ` WHERE id = ` + upd.Next() + `
			RETURNING *
		)
		SELECT ` + reviewColumns + ` FROM r JOIN users u ON u.id = r.user_id`

	rv, err := scanReview(r.pool.QueryRow(ctx, q, upd.Args(id)...))
	if err != nil {
		return nil, classify("update review", err)
	}
	return rv, nil
}

func (r *ReviewRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return affected("delete review", tag, err)
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID int64) ([]domain.Review, error) {
	const q = `SELECT ` + reviewColumns + `
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.service_id = $1
		ORDER BY r.time DESC`

	rows, err := r.pool.Query(ctx, q, serviceID)
	if err != nil {
		return nil, classify("list reviews", err)
	}
	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Review, error) {
		rv, err := scanReview(row)
		if err != nil {
			return domain.Review{}, err
		}
		return *rv, nil
	})
	if err != nil {
		return nil, classify("list reviews", err)
	}
	return reviews, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.ServiceID, &rv.ReviewText, &rv.Rating, &rv.Time, &rv.Username, &rv.FirstName)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
