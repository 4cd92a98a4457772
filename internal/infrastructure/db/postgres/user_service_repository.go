package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const orderColumns = `id, user_id, service_id, confirmed_price, is_completed, addition_info,
	confirmation_code, requested_date, fulfilled_date`

const orderDetailSelect = `
	SELECT us.id, us.user_id, us.service_id, us.confirmed_price, us.is_completed, us.addition_info,
	       us.confirmation_code, us.requested_date, us.fulfilled_date,
	       u.username, u.first_name,
	       s.title, s.description, s.price, s.is_active
	FROM users_services us
	JOIN users u ON u.id = us.user_id
	JOIN services s ON s.id = us.service_id`

// UserServiceRepository implements ports.UserServiceRepository on PostgreSQL.
type UserServiceRepository struct {
	pool *pgxpool.Pool
}

func NewUserServiceRepository(pool *pgxpool.Pool) *UserServiceRepository {
	return &UserServiceRepository{pool: pool}
}

var _ ports.UserServiceRepository = (*UserServiceRepository)(nil)

func (r *UserServiceRepository) Get(ctx context.Context, id int64) (*domain.UserService, error) {
	us, err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM users_services WHERE id = $1`, id))
	if err != nil {
		return nil, classify("get user service", err)
	}
	return us, nil
}

func (r *UserServiceRepository) Insert(ctx context.Context, us *domain.UserService) (*domain.UserService, error) {
	const q = `
		INSERT INTO users_services (user_id, service_id, confirmed_price, is_completed, addition_info,
		                            confirmation_code, requested_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + orderColumns

	created, err := scanOrder(r.pool.QueryRow(ctx, q,
		us.UserID, us.ServiceID, us.ConfirmedPrice, us.IsCompleted, us.AdditionInfo,
		us.ConfirmationCode, us.RequestedDate,
	))
	if err != nil {
		return nil, classify("insert user service", err)
	}
	return created, nil
}

func (r *UserServiceRepository) UpdateByID(ctx context.Context, id int64, upd sqlpatch.Update) (*domain.UserService, error) {
	q := `UPDATE users_services SET ` + upd.SetClause + ` WHERE id = ` + upd.Next() + ` RETURNING ` + orderColumns
	us, err := scanOrder(r.pool.QueryRow(ctx, q, upd.Args(id)...))
	if err != nil {
		return nil, classify("update user service", err)
	}
	return us, nil
}

func (r *UserServiceRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users_services WHERE id = $1`, id)
	return affected("delete user service", tag, err)
}

func (r *UserServiceRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserServiceDetail, error) {
	return r.listDetails(ctx, "list user services", orderDetailSelect+` WHERE us.user_id = $1 ORDER BY us.requested_date DESC`, userID)
}

func (r *UserServiceRepository) ListAll(ctx context.Context) ([]domain.UserServiceDetail, error) {
	return r.listDetails(ctx, "list all user services", orderDetailSelect+` ORDER BY us.requested_date DESC`)
}

func (r *UserServiceRepository) listDetails(ctx context.Context, op, q string, args ...any) ([]domain.UserServiceDetail, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	details, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.UserServiceDetail, error) {
		var d domain.UserServiceDetail
		err := row.Scan(
			&d.ID, &d.UserID, &d.ServiceID, &d.ConfirmedPrice, &d.IsCompleted, &d.AdditionInfo,
			&d.ConfirmationCode, &d.RequestedDate, &d.FulfilledDate,
			&d.Username, &d.FirstName,
			&d.Title, &d.Description, &d.Price, &d.IsActive,
		)
		return d, err
	})
	if err != nil {
		return nil, classify(op, err)
	}
	return details, nil
}

func scanOrder(row pgx.Row) (*domain.UserService, error) {
	var us domain.UserService
	err := row.Scan(
		&us.ID, &us.UserID, &us.ServiceID, &us.ConfirmedPrice, &us.IsCompleted, &us.AdditionInfo,
		&us.ConfirmationCode, &us.RequestedDate, &us.FulfilledDate,
	)
	if err != nil {
		return nil, err
	}
	return &us, nil
}
