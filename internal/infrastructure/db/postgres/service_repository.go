package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const serviceColumns = `id, title, description, price, is_active`

// ServiceRepository implements ports.ServiceRepository on PostgreSQL.
type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

var _ ports.ServiceRepository = (*ServiceRepository)(nil)

func (r *ServiceRepository) Get(ctx context.Context, id int64) (*domain.Service, error) {
	s, err := scanService(r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		return nil, classify("get service", err)
	}
	return s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	if err != nil {
		return nil, classify("list services", err)
	}
	services, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Service, error) {
		s, err := scanService(row)
		if err != nil {
			return domain.Service{}, err
		}
		return *s, nil
	})
	if err != nil {
		return nil, classify("list services", err)
	}
	return services, nil
}

func (r *ServiceRepository) Insert(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	const q = `
		INSERT INTO services (title, description, price, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + serviceColumns

	created, err := scanService(r.pool.QueryRow(ctx, q, s.Title, s.Description, s.Price, s.IsActive))
	if err != nil {
		return nil, classify("insert service", err)
	}
	return created, nil
}

func (r *ServiceRepository) UpdateByID(ctx context.Context, id int64, upd sqlpatch.Update) (*domain.Service, error) {
	q := `UPDATE services SET ` + upd.SetClause + ` WHERE id = ` + upd.Next() + ` RETURNING ` + serviceColumns
	s, err := scanService(r.pool.QueryRow(ctx, q, upd.Args(id)...))
	if err != nil {
		return nil, classify("update service", err)
	}
	return s, nil
}

func (r *ServiceRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	return affected("delete service", tag, err)
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	if err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Price, &s.IsActive); err != nil {
		return nil, err
	}
	return &s, nil
}
