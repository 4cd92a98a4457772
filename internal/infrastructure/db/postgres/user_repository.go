package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deadeye/laserworks/internal/core/domain"
	"github.com/deadeye/laserworks/internal/core/ports"
	"github.com/deadeye/laserworks/internal/pkg/sqlpatch"
)

const userColumns = `id, username, first_name, last_name, email, birth_date, role, is_verified, is_active, password`

// UserRepository implements ports.UserRepository on PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, classify("get user", err)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, classify("list users", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		u, err := scanUser(row)
		if err != nil {
			return domain.User{}, err
		}
		return *u, nil
	})
	if err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}

func (r *UserRepository) Insert(ctx context.Context, u *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO users (username, password, first_name, last_name, email, birth_date, role, is_verified, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	created, err := scanUser(r.pool.QueryRow(ctx, q,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.BirthDate,
		string(u.Role), u.IsVerified, u.IsActive,
	))
	if err != nil {
		return nil, classify("insert user", err)
	}
	return created, nil
}

func (r *UserRepository) UpdateByUsername(ctx context.Context, username string, upd sqlpatch.Update) (*domain.User, error) {
	q := `UPDATE users SET ` + upd.SetClause + ` WHERE username = ` + upd.Next() + ` RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, q, upd.Args(username)...))
	if err != nil {
		return nil, classify("update user", err)
	}
	return u, nil
}

func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	return affected("delete user", tag, err)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.BirthDate,
		&role,
		&u.IsVerified,
		&u.IsActive,
		&u.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
