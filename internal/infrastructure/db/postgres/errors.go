package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deadeye/laserworks/internal/core/ports"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// classify maps driver errors onto the repository sentinels. A foreign key
// violation means a referenced row is missing, so it reads as no rows.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ports.ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w", op, ports.ErrConflict)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w", op, ports.ErrNoRows)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affected turns a zero-row command into ErrNoRows.
func affected(op string, tag pgconn.CommandTag, err error) error {
	if err != nil {
		return classify(op, err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNoRows
	}
	return nil
}
