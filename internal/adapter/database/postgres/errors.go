package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"todoapp/internal/core/domain"
)

const uniqueViolationCode = "23505"

// ClassifyError translates pgx errors into the domain taxonomy at the
// adapter boundary.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return domain.ErrDuplicateKey
	}

	return &domain.PersistenceError{Op: op, Err: err}
}
