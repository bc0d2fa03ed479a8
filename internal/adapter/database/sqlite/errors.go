package sqlite

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"todoapp/internal/core/domain"
)

// ClassifyError translates driver errors into the domain taxonomy at the
// adapter boundary so the core never sees sqlite internals.
func ClassifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		if sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return domain.ErrDuplicateKey
		}
	}

	return &domain.PersistenceError{Op: op, Err: err}
}
