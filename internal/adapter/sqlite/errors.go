package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// mapError converts database/sql and sqlite3 errors to domain errors.
// Context errors pass through wrapped.
func mapError(err error, entity string, id domain.ID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	if errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s %s: %w: %w", entity, id, domain.ErrUnavailable, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrParentNotFound)
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
		switch sqliteErr.Code {
		case sqlite3.ErrCantOpen, sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr:
			return fmt.Errorf("%s %s: %w: %w", entity, id, domain.ErrUnavailable, err)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
