package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapError converts gorm and PostgreSQL errors to the store's sentinel errors.
// Raw driver errors never cross the service boundary.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if strings.Contains(pgErr.ConstraintName, "slug") {
				return ErrDuplicateSlug
			}
			return ErrConflict
		case pgerrcode.ForeignKeyViolation:
			return ErrNotFound
		}
	}

	return err
}
