// Package pgerr translates PostgreSQL constraint violations into the
// application's error types. The advisory pre-checks in the command handlers
// run first, but the database constraints stay authoritative under
// concurrency; this package keeps the surfaced error the same either way.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"logistics/internal/pkg/errs"
)

// Postgres error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// ErrRowIsReferenced signals a foreign key violation: the row cannot be
// written or removed because another row still depends on it.
var ErrRowIsReferenced = errors.New("row is referenced by another row")

// Map converts a constraint violation into the matching application error.
// Unique violations become duplicated-value errors carrying paramName and
// value; foreign key violations become ErrRowIsReferenced. Any other error
// passes through unchanged.
func Map(err error, paramName string, value any) error {
	if err == nil {
		return nil
	}

	var pgError *pgconn.PgError
	if !errors.As(err, &pgError) {
		return err
	}

	switch pgError.Code {
	case uniqueViolationCode:
		return errs.NewValueIsDuplicatedErrorWithCause(paramName, value, err)
	case foreignKeyViolationCode:
		return errors.Join(ErrRowIsReferenced, err)
	default:
		return err
	}
}
