package pkg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// postgres error codes, https://www.postgresql.org/docs/current/errcodes-appendix.html
const pgCodeForeignKeyViolation = "23503"

func hasPgErrorCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// IsForeignKeyViolationError reports whether err, or any error it wraps, is a postgres FK violation.
func IsForeignKeyViolationError(err error) bool {
	return hasPgErrorCode(err, pgCodeForeignKeyViolation)
}
