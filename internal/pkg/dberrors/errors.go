package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the registrar cares about
const (
	CodeForeignKeyViolation = "23503"
	CodeNotNullViolation    = "23502"
)

func pgCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	return pgErr.Code, true
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign_key_violation.
// On DELETE this means a dependent row still references the target.
func IsForeignKeyViolation(err error) bool {
	code, ok := pgCode(err)
	return ok && code == CodeForeignKeyViolation
}

// IsNotNullViolation reports whether a required column was left NULL.
func IsNotNullViolation(err error) bool {
	code, ok := pgCode(err)
	return ok && code == CodeNotNullViolation
}
