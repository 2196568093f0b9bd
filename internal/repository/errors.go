package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes inspected by callers.
const (
	sqlStateStringTooLong = "22001"
	sqlStateNotNull       = "23502"
)

// IsConstraintViolation reports whether err is a Postgres rejection of the
// row itself (value too long, NOT NULL) rather than a connectivity failure.
func IsConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == sqlStateStringTooLong || pgErr.Code == sqlStateNotNull
}
