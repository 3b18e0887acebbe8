package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error taxonomy. Handlers translate these into HTTP statuses; everything
// else is treated as a server-side failure.
var (
	// ErrValidation marks malformed or incomplete client input.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a uniqueness or foreign-key violation from the store.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a missing entity or an expired cache entry.
	ErrNotFound = errors.New("not found")
	// ErrIntegrity marks a query that expected exactly one row and got
	// zero or many. Unreachable under correct writer behavior.
	ErrIntegrity = errors.New("data integrity violation")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func conflictError(err error) error {
	return fmt.Errorf("%w: %s", ErrConflict, err.Error())
}

func notFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Postgres error codes surfaced to callers as client-input failures.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// isConstraintViolation reports whether the database rejected a write for a
// uniqueness or foreign-key reason.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgUniqueViolation || pgErr.Code == pgForeignKeyViolation
}
