package apperrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for the storage core. Callers classify outcomes with
// errors.Is rather than inspecting driver errors directly.
var (
	// Resource errors
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource already exists")
	ErrDependencyExists = errors.New("resource is referenced by other rows")

	// Enrollment admission errors
	ErrAlreadyEnrolled = errors.New("student is already enrolled in this section")
	ErrSectionFull     = errors.New("section has no remaining seats")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	// Infrastructure errors
	ErrStorage   = errors.New("storage failure")
	ErrMigration = errors.New("schema migration failed")
)

// PostgreSQL error codes of interest.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgDuplicateColumn     = "42701"
)

// Classify converts a pgx/pgconn error into one of the sentinel kinds.
// A nil error stays nil. Unknown failures are wrapped as ErrStorage so the
// caller never has to fall back on string matching.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrDependencyExists, pgErr.ConstraintName)
		}
	}
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

// IsDuplicateColumn reports whether err is the duplicate_column failure that
// an additive ALTER TABLE produces when the column already exists.
func IsDuplicateColumn(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgDuplicateColumn
}

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally restricted to a named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
