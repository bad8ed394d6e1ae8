package errors

// Postgres-specific helpers for mapping pgx errors to project ErrorCode and
// retry semantics

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we care about
const (
	pgErrUniqueViolation      = "23505"
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrCannotConnectNow     = "57P03"
)

// ExtractPgError returns (*pgconn.PgError, true) if the cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsRetryablePG reports whether the error is a transient Postgres condition
// (serialization failure, deadlock, server starting up) or a context timeout
func IsRetryablePG(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch {
	case IsSQLState(err, pgErrSerializationFailure),
		IsSQLState(err, pgErrDeadlockDetected),
		IsSQLState(err, pgErrCannotConnectNow):
		return true
	}
	return false
}

// FromPG maps a Postgres error into a project *Error; non-PG errors are
// wrapped with ErrorCodeDB
func FromPG(err error, msg string) error {
	if err == nil {
		return nil
	}
	if IsDuplicateKey(err) {
		return Wrap(err, ErrorCodeDuplicateKey, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}
