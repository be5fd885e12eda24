package errors

// Postgres helpers mapping pgx and context failures of read queries onto ErrorCode

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes a read only report query can hit
const (
	pgErrQueryCanceled      = "57014" // statement_timeout or cancel request
	pgErrCannotConnectNow   = "57P03"
	pgErrAdminShutdown      = "57P01"
	pgErrTooManyConnections = "53300"
	pgErrInvalidDatetime    = "22007"
	pgErrDatetimeOverflow   = "22008"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
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

// IsQueryCanceled reports whether the server canceled the statement
func IsQueryCanceled(err error) bool { return IsSQLState(err, pgErrQueryCanceled) }

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}

	switch {
	case pgErr.Code == pgErrQueryCanceled,
		pgErr.Code == pgErrCannotConnectNow,
		pgErr.Code == pgErrAdminShutdown,
		pgErr.Code == pgErrTooManyConnections,
		strings.HasPrefix(pgErr.Code, "08"): // connection exception class
		return ErrorCodeUnavailable, true

	case pgErr.Code == pgErrInvalidDatetime, pgErr.Code == pgErrDatetimeOverflow:
		// a bound period the server refuses to read as a date
		return ErrorCodeInvalidArgument, true
	}

	// undefined tables and columns, privileges and bad numeric text stay DB errors
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromQuery classifies a failed report query
// deadlines and cancellations become Unavailable, everything else goes through FromPostgres
// errors that are already ours keep their code
func FromQuery(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, context.Canceled) {
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
	if e, ok := As(err); ok {
		return Wrap(err, e.code, msg)
	}
	return FromPostgres(err, msg)
}

// IsTimeout reports whether err is a local deadline or a server side statement timeout
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	return stderrs.Is(err, context.DeadlineExceeded) || IsQueryCanceled(err)
}
