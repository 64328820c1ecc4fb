package errors

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values the repositories react to
const (
	pgUniqueViolation   = "23505"
	pgNotNullViolation  = "23502"
	pgCheckViolation    = "23514"
	pgStringTooLong     = "22001"
	pgInvalidText       = "22P02"
	pgInvalidDatetime   = "22007"
	pgQueryCanceled     = "57014"
	pgCannotConnectNow  = "57P03"
	pgReadOnlyTx        = "25006"
	pgSerializationFail = "40001"
	pgDeadlockDetected  = "40P01"
)

var pgCodes = map[string]ErrorCode{
	pgUniqueViolation:   ErrorCodeConflict,
	pgNotNullViolation:  ErrorCodeValidation,
	pgCheckViolation:    ErrorCodeValidation,
	pgStringTooLong:     ErrorCodeInvalidArgument,
	pgInvalidText:       ErrorCodeInvalidArgument,
	pgInvalidDatetime:   ErrorCodeInvalidArgument,
	pgQueryCanceled:     ErrorCodeUnavailable,
	pgCannotConnectNow:  ErrorCodeUnavailable,
	pgReadOnlyTx:        ErrorCodeUnavailable,
	pgSerializationFail: ErrorCodeDB,
	pgDeadlockDetected:  ErrorCodeDB,
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode classifies a Postgres error; ok is false for anything else
func DBErrorCode(err error) (ErrorCode, bool) {
	pgErr, ok := pgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, ok := pgCodes[pgErr.Code]; ok {
		return c, true
	}
	return ErrorCodeDB, true
}

// ConstraintField turns a default Postgres constraint name back into its column
// cases_margins_check -> margins, cases_date_recorded_check -> date_recorded
func ConstraintField(table, constraint string) string {
	name := strings.TrimPrefix(constraint, table+"_")
	for _, suffix := range []string{"_check", "_fkey", "_key"} {
		if s, ok := strings.CutSuffix(name, suffix); ok {
			return s
		}
	}
	return name
}

// CheckViolation reports the column behind a CHECK failure on table
func CheckViolation(err error, table string) (string, bool) {
	pgErr, ok := pgError(err)
	if !ok || pgErr.Code != pgCheckViolation {
		return "", false
	}
	if pgErr.TableName != "" && pgErr.TableName != table {
		return "", false
	}
	return ConstraintField(table, pgErr.ConstraintName), true
}

// FromPostgresWithField wraps err with its mapped code and, when Postgres names it, the column
// a nil err stays nil
func FromPostgresWithField(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	out := Wrap(err, code, msg)
	pgErr, ok := pgError(err)
	if !ok {
		return out
	}
	switch {
	case pgErr.ColumnName != "":
		return WithField(out, pgErr.ColumnName)
	case pgErr.ConstraintName != "" && pgErr.TableName != "":
		return WithField(out, ConstraintField(pgErr.TableName, pgErr.ConstraintName))
	}
	return out
}
