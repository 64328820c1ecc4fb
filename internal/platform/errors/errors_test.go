package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		NotFoundf("case %s not found", "c-1"):          http.StatusNotFound,
		InvalidArgf("dateFrom is after dateTo"):        http.StatusUnprocessableEntity,
		Validationf("margins must be between 0 and 2"): http.StatusBadRequest,
		JSONErrf("invalid JSON"):                       http.StatusBadRequest,
		Unavailablef("cases store unavailable"):        http.StatusServiceUnavailable,
		New(ErrorCodeConflict, "case exists"):          http.StatusConflict,
		PanicErrf("panic recovered"):                   http.StatusInternalServerError,
		New(ErrorCodeDB, "list cases failed"):          http.StatusInternalServerError,
		fmt.Errorf("plain"):                            http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, HTTPStatus(err), err.Error())
	}
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusCode(ErrorCode(999)))
}

func TestFieldAndOpAreCopyOnWrite(t *testing.T) {
	base := Validationf("Score for contour is required")
	withField := WithField(base, "contour")
	tagged := WithOp(withField, "cases.create")

	assert.Empty(t, WireFrom(base).Field)
	assert.Equal(t, Wire{Code: ErrorCodeValidation, Message: "Score for contour is required", Field: "contour"}, WireFrom(tagged))

	e, ok := As(tagged)
	require.True(t, ok)
	assert.Equal(t, "cases.create", e.Op())
	assert.Equal(t, "contour", e.Field())

	plain := stderrs.New("io")
	assert.Same(t, plain, WithField(plain, "x"))
	assert.Same(t, plain, WithOp(plain, "x"))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrs.New("connection reset")
	err := Wrap(fmt.Errorf("query: %w", cause), ErrorCodeDB, "list cases failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list cases failed: query: connection reset", err.Error())
	assert.Equal(t, "list cases failed", WireFrom(err).Message)
	assert.Equal(t, "<nil>", (*Error)(nil).Error())
}

func TestWireFrom(t *testing.T) {
	assert.Equal(t, Wire{}, WireFrom(nil))
	assert.Equal(t, Wire{Code: ErrorCodeUnknown, Message: "boom"}, WireFrom(stderrs.New("boom")))
	assert.True(t, IsCode(fmt.Errorf("get: %w", ErrNotFound), ErrorCodeNotFound))
	assert.Equal(t, ErrorCodeUnknown, CodeOf(nil))
}

func TestConstraintField(t *testing.T) {
	for constraint, want := range map[string]string{
		"cases_margins_check":       "margins",
		"cases_date_recorded_check": "date_recorded",
		"cases_first_name_key":      "first_name",
		"unrelated":                 "unrelated",
	} {
		assert.Equal(t, want, ConstraintField("cases", constraint), constraint)
	}
}

func TestCheckViolation(t *testing.T) {
	pg := &pgconn.PgError{Code: pgCheckViolation, TableName: "cases", ConstraintName: "cases_color_check"}

	field, ok := CheckViolation(fmt.Errorf("insert: %w", pg), "cases")
	require.True(t, ok)
	assert.Equal(t, "color", field)

	_, ok = CheckViolation(pg, "other")
	assert.False(t, ok)
	_, ok = CheckViolation(&pgconn.PgError{Code: pgUniqueViolation}, "cases")
	assert.False(t, ok)
	_, ok = CheckViolation(stderrs.New("no pg"), "cases")
	assert.False(t, ok)
}

func TestFromPostgresWithField(t *testing.T) {
	assert.NoError(t, FromPostgresWithField(nil, "x"))

	notNull := &pgconn.PgError{Code: pgNotNullViolation, TableName: "cases", ColumnName: "last_name"}
	w := WireFrom(FromPostgresWithField(notNull, "create case failed"))
	assert.Equal(t, Wire{Code: ErrorCodeValidation, Message: "create case failed", Field: "last_name"}, w)

	check := &pgconn.PgError{Code: pgCheckViolation, TableName: "cases", ConstraintName: "cases_contacts_check"}
	assert.Equal(t, "contacts", WireFrom(FromPostgresWithField(check, "update case failed")).Field)

	timeout := &pgconn.PgError{Code: pgQueryCanceled}
	assert.True(t, IsCode(FromPostgresWithField(timeout, "list cases failed"), ErrorCodeUnavailable))

	assert.True(t, IsCode(FromPostgresWithField(&pgconn.PgError{Code: "XX000"}, "x"), ErrorCodeDB))
	assert.True(t, IsCode(FromPostgresWithField(stderrs.New("closed pool"), "x"), ErrorCodeDB))

	for code, want := range map[string]ErrorCode{
		pgUniqueViolation:  ErrorCodeConflict,
		pgInvalidDatetime:  ErrorCodeInvalidArgument,
		pgDeadlockDetected: ErrorCodeDB,
		pgReadOnlyTx:       ErrorCodeUnavailable,
	} {
		got, ok := DBErrorCode(&pgconn.PgError{Code: code})
		assert.True(t, ok)
		assert.Equal(t, want, got, code)
	}
	_, ok := DBErrorCode(stderrs.New("x"))
	assert.False(t, ok)
}
