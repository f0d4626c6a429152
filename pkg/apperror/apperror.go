package apperror

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindDatabase
)

// Error is a classified failure carrying a user-facing message.
// Err holds the underlying cause and is never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Database wraps a storage failure. Errors that are already classified pass through.
func Database(err error) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	return &Error{Kind: KindDatabase, Message: "database error", Err: err}
}

// KindOf reports the kind of the first classified error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf maps an error to the HTTP status returned to clients.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the client-safe message for err, or fallback for
// database and unclassified errors.
func MessageOf(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindDatabase && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return fallback
}

// IsUniqueViolation checks for a PostgreSQL unique_violation (23505) whose
// constraint name contains constraint. An empty constraint matches any.
func IsUniqueViolation(err error, constraint string) bool {
	return hasPgCode(err, "23505", constraint)
}

// IsForeignKeyViolation checks for a PostgreSQL foreign_key_violation (23503).
func IsForeignKeyViolation(err error, constraint string) bool {
	return hasPgCode(err, "23503", constraint)
}

func hasPgCode(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraint))
}
