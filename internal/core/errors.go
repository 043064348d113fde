// AngelaMos | 2026
// errors.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// AppError is the one error shape the transport layer knows how to render.
// Guards and services return it for every expected deny/validation outcome
// so no expected condition ever surfaces as a bare 500.
type AppError struct {
	Status  int
	Code    string
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(err error, message string, status int, code string) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ValidationError(message string, details any) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: message,
		Details: details,
		Err:     ErrInvalidInput,
	}
}

// NotFoundError builds a 404 whose code is derived from the resource name,
// e.g. "order" -> ORDER_NOT_FOUND.
func NotFoundError(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    strings.ToUpper(resource) + "_NOT_FOUND",
		Message: resource + " not found",
		Err:     ErrNotFound,
	}
}

func AuthenticationError(code, message string) *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    code,
		Message: message,
		Err:     ErrUnauthorized,
	}
}

func AuthorizationError(code, message string) *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    code,
		Message: message,
		Err:     ErrForbidden,
	}
}

func ConflictError(code, message string) *AppError {
	return &AppError{
		Status:  http.StatusConflict,
		Code:    code,
		Message: message,
		Err:     ErrDuplicateKey,
	}
}

func FileUploadError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "FILE_UPLOAD_ERROR",
		Message: message,
	}
}

func ServerError(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "SERVER_ERROR",
		Message: "an unexpected error occurred",
		Err:     err,
	}
}

// Postgres SQLSTATE classes the persistence port is classified against.
const (
	pgUniqueViolation  = "23505"
	pgFKViolation      = "23503"
	pgNotNullViolation = "23502"
)

// ClassifyDBError re-wraps a persistence failure with a stable code and a
// client-safe message. Recognized domain errors pass through unchanged.
func ClassifyDBError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &AppError{
				Status:  http.StatusConflict,
				Code:    "DUPLICATE_ENTRY",
				Message: "duplicate entry",
				Err:     err,
			}
		case pgFKViolation:
			return &AppError{
				Status:  http.StatusBadRequest,
				Code:    "FOREIGN_KEY_VIOLATION",
				Message: "referenced record not found",
				Err:     err,
			}
		case pgNotNullViolation:
			return &AppError{
				Status:  http.StatusBadRequest,
				Code:    "NOT_NULL_VIOLATION",
				Message: "required field missing",
				Err:     err,
			}
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return &AppError{
				Status:  http.StatusInternalServerError,
				Code:    "DATABASE_ERROR",
				Message: "database connection failed",
				Err:     err,
			}
		}
	}

	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "DATABASE_ERROR",
		Message: "database operation failed",
		Err:     err,
	}
}

func IsDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return errors.Is(err, ErrDuplicateKey)
}
