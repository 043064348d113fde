// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyDBError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unique violation",
			err:        &pgconn.PgError{Code: "23505"},
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_ENTRY",
		},
		{
			name:       "foreign key violation",
			err:        &pgconn.PgError{Code: "23503"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "FOREIGN_KEY_VIOLATION",
		},
		{
			name:       "not null violation",
			err:        &pgconn.PgError{Code: "23502"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "NOT_NULL_VIOLATION",
		},
		{
			name:       "connection failure class",
			err:        &pgconn.PgError{Code: "08006"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "DATABASE_ERROR",
		},
		{
			name:       "wrapped pg error",
			err:        fmt.Errorf("insert order: %w", &pgconn.PgError{Code: "23505"}),
			wantStatus: http.StatusConflict,
			wantCode:   "DUPLICATE_ENTRY",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "DATABASE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appErr := ClassifyDBError(tt.err)
			if appErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", appErr.Status, tt.wantStatus)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestClassifyDBErrorPassesThroughAppErrors(t *testing.T) {
	t.Parallel()

	orig := NotFoundError("order")
	got := ClassifyDBError(fmt.Errorf("get order: %w", orig))

	if got.Code != "ORDER_NOT_FOUND" || got.Status != http.StatusNotFound {
		t.Errorf("got %d %s, want 404 ORDER_NOT_FOUND", got.Status, got.Code)
	}
}

func TestNotFoundErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		resource string
		wantCode string
	}{
		{"order", "ORDER_NOT_FOUND"},
		{"expense", "EXPENSE_NOT_FOUND"},
		{"user", "USER_NOT_FOUND"},
		{"business_settings", "BUSINESS_SETTINGS_NOT_FOUND"},
	}

	for _, tt := range tests {
		appErr := NotFoundError(tt.resource)
		if appErr.Code != tt.wantCode {
			t.Errorf("NotFoundError(%q).Code = %q, want %q",
				tt.resource, appErr.Code, tt.wantCode)
		}
		if appErr.Status != http.StatusNotFound {
			t.Errorf("NotFoundError(%q).Status = %d, want 404",
				tt.resource, appErr.Status)
		}
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()

	if !IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}) {
		t.Error("pg unique violation not recognized")
	}
	if !IsDuplicateKeyError(fmt.Errorf("create user: %w", ErrDuplicateKey)) {
		t.Error("wrapped sentinel not recognized")
	}
	if IsDuplicateKeyError(errors.New("boom")) {
		t.Error("unrelated error misclassified as duplicate")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	appErr := NewAppError(inner, "wrapped", http.StatusBadRequest, "VALIDATION_ERROR")

	if !errors.Is(appErr, inner) {
		t.Error("AppError does not unwrap to its cause")
	}
}
