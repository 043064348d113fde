// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Envelope is the wire shape of every JSON response.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
	Meta    *PageMeta  `json:"meta,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// exposeInternals controls whether 500 responses carry the underlying error
// text. Flipped off by the bootstrap in production.
var exposeInternals = true

func SetExposeInternals(expose bool) {
	exposeInternals = expose
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(env)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func OKMessage(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

func Paginated(w http.ResponseWriter, data any, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Meta: &PageMeta{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func BadRequest(w http.ResponseWriter, message string) {
	JSONError(w, ValidationError(message, nil))
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "authentication required"
	}
	JSONError(w, AuthenticationError("UNAUTHORIZED", message))
}

func Forbidden(w http.ResponseWriter, message string) {
	JSONError(w, AuthorizationError("INSUFFICIENT_PERMISSIONS", message))
}

func NotFound(w http.ResponseWriter, resource string) {
	JSONError(w, NotFoundError(resource))
}

func Conflict(w http.ResponseWriter, code, message string) {
	JSONError(w, ConflictError(code, message))
}

func InternalServerError(w http.ResponseWriter, err error) {
	if appErr, ok := AsAppError(err); ok {
		JSONError(w, appErr)
		return
	}
	slog.Error("unhandled error", "error", err)
	JSONError(w, ServerError(err))
}

// JSONError renders any error through the envelope. Non-AppError values are
// normalized to 500 SERVER_ERROR so no endpoint ever emits a bare 500.
func JSONError(w http.ResponseWriter, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = ServerError(err)
	}

	body := &ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}

	if appErr.Status >= http.StatusInternalServerError &&
		exposeInternals && appErr.Err != nil {
		body.Details = appErr.Err.Error()
	}

	writeJSON(w, appErr.Status, Envelope{Success: false, Error: body})
}

// FormatValidationError flattens validator.ValidationErrors into a single
// human-readable message.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, formatFieldError(fe))
	}
	return strings.Join(parts, "; ")
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be > %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
