// AngelaMos | 2026
// handler_test.go

package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/middleware"
)

func newTestRouter(users ...*User) chi.Router {
	h := NewHandler(NewService(newFakeRepo(users...)))

	asSuperAdmin := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithPrincipal(r.Context(), &authz.Principal{
				ID:       "actor",
				Username: "root",
				Role:     authz.RoleSuperAdmin,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	h.RegisterRoutes(r, asSuperAdmin)
	return r
}

// Mutations without a payload still answer with the success envelope,
// not a bare 204, so clients can parse every response the same way.
func TestDeleteRespondsWithEnvelope(t *testing.T) {
	t.Parallel()

	router := newTestRouter(
		superAdmin("actor"),
		&User{ID: "u2", Username: "maria", Role: authz.RoleEmployee},
	)

	req := httptest.NewRequest(http.MethodDelete, "/users/u2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !env.Success {
		t.Error("success = false, want true")
	}
	if env.Message != "user deleted" {
		t.Errorf("message = %q, want %q", env.Message, "user deleted")
	}
}

func TestSetPasswordRespondsWithEnvelope(t *testing.T) {
	t.Parallel()

	router := newTestRouter(
		superAdmin("actor"),
		&User{ID: "u2", Username: "maria", Role: authz.RoleEmployee},
	)

	req := httptest.NewRequest(
		http.MethodPut,
		"/users/u2/password",
		strings.NewReader(`{"password":"a-new-password"}`),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s",
			rec.Code, http.StatusOK, rec.Body.String())
	}

	var env struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if !env.Success {
		t.Error("success = false, want true")
	}
}
