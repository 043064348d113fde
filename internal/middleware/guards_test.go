// AngelaMos | 2026
// guards_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/washtrack/washtrack/internal/authz"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
}

func requestWith(principal *authz.Principal, order *authz.OrderState) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/orders/1", nil)
	ctx := r.Context()
	if principal != nil {
		ctx = WithPrincipal(ctx, principal)
	}
	if order != nil {
		ctx = WithOrderState(ctx, order)
	}
	return r.WithContext(ctx)
}

func TestCanEditOrderGuard(t *testing.T) {
	t.Parallel()

	employee := &authz.Principal{ID: "e1", Username: "emp", Role: authz.RoleEmployee}
	admin := &authz.Principal{ID: "a1", Username: "adm", Role: authz.RoleAdmin}

	tests := []struct {
		name       string
		principal  *authz.Principal
		order      *authz.OrderState
		wantStatus int
		wantBody   string
	}{
		{
			name:       "employee edits open order",
			principal:  employee,
			order:      &authz.OrderState{ID: "1", Status: "Pending", PaymentStatus: "Unpaid"},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "employee blocked on completed order",
			principal:  employee,
			order:      &authz.OrderState{ID: "1", Status: "Completed", PaymentStatus: "Unpaid"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "employee blocked on paid order",
			principal:  employee,
			order:      &authz.OrderState{ID: "1", Status: "Pending", PaymentStatus: "Paid"},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "employee with missing order",
			principal:  employee,
			order:      nil,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "admin edits completed paid order",
			principal:  admin,
			order:      &authz.OrderState{ID: "1", Status: "Completed", PaymentStatus: "Paid"},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
		},
		{
			name:       "anonymous caller",
			principal:  nil,
			order:      &authz.OrderState{ID: "1", Status: "Pending", PaymentStatus: "Unpaid"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			CanEditOrder()(okHandler()).ServeHTTP(w, requestWith(tt.principal, tt.order))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)",
					w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestCanEditExpenseGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		principal  *authz.Principal
		wantStatus int
	}{
		{
			name:       "employee always denied",
			principal:  &authz.Principal{ID: "e1", Role: authz.RoleEmployee},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin allowed",
			principal:  &authz.Principal{ID: "a1", Role: authz.RoleAdmin},
			wantStatus: http.StatusOK,
		},
		{
			name:       "super admin allowed",
			principal:  &authz.Principal{ID: "s1", Role: authz.RoleSuperAdmin},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			CanEditExpense()(okHandler()).ServeHTTP(w, requestWith(tt.principal, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)",
					w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

// A guard that panics must surface as a 500, never as a silent allow.
func TestGuardPanicBecomesServerError(t *testing.T) {
	t.Parallel()

	panicking := Guard(func(authz.Context) authz.Decision {
		panic("boom")
	}, "Permission check failed")

	w := httptest.NewRecorder()
	r := requestWith(&authz.Principal{ID: "a1", Role: authz.RoleAdmin}, nil)
	panicking(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := w.Body.String(); body == "ok" {
		t.Error("handler ran despite guard panic")
	}
}

func TestRequirePermissionGuard(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := requestWith(&authz.Principal{ID: "e1", Role: authz.RoleEmployee}, nil)
	RequirePermission(authz.PermAnalyticsRead)(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	w = httptest.NewRecorder()
	r = requestWith(&authz.Principal{ID: "s1", Role: authz.RoleSuperAdmin}, nil)
	RequirePermission(authz.PermAnalyticsRead)(okHandler()).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 via wildcard", w.Code)
	}
}
