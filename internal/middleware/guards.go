// AngelaMos | 2026
// guards.go

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/washtrack/washtrack/internal/authz"
	"github.com/washtrack/washtrack/internal/core"
)

// Guard adapts an authz decision function into middleware. A panic inside
// the guard is an internal fault, not a deny, and is reported as 500
// AUTHORIZATION_ERROR with the guard's failure message.
func Guard(
	fn func(authz.Context) authz.Decision,
	failMessage string,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision, fault := evaluate(fn, AuthContextFrom(r.Context()))
			if fault != nil {
				slog.Error("guard fault", "error", fault, "path", r.URL.Path)
				core.JSONError(w, &core.AppError{
					Status:  http.StatusInternalServerError,
					Code:    "AUTHORIZATION_ERROR",
					Message: failMessage,
				})
				return
			}

			if !decision.Allowed {
				core.JSONError(w, &core.AppError{
					Status:  decision.Status,
					Code:    decision.Code,
					Message: decision.Message,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func evaluate(
	fn func(authz.Context) authz.Decision,
	ac authz.Context,
) (decision authz.Decision, fault any) {
	defer func() {
		if p := recover(); p != nil {
			fault = p
		}
	}()
	return fn(ac), nil
}

func RequireRole(roles ...authz.Role) func(http.Handler) http.Handler {
	return Guard(func(ac authz.Context) authz.Decision {
		return authz.RequireRole(ac, roles...)
	}, "Authorization check failed")
}

func RequirePermission(token string) func(http.Handler) http.Handler {
	return Guard(func(ac authz.Context) authz.Decision {
		return authz.RequirePermission(ac, token)
	}, "Permission check failed")
}

func RequireAnyPermission(tokens ...string) func(http.Handler) http.Handler {
	return Guard(func(ac authz.Context) authz.Decision {
		return authz.RequireAnyPermission(ac, tokens...)
	}, "Permission check failed")
}

func CanEditOrder() func(http.Handler) http.Handler {
	return Guard(authz.CanEditOrder, "Authorization check failed")
}

func CanEditExpense() func(http.Handler) http.Handler {
	return Guard(authz.CanEditExpense, "Authorization check failed")
}
