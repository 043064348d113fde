// AngelaMos | 2026
// decision.go

package authz

import "net/http"

// Decision is the explicit outcome of a guard. Guards never write HTTP
// responses or panic for expected denies; the middleware layer translates a
// deny into the JSON envelope.
type Decision struct {
	Allowed bool
	Status  int
	Code    string
	Message string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(status int, code, message string) Decision {
	return Decision{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

func DenyUnauthenticated() Decision {
	return Deny(
		http.StatusUnauthorized,
		"AUTHENTICATION_REQUIRED",
		"authentication required",
	)
}

func DenyInsufficient() Decision {
	return Deny(
		http.StatusForbidden,
		"INSUFFICIENT_PERMISSIONS",
		"insufficient permissions",
	)
}
