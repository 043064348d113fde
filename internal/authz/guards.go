// AngelaMos | 2026
// guards.go

package authz

import "net/http"

// Principal is the authenticated identity snapshot the guards evaluate.
type Principal struct {
	ID       string
	Username string
	Role     Role
}

// OrderState is the slice of order state the edit gate cares about.
type OrderState struct {
	ID            string
	Status        string
	PaymentStatus string
}

// Context carries what a guard chain needs: who is asking, and (for
// resource-conditioned guards) the pre-loaded target resource. It is built
// once per request and threaded explicitly, never stashed as untyped
// request fields.
type Context struct {
	Principal *Principal
	Order     *OrderState
}

const (
	orderStatusCompleted = "Completed"
	paymentStatusPaid    = "Paid"
)

func RequireRole(ac Context, roles ...Role) Decision {
	if ac.Principal == nil {
		return DenyUnauthenticated()
	}

	for _, role := range roles {
		if ac.Principal.Role == role {
			return Allow()
		}
	}

	return DenyInsufficient()
}

func RequirePermission(ac Context, token string) Decision {
	if ac.Principal == nil {
		return DenyUnauthenticated()
	}

	if !RoleHasPermission(ac.Principal.Role, token) {
		return DenyInsufficient()
	}

	return Allow()
}

// RequireAnyPermission passes when the principal holds at least one of the
// tokens. Used for routes shared by roles with different tokens, e.g.
// orders:update vs orders:update_limited.
func RequireAnyPermission(ac Context, tokens ...string) Decision {
	if ac.Principal == nil {
		return DenyUnauthenticated()
	}

	for _, token := range tokens {
		if RoleHasPermission(ac.Principal.Role, token) {
			return Allow()
		}
	}

	return DenyInsufficient()
}

// CanEditOrder gates order mutation on lifecycle state, but only for
// employees. Admin and super_admin pass on their orders:update permission
// without inspecting the order. An employee whose target order could not be
// loaded is denied with a 404 rather than evaluated against a ghost
// resource.
func CanEditOrder(ac Context) Decision {
	if ac.Principal == nil {
		return DenyUnauthenticated()
	}

	if ac.Principal.Role != RoleEmployee {
		if !RoleHasPermission(ac.Principal.Role, PermOrdersUpdate) {
			return DenyInsufficient()
		}
		return Allow()
	}

	if ac.Order == nil {
		return Deny(http.StatusNotFound, "ORDER_NOT_FOUND", "order not found")
	}

	if ac.Order.Status == orderStatusCompleted ||
		ac.Order.PaymentStatus == paymentStatusPaid {
		return Deny(
			http.StatusForbidden,
			"ORDER_EDIT_RESTRICTED",
			"Cannot edit completed or paid orders",
		)
	}

	return Allow()
}

// CanEditExpense is a blanket rule: employees never mutate expenses,
// regardless of who created them. Everyone else needs expenses:update.
func CanEditExpense(ac Context) Decision {
	if ac.Principal == nil {
		return DenyUnauthenticated()
	}

	if ac.Principal.Role == RoleEmployee {
		return Deny(
			http.StatusForbidden,
			"EXPENSE_EDIT_RESTRICTED",
			"Employees cannot modify expenses",
		)
	}

	if !RoleHasPermission(ac.Principal.Role, PermExpensesUpdate) {
		return DenyInsufficient()
	}

	return Allow()
}
