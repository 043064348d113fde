// AngelaMos | 2026
// role.go

package authz

// Role is an explicit permission set, not an ordinal. super_admin is not a
// strict superset of admin by rank: admin lacks business-settings and user
// management, which only super_admin carries.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Permission tokens are resource:action strings. PermAll grants everything.
const (
	PermAll = "*"

	PermOrdersCreate        = "orders:create"
	PermOrdersRead          = "orders:read"
	PermOrdersUpdate        = "orders:update"
	PermOrdersUpdateLimited = "orders:update_limited"
	PermOrdersDelete        = "orders:delete"
	PermOrdersReject        = "orders:reject"

	PermExpensesCreate = "expenses:create"
	PermExpensesRead   = "expenses:read"
	PermExpensesUpdate = "expenses:update"
	PermExpensesDelete = "expenses:delete"

	PermAnalyticsRead = "analytics:read"
	PermDashboardRead = "dashboard:read"

	PermBusinessSettingsRead   = "business_settings:read"
	PermBusinessSettingsUpdate = "business_settings:update"

	PermUsersCreate = "users:create"
	PermUsersRead   = "users:read"
	PermUsersUpdate = "users:update"
	PermUsersDelete = "users:delete"
)

// rolePermissions is the single source of truth for authorization. The
// super_admin entries besides the wildcard are redundant and kept only for
// documentation.
var rolePermissions = map[Role]map[string]struct{}{
	RoleEmployee: permSet(
		PermOrdersCreate,
		PermOrdersRead,
		PermOrdersUpdateLimited,
		PermExpensesCreate,
		PermExpensesRead,
	),
	RoleAdmin: permSet(
		PermOrdersCreate,
		PermOrdersRead,
		PermOrdersUpdate,
		PermOrdersDelete,
		PermOrdersReject,
		PermExpensesCreate,
		PermExpensesRead,
		PermExpensesUpdate,
		PermExpensesDelete,
		PermAnalyticsRead,
		PermDashboardRead,
	),
	RoleSuperAdmin: permSet(
		PermAll,
		PermOrdersReject,
		PermBusinessSettingsRead,
		PermBusinessSettingsUpdate,
		PermUsersCreate,
		PermUsersRead,
		PermUsersUpdate,
		PermUsersDelete,
	),
}

func permSet(tokens ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// RoleHasPermission reports whether the role's set contains the exact token
// or the wildcard. Unknown roles have an empty set.
func RoleHasPermission(role Role, token string) bool {
	set, ok := rolePermissions[role]
	if !ok {
		return false
	}
	if _, ok := set[token]; ok {
		return true
	}
	_, ok = set[PermAll]
	return ok
}
