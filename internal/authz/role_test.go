// AngelaMos | 2026
// role_test.go

package authz

import "testing"

func TestRoleHasPermission(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		role  Role
		token string
		want  bool
	}{
		{"employee can create orders", RoleEmployee, PermOrdersCreate, true},
		{"employee can read orders", RoleEmployee, PermOrdersRead, true},
		{"employee has limited update", RoleEmployee, PermOrdersUpdateLimited, true},
		{"employee cannot fully update", RoleEmployee, PermOrdersUpdate, false},
		{"employee cannot delete orders", RoleEmployee, PermOrdersDelete, false},
		{"employee cannot reject orders", RoleEmployee, PermOrdersReject, false},
		{"employee can create expenses", RoleEmployee, PermExpensesCreate, true},
		{"employee can read expenses", RoleEmployee, PermExpensesRead, true},
		{"employee cannot update expenses", RoleEmployee, PermExpensesUpdate, false},
		{"employee cannot delete expenses", RoleEmployee, PermExpensesDelete, false},
		{"employee has no analytics", RoleEmployee, PermAnalyticsRead, false},
		{"employee has no user management", RoleEmployee, PermUsersRead, false},

		{"admin can update orders", RoleAdmin, PermOrdersUpdate, true},
		{"admin can delete orders", RoleAdmin, PermOrdersDelete, true},
		{"admin can reject orders", RoleAdmin, PermOrdersReject, true},
		{"admin can update expenses", RoleAdmin, PermExpensesUpdate, true},
		{"admin can delete expenses", RoleAdmin, PermExpensesDelete, true},
		{"admin can read analytics", RoleAdmin, PermAnalyticsRead, true},
		{"admin can read dashboard", RoleAdmin, PermDashboardRead, true},
		{"admin lacks business settings", RoleAdmin, PermBusinessSettingsRead, false},
		{"admin lacks business settings update", RoleAdmin, PermBusinessSettingsUpdate, false},
		{"admin lacks user management", RoleAdmin, PermUsersCreate, false},
		{"admin lacks user deletion", RoleAdmin, PermUsersDelete, false},

		{"super_admin wildcard covers orders", RoleSuperAdmin, PermOrdersUpdate, true},
		{"super_admin wildcard covers expenses", RoleSuperAdmin, PermExpensesDelete, true},
		{"super_admin has business settings", RoleSuperAdmin, PermBusinessSettingsUpdate, true},
		{"super_admin has user management", RoleSuperAdmin, PermUsersDelete, true},
		{"super_admin wildcard covers unknown tokens", RoleSuperAdmin, "reports:export", true},

		{"unknown role has nothing", Role("manager"), PermOrdersRead, false},
		{"empty role has nothing", Role(""), PermOrdersRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RoleHasPermission(tt.role, tt.token); got != tt.want {
				t.Errorf("RoleHasPermission(%q, %q) = %v, want %v",
					tt.role, tt.token, got, tt.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	t.Parallel()

	valid := []Role{RoleEmployee, RoleAdmin, RoleSuperAdmin}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}

	invalid := []Role{"", "manager", "SUPER_ADMIN", "Admin"}
	for _, r := range invalid {
		if r.Valid() {
			t.Errorf("expected %q to be invalid", r)
		}
	}
}
