// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/washtrack/washtrack/internal/authz"
)

type User struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	PasswordHash string     `db:"password_hash"`
	Role         authz.Role `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *User) Principal() *authz.Principal {
	return &authz.Principal{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}

func (u *User) IsSuperAdmin() bool {
	return u.Role == authz.RoleSuperAdmin
}
