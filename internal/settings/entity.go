// AngelaMos | 2026
// entity.go

package settings

import "time"

// BusinessSettings is a singleton row, lazily created on first read.
type BusinessSettings struct {
	ID           string    `db:"id"`
	BusinessName string    `db:"business_name"`
	Address      *string   `db:"address"`
	Phone        *string   `db:"phone"`
	LogoPath     *string   `db:"logo_path"`
	FaviconPath  *string   `db:"favicon_path"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const defaultBusinessName = "My Laundry Business"
