// CatalogHQ | 2026
// entity.go

package staff

import (
	"time"
)

// Role labels checked by route groups.
const (
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Record associates a user with a set of role labels. A user without a
// record is not staff.
type Record struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`

	Roles []string `db:"-"`
}
