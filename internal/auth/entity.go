// CatalogHQ | 2026
// entity.go

package auth

import (
	"time"
)

// AccessToken is an opaque bearer credential bound to a user. The
// plaintext token is never stored; rows are deleted on logout.
type AccessToken struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (t *AccessToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
