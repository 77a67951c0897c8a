// AngelaMos | 2026
// entity.go

package identity

import (
	"time"
)

// Identity is a credential record. Profile data lives with the user
// package; this table only answers "can this email sign in, and as
// which uid".
type Identity struct {
	UID          string    `db:"uid"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Disabled     bool      `db:"disabled"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
