// AngelaMos | 2026
// entity.go

package invite

import (
	"time"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusExpired  = "expired"
)

// Invite is a single-use, role-carrying invitation. Only the digest
// of the redemption token is persisted; the raw token leaves the
// system exactly once, at creation time.
type Invite struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	Role        string    `db:"role"`
	InvitedBy   string    `db:"invited_by"`
	TokenDigest string    `db:"token_digest"`
	Status      string    `db:"status"`
	ExpiresAt   time.Time `db:"expires_at"`
	AcceptedBy  *string   `db:"accepted_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (i *Invite) IsPending() bool {
	return i.Status == StatusPending
}

func (i *Invite) ExpiredAt(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
