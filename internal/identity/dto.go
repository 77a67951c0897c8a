// AngelaMos | 2026
// dto.go

package identity

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	UID       string    `json:"uid"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
