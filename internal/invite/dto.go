// AngelaMos | 2026
// dto.go

package invite

import (
	"time"
)

type CreateInviteRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role"  validate:"required,oneof=admin partner employee"`
}

type CompleteInviteRequest struct {
	Token       string `json:"token"        validate:"required,len=64,hexadecimal"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
	Password    string `json:"password"     validate:"required,min=8,max=128"`
}

type InviteResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	InvitedBy  string    `json:"invited_by"`
	Status     string    `json:"status"`
	ExpiresAt  time.Time `json:"expires_at"`
	AcceptedBy *string   `json:"accepted_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatedInviteResponse carries the raw token exactly once, back to
// the inviter, so the redemption link can be delivered out of band.
type CreatedInviteResponse struct {
	InviteResponse
	Token     string `json:"token"`
	AcceptURL string `json:"accept_url,omitempty"`
}

// InvitePreview is the unauthenticated accept-page view of a pending
// invite. It never exposes the inviter or identifiers.
type InvitePreview struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ToResponse(i *Invite) InviteResponse {
	return InviteResponse{
		ID:         i.ID,
		Email:      i.Email,
		Role:       i.Role,
		InvitedBy:  i.InvitedBy,
		Status:     i.Status,
		ExpiresAt:  i.ExpiresAt,
		AcceptedBy: i.AcceptedBy,
		CreatedAt:  i.CreatedAt,
	}
}
