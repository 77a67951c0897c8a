// AngelaMos | 2026
// dto.go

package intake

import (
	"time"
)

type ContactRequest struct {
	Name    string `json:"name"    validate:"required,min=2,max=100"`
	Email   string `json:"email"   validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

type QuoteRequest struct {
	Name        string `json:"name"         validate:"required,min=2,max=100"`
	Email       string `json:"email"        validate:"required,email,max=255"`
	Company     string `json:"company"      validate:"omitempty,max=100"`
	ProjectType string `json:"project_type" validate:"required,oneof=web saas mobile ai other"`
	Budget      string `json:"budget"       validate:"required,min=1,max=100"`
	Timeline    string `json:"timeline"     validate:"required,min=1,max=100"`
	Details     string `json:"details"      validate:"required,min=10,max=5000"`
}

type UpdateMessageStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new read responded"`
}

type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted in-progress closed"`
}

type MessageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuoteResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     *string   `json:"company,omitempty"`
	ProjectType string    `json:"project_type"`
	Budget      string    `json:"budget"`
	Timeline    string    `json:"timeline"`
	Details     string    `json:"details"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToQuoteResponse(q *Quote) QuoteResponse {
	return QuoteResponse{
		ID:          q.ID,
		Name:        q.Name,
		Email:       q.Email,
		Company:     q.Company,
		ProjectType: q.ProjectType,
		Budget:      q.Budget,
		Timeline:    q.Timeline,
		Details:     q.Details,
		Status:      q.Status,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}
