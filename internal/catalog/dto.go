// AngelaMos | 2026
// dto.go

package catalog

import (
	"time"
)

type InvestmentInput struct {
	Starting string `json:"starting" validate:"required,min=1,max=100"`
	Timeline string `json:"timeline" validate:"required,min=1,max=100"`
}

type ServiceRequest struct {
	Slug         string          `json:"slug"         validate:"required,slug,max=100"`
	Icon         string          `json:"icon"         validate:"required,min=1,max=50"`
	Title        string          `json:"title"        validate:"required,min=1,max=100"`
	Tagline      string          `json:"tagline"      validate:"required,min=1,max=200"`
	Description  string          `json:"description"  validate:"required,min=1,max=1000"`
	Features     []string        `json:"features"     validate:"required,min=1,max=10,dive,min=1,max=200"`
	Deliverables []string        `json:"deliverables" validate:"required,min=1,max=10,dive,min=1,max=200"`
	Investment   InvestmentInput `json:"investment"`
	Order        int             `json:"order"        validate:"required,gt=0"`
}

type ServiceResponse struct {
	Slug         string     `json:"slug"`
	Icon         string     `json:"icon"`
	Title        string     `json:"title"`
	Tagline      string     `json:"tagline"`
	Description  string     `json:"description"`
	Features     []string   `json:"features"`
	Deliverables []string   `json:"deliverables"`
	Investment   Investment `json:"investment"`
	Order        int        `json:"order"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (r ServiceRequest) toEntity() *Service {
	return &Service{
		Slug:         r.Slug,
		Icon:         r.Icon,
		Title:        r.Title,
		Tagline:      r.Tagline,
		Description:  r.Description,
		Features:     r.Features,
		Deliverables: r.Deliverables,
		Investment: Investment{
			Starting: r.Investment.Starting,
			Timeline: r.Investment.Timeline,
		},
		Order: r.Order,
	}
}

func ToResponse(s *Service) ServiceResponse {
	return ServiceResponse{
		Slug:         s.Slug,
		Icon:         s.Icon,
		Title:        s.Title,
		Tagline:      s.Tagline,
		Description:  s.Description,
		Features:     s.Features,
		Deliverables: s.Deliverables,
		Investment:   s.Investment,
		Order:        s.Order,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
