// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin partner employee"`
}

type AssignProjectsRequest struct {
	Projects []string `json:"projects" validate:"max=50,dive,min=1,max=100"`
}

type SocialInput struct {
	LinkedIn string `json:"linkedin" validate:"omitempty,url,max=255"`
	GitHub   string `json:"github"   validate:"omitempty,url,max=255"`
	Twitter  string `json:"twitter"  validate:"omitempty,url,max=255"`
	Website  string `json:"website"  validate:"omitempty,url,max=255"`
}

type NamecardInput struct {
	Username    string `json:"username"     validate:"omitempty,slug,min=3,max=50"`
	Tagline     string `json:"tagline"      validate:"omitempty,max=120"`
	ShowEmail   bool   `json:"show_email"`
	ShowPhone   bool   `json:"show_phone"`
	AccentColor string `json:"accent_color" validate:"omitempty,hexcolor"`
}

type UpdateProfileRequest struct {
	DisplayName string        `json:"display_name" validate:"required,min=1,max=100"`
	Title       string        `json:"title"        validate:"omitempty,max=100"`
	Bio         string        `json:"bio"          validate:"omitempty,max=1000"`
	Phone       string        `json:"phone"        validate:"omitempty,max=30"`
	PhotoURL    string        `json:"photo_url"    validate:"omitempty,url,max=500"`
	Social      SocialInput   `json:"social"`
	Namecard    NamecardInput `json:"namecard"`
}

type UserResponse struct {
	UID              string    `json:"uid"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	AssignedProjects []string  `json:"assigned_projects"`
	Title            *string   `json:"title,omitempty"`
	Bio              *string   `json:"bio,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	PhotoURL         *string   `json:"photo_url,omitempty"`
	Social           Social    `json:"social"`
	Namecard         Namecard  `json:"namecard"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NamecardResponse is the public card view. Email and phone are only
// populated when the owner opted in.
type NamecardResponse struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Title       *string `json:"title,omitempty"`
	Tagline     string  `json:"tagline,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Social      Social  `json:"social"`
	AccentColor string  `json:"accent_color,omitempty"`
}

func ToResponse(u *User) UserResponse {
	projects := u.AssignedProjects
	if projects == nil {
		projects = StringSlice{}
	}

	return UserResponse{
		UID:              u.UID,
		Email:            u.Email,
		DisplayName:      u.DisplayName,
		Role:             u.Role,
		Status:           u.Status,
		AssignedProjects: projects,
		Title:            u.Title,
		Bio:              u.Bio,
		Phone:            u.Phone,
		PhotoURL:         u.PhotoURL,
		Social:           u.Social,
		Namecard:         u.Namecard,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func ToNamecardResponse(u *User) NamecardResponse {
	resp := NamecardResponse{
		Username:    u.Namecard.Username,
		DisplayName: u.DisplayName,
		Title:       u.Title,
		Tagline:     u.Namecard.Tagline,
		Bio:         u.Bio,
		PhotoURL:    u.PhotoURL,
		Social:      u.Social,
		AccentColor: u.Namecard.AccentColor,
	}

	if u.Namecard.ShowEmail {
		resp.Email = u.Email
	}
	if u.Namecard.ShowPhone && u.Phone != nil {
		resp.Phone = *u.Phone
	}

	return resp
}
