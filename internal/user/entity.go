// AngelaMos | 2026
// entity.go

package user

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	RoleFounder  = "founder"
	RoleAdmin    = "admin"
	RolePartner  = "partner"
	RoleEmployee = "employee"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// AssignableRole reports whether a role may be granted through an
// invite or a role update. The founder role is never grantable.
func AssignableRole(role string) bool {
	switch role {
	case RoleAdmin, RolePartner, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	UID              string      `db:"uid"`
	Email            string      `db:"email"`
	DisplayName      string      `db:"display_name"`
	Role             string      `db:"role"`
	Status           string      `db:"status"`
	AssignedProjects StringSlice `db:"assigned_projects"`
	Title            *string     `db:"title"`
	Bio              *string     `db:"bio"`
	Phone            *string     `db:"phone"`
	PhotoURL         *string     `db:"photo_url"`
	Social           Social      `db:"social"`
	Namecard         Namecard    `db:"namecard"`
	CreatedAt        time.Time   `db:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at"`
}

func (u *User) IsFounder() bool {
	return u.Role == RoleFounder
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

type Social struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Namecard holds the public digital business card settings. Username
// is the public URL slug; an empty username means the card is not
// published.
type Namecard struct {
	Username    string `json:"username,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	ShowEmail   bool   `json:"show_email"`
	ShowPhone   bool   `json:"show_phone"`
	AccentColor string `json:"accent_color,omitempty"`
}

// StringSlice maps a jsonb column to a []string.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal([]string(s))
}

func (s *StringSlice) Scan(src any) error {
	return scanJSON(src, s)
}

func (s Social) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *Social) Scan(src any) error {
	return scanJSON(src, s)
}

func (n Namecard) Value() (driver.Value, error) {
	return json.Marshal(n)
}

func (n *Namecard) Scan(src any) error {
	return scanJSON(src, n)
}

func scanJSON(src, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}
