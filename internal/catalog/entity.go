// AngelaMos | 2026
// entity.go

package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Service is a slug-keyed catalog entry for the public services
// pages. The slug is the primary key; renaming one is a delete-old,
// insert-new pair.
type Service struct {
	Slug         string     `db:"slug"`
	Icon         string     `db:"icon"`
	Title        string     `db:"title"`
	Tagline      string     `db:"tagline"`
	Description  string     `db:"description"`
	Features     StringList `db:"features"`
	Deliverables StringList `db:"deliverables"`
	Investment   Investment `db:"investment"`
	Order        int        `db:"display_order"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

type Investment struct {
	Starting string `json:"starting"`
	Timeline string `json:"timeline"`
}

type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal([]string(s))
}

func (s *StringList) Scan(src any) error {
	return scanJSON(src, s)
}

func (i Investment) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *Investment) Scan(src any) error {
	return scanJSON(src, i)
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
