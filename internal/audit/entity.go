// AngelaMos | 2026
// entity.go

package audit

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

type Record struct {
	ID         string    `db:"id"         json:"id"`
	ActorID    string    `db:"actor_id"   json:"actor_id"`
	Action     string    `db:"action"     json:"action"`
	Resource   string    `db:"resource"   json:"resource"`
	ResourceID string    `db:"resource_id" json:"resource_id"`
	Details    Details   `db:"details"    json:"details"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Details is a free-form payload stored as jsonb.
type Details map[string]any

func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

func (d *Details) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = nil
		return nil
	default:
		return fmt.Errorf("unsupported details type %T", src)
	}
}
