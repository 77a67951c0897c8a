// AngelaMos | 2026
// entity.go

package intake

import (
	"time"
)

// Message statuses. A message only ever advances through
// administrative review, it is never deleted here.
const (
	MessageStatusNew       = "new"
	MessageStatusRead      = "read"
	MessageStatusResponded = "responded"
)

// Quote statuses.
const (
	QuoteStatusNew        = "new"
	QuoteStatusContacted  = "contacted"
	QuoteStatusInProgress = "in-progress"
	QuoteStatusClosed     = "closed"
)

type Message struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Subject   string    `db:"subject"`
	Message   string    `db:"message"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Quote struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Company     *string   `db:"company"`
	ProjectType string    `db:"project_type"`
	Budget      string    `db:"budget"`
	Timeline    string    `db:"timeline"`
	Details     string    `db:"details"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
