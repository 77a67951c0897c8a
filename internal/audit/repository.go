// AngelaMos | 2026
// repository.go

package audit

import (
	"context"
	"fmt"

	"github.com/jdstudio/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context, limit int) ([]Record, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO audit_logs (id, actor_id, action, resource, resource_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &record.CreatedAt, query,
		record.ID,
		record.ActorID,
		record.Action,
		record.Resource,
		record.ResourceID,
		record.Details,
	)
	if err != nil {
		return fmt.Errorf("create audit record: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context, limit int) ([]Record, error) {
	query := `
		SELECT id, actor_id, action, resource, resource_id, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1`

	var records []Record
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}

	return records, nil
}
