// AngelaMos | 2026
// repository.go

package intake

import (
	"context"
	"fmt"

	"github.com/jdstudio/backoffice/internal/core"
)

type Repository interface {
	CreateMessage(ctx context.Context, message *Message) error
	ListMessages(ctx context.Context) ([]Message, error)
	UpdateMessageStatus(ctx context.Context, id, status string) error
	CountMessagesByStatus(ctx context.Context, status string) (int64, error)

	CreateQuote(ctx context.Context, quote *Quote) error
	ListQuotes(ctx context.Context) ([]Quote, error)
	UpdateQuoteStatus(ctx context.Context, id, status string) error
	CountQuotesByStatus(ctx context.Context, status string) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) CreateMessage(
	ctx context.Context,
	message *Message,
) error {
	query := `
		INSERT INTO messages (
			id, name, email, subject, message, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		message.ID,
		message.Name,
		message.Email,
		message.Subject,
		message.Message,
		message.Status,
	).Scan(&message.CreatedAt, &message.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	return nil
}

func (r *repository) ListMessages(ctx context.Context) ([]Message, error) {
	query := `
		SELECT id, name, email, subject, message, status,
		       created_at, updated_at
		FROM messages
		ORDER BY created_at DESC
		LIMIT 50`

	messages := []Message{}
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return messages, nil
}

func (r *repository) UpdateMessageStatus(
	ctx context.Context,
	id, status string,
) error {
	return r.updateStatus(ctx, "messages", id, status)
}

func (r *repository) CountMessagesByStatus(
	ctx context.Context,
	status string,
) (int64, error) {
	return r.countByStatus(ctx, "messages", status)
}

func (r *repository) CreateQuote(ctx context.Context, quote *Quote) error {
	query := `
		INSERT INTO quotes (
			id, name, email, company, project_type, budget,
			timeline, details, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		quote.ID,
		quote.Name,
		quote.Email,
		quote.Company,
		quote.ProjectType,
		quote.Budget,
		quote.Timeline,
		quote.Details,
		quote.Status,
	).Scan(&quote.CreatedAt, &quote.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create quote: %w", err)
	}

	return nil
}

func (r *repository) ListQuotes(ctx context.Context) ([]Quote, error) {
	query := `
		SELECT id, name, email, company, project_type, budget,
		       timeline, details, status, created_at, updated_at
		FROM quotes
		ORDER BY created_at DESC
		LIMIT 50`

	quotes := []Quote{}
	if err := r.db.SelectContext(ctx, &quotes, query); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	return quotes, nil
}

func (r *repository) UpdateQuoteStatus(
	ctx context.Context,
	id, status string,
) error {
	return r.updateStatus(ctx, "quotes", id, status)
}

func (r *repository) CountQuotesByStatus(
	ctx context.Context,
	status string,
) (int64, error) {
	return r.countByStatus(ctx, "quotes", status)
}

func (r *repository) updateStatus(
	ctx context.Context,
	table, id, status string,
) error {
	query := fmt.Sprintf(
		`UPDATE %s SET status = $2, updated_at = NOW() WHERE id = $1`,
		table,
	)

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update %s status: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s status: %w", table, err)
	}
	if rows == 0 {
		return fmt.Errorf("update %s status: %w", table, core.ErrNotFound)
	}

	return nil
}

func (r *repository) countByStatus(
	ctx context.Context,
	table, status string,
) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE status = $1`, table)

	var count int64
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}

	return count, nil
}
