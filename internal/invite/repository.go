// AngelaMos | 2026
// repository.go

package invite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdstudio/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, invite *Invite) error
	GetByID(ctx context.Context, id string) (*Invite, error)
	GetPendingByTokenDigest(
		ctx context.Context,
		digest string,
	) (*Invite, error)
	HasPendingForEmail(ctx context.Context, email string) (bool, error)
	MarkExpired(ctx context.Context, id string) error
	MarkAccepted(ctx context.Context, id, acceptedBy string) error
	ForceExpire(ctx context.Context, id string) error
	List(ctx context.Context) ([]Invite, error)
	CountPending(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const inviteColumns = `
	id, email, role, invited_by, token_digest, status,
	expires_at, accepted_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, invite *Invite) error {
	query := `
		INSERT INTO invites (
			id, email, role, invited_by, token_digest, status, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		invite.ID,
		invite.Email,
		invite.Role,
		invite.InvitedBy,
		invite.TokenDigest,
		invite.Status,
		invite.ExpiresAt,
	).Scan(&invite.CreatedAt, &invite.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create invite: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create invite: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Invite, error) {
	query := `SELECT ` + inviteColumns + ` FROM invites WHERE id = $1`

	var invite Invite
	err := r.db.GetContext(ctx, &invite, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invite: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get invite: %w", err)
	}

	return &invite, nil
}

func (r *repository) GetPendingByTokenDigest(
	ctx context.Context,
	digest string,
) (*Invite, error) {
	query := `SELECT ` + inviteColumns + `
		FROM invites
		WHERE token_digest = $1 AND status = $2`

	var invite Invite
	err := r.db.GetContext(ctx, &invite, query, digest, StatusPending)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get invite by token: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get invite by token: %w", err)
	}

	return &invite, nil
}

func (r *repository) HasPendingForEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invites WHERE email = $1 AND status = $2
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email, StatusPending)
	if err != nil {
		return false, fmt.Errorf("check pending invite: %w", err)
	}

	return exists, nil
}

// MarkExpired transitions a pending invite to expired. It is a no-op
// when the invite already left the pending state, which keeps lazy
// expiry idempotent.
func (r *repository) MarkExpired(ctx context.Context, id string) error {
	query := `
		UPDATE invites SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3`

	_, err := r.db.ExecContext(ctx, query, id, StatusExpired, StatusPending)
	if err != nil {
		return fmt.Errorf("mark invite expired: %w", err)
	}

	return nil
}

func (r *repository) MarkAccepted(
	ctx context.Context,
	id, acceptedBy string,
) error {
	query := `
		UPDATE invites SET status = $2, accepted_by = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4`

	result, err := r.db.ExecContext(ctx, query,
		id, StatusAccepted, acceptedBy, StatusPending)
	if err != nil {
		return fmt.Errorf("mark invite accepted: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark invite accepted: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("mark invite accepted: %w", core.ErrNotFound)
	}

	return nil
}

// ForceExpire is the administrative override: it expires the invite
// regardless of its current status.
func (r *repository) ForceExpire(ctx context.Context, id string) error {
	query := `UPDATE invites SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, StatusExpired)
	if err != nil {
		return fmt.Errorf("force expire invite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("force expire invite: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("force expire invite: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Invite, error) {
	query := `SELECT ` + inviteColumns + `
		FROM invites
		ORDER BY created_at DESC
		LIMIT 50`

	invites := []Invite{}
	if err := r.db.SelectContext(ctx, &invites, query); err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}

	return invites, nil
}

func (r *repository) CountPending(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM invites WHERE status = $1`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, StatusPending); err != nil {
		return 0, fmt.Errorf("count pending invites: %w", err)
	}

	return count, nil
}
