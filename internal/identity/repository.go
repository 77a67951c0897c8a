// AngelaMos | 2026
// repository.go

package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdstudio/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, identity *Identity) error
	GetByUID(ctx context.Context, uid string) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	SetDisabled(ctx context.Context, uid string, disabled bool) error
	UpdatePassword(ctx context.Context, uid, passwordHash string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, identity *Identity) error {
	query := `
		INSERT INTO identities (uid, email, password_hash, disabled)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, identity, query,
		identity.UID,
		identity.Email,
		identity.PasswordHash,
		identity.Disabled,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create identity: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create identity: %w", err)
	}

	return nil
}

func (r *repository) GetByUID(
	ctx context.Context,
	uid string,
) (*Identity, error) {
	query := `
		SELECT uid, email, password_hash, disabled, created_at, updated_at
		FROM identities
		WHERE uid = $1`

	var identity Identity
	err := r.db.GetContext(ctx, &identity, query, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get identity: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}

	return &identity, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Identity, error) {
	query := `
		SELECT uid, email, password_hash, disabled, created_at, updated_at
		FROM identities
		WHERE email = $1`

	var identity Identity
	err := r.db.GetContext(ctx, &identity, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get identity by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get identity by email: %w", err)
	}

	return &identity, nil
}

func (r *repository) SetDisabled(
	ctx context.Context,
	uid string,
	disabled bool,
) error {
	query := `
		UPDATE identities
		SET disabled = $2, updated_at = NOW()
		WHERE uid = $1`

	result, err := r.db.ExecContext(ctx, query, uid, disabled)
	if err != nil {
		return fmt.Errorf("set identity disabled: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set identity disabled: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("set identity disabled: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	uid, passwordHash string,
) error {
	query := `
		UPDATE identities
		SET password_hash = $2, updated_at = NOW()
		WHERE uid = $1`

	result, err := r.db.ExecContext(ctx, query, uid, passwordHash)
	if err != nil {
		return fmt.Errorf("update identity password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update identity password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update identity password: %w", core.ErrNotFound)
	}

	return nil
}

