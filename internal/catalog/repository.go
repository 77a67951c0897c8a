// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdstudio/backoffice/internal/core"
)

type Repository interface {
	Insert(ctx context.Context, service *Service) error
	GetBySlug(ctx context.Context, slug string) (*Service, error)
	Exists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, service *Service) error
	Delete(ctx context.Context, slug string) error
	List(ctx context.Context) ([]Service, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const serviceColumns = `
	slug, icon, title, tagline, description, features, deliverables,
	investment, display_order, created_at, updated_at`

func (r *repository) Insert(ctx context.Context, service *Service) error {
	query := `
		INSERT INTO services (
			slug, icon, title, tagline, description, features,
			deliverables, investment, display_order
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		service.Slug,
		service.Icon,
		service.Title,
		service.Tagline,
		service.Description,
		service.Features,
		service.Deliverables,
		service.Investment,
		service.Order,
	).Scan(&service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert service: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert service: %w", err)
	}

	return nil
}

func (r *repository) GetBySlug(
	ctx context.Context,
	slug string,
) (*Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE slug = $1`

	var service Service
	err := r.db.GetContext(ctx, &service, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get service: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}

	return &service, nil
}

func (r *repository) Exists(ctx context.Context, slug string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM services WHERE slug = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, slug); err != nil {
		return false, fmt.Errorf("check service exists: %w", err)
	}

	return exists, nil
}

func (r *repository) Update(ctx context.Context, service *Service) error {
	query := `
		UPDATE services SET
			icon = $2,
			title = $3,
			tagline = $4,
			description = $5,
			features = $6,
			deliverables = $7,
			investment = $8,
			display_order = $9,
			updated_at = NOW()
		WHERE slug = $1`

	result, err := r.db.ExecContext(ctx, query,
		service.Slug,
		service.Icon,
		service.Title,
		service.Tagline,
		service.Description,
		service.Features,
		service.Deliverables,
		service.Investment,
		service.Order,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update service: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, slug string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM services WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete service: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Service, error) {
	query := `SELECT ` + serviceColumns + `
		FROM services
		ORDER BY display_order ASC, slug ASC`

	services := []Service{}
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}

	return services, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM services`)
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}

	return count, nil
}
