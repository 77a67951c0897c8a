// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jdstudio/backoffice/internal/audit"
	"github.com/jdstudio/backoffice/internal/core"
)

var ErrSlugTaken = errors.New("a service with this slug already exists")

type Manager struct {
	db          *sqlx.DB
	repo        Repository
	audit       audit.Recorder
	invalidator Invalidator
}

func NewManager(
	db *sqlx.DB,
	repo Repository,
	recorder audit.Recorder,
	invalidator Invalidator,
) *Manager {
	return &Manager{
		db:          db,
		repo:        repo,
		audit:       recorder,
		invalidator: invalidator,
	}
}

func (m *Manager) Get(ctx context.Context, slug string) (*Service, error) {
	return m.repo.GetBySlug(ctx, slug)
}

func (m *Manager) List(ctx context.Context) ([]Service, error) {
	return m.repo.List(ctx)
}

func (m *Manager) Count(ctx context.Context) (int64, error) {
	return m.repo.Count(ctx)
}

func (m *Manager) Create(
	ctx context.Context,
	req ServiceRequest,
	actorID string,
) (*Service, error) {
	exists, err := m.repo.Exists(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSlugTaken
	}

	service := req.toEntity()
	if err := m.repo.Insert(ctx, service); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	m.audit.Record(ctx, actorID, audit.ActionCreate, "services", service.Slug,
		audit.Details{"title": service.Title})

	m.invalidator.Invalidate(ctx, service.Slug)

	return service, nil
}

// Update rewrites the entry at slug. When the request carries a
// different slug the entry moves: delete at the old key, insert at
// the new one, both inside one transaction.
func (m *Manager) Update(
	ctx context.Context,
	slug string,
	req ServiceRequest,
	actorID string,
) (*Service, error) {
	existing, err := m.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	service := req.toEntity()

	if req.Slug != slug {
		if err := m.rename(ctx, slug, service); err != nil {
			return nil, err
		}
	} else {
		service.CreatedAt = existing.CreatedAt
		if err := m.repo.Update(ctx, service); err != nil {
			return nil, err
		}
	}

	details := audit.Details{"title": service.Title}
	if req.Slug != slug {
		details["old_slug"] = slug
	}
	m.audit.Record(ctx, actorID, audit.ActionUpdate, "services", service.Slug,
		details)

	m.invalidator.Invalidate(ctx, slug, service.Slug)

	return m.repo.GetBySlug(ctx, service.Slug)
}

func (m *Manager) Delete(ctx context.Context, slug, actorID string) error {
	if err := m.repo.Delete(ctx, slug); err != nil {
		return err
	}

	m.audit.Record(ctx, actorID, audit.ActionDelete, "services", slug, nil)

	m.invalidator.Invalidate(ctx, slug)

	return nil
}

func (m *Manager) rename(
	ctx context.Context,
	oldSlug string,
	service *Service,
) error {
	taken, err := m.repo.Exists(ctx, service.Slug)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	err = core.InTx(ctx, m.db, func(tx *sqlx.Tx) error {
		txRepo := NewRepository(tx)

		if err := txRepo.Delete(ctx, oldSlug); err != nil {
			return err
		}

		if err := txRepo.Insert(ctx, service); err != nil {
			if errors.Is(err, core.ErrDuplicateKey) {
				return ErrSlugTaken
			}
			return err
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("rename service: %w", err)
	}

	return nil
}
