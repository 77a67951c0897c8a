// AngelaMos | 2026
// recorder.go

package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Recorder appends one record per successful administrative mutation.
// Record is best-effort: a failed insert is logged and never propagated
// to the mutation's caller.
type Recorder interface {
	Record(
		ctx context.Context,
		actorID, action, resource, resourceID string,
		details Details,
	)
}

type recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) Recorder {
	return &recorder{repo: repo, logger: logger}
}

func (r *recorder) Record(
	ctx context.Context,
	actorID, action, resource, resourceID string,
	details Details,
) {
	record := &Record{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
	}

	if err := r.repo.Create(ctx, record); err != nil {
		r.logger.Error("audit record failed",
			"action", action,
			"resource", resource,
			"resource_id", resourceID,
			"error", err,
		)
	}
}
