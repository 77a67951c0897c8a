// AngelaMos | 2026
// recorder_test.go

package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	records []Record
	err     error
}

func (f *fakeRepo) Create(_ context.Context, record *Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeRepo) List(_ context.Context, limit int) ([]Record, error) {
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("persists the record with an id", func(t *testing.T) {
		repo := &fakeRepo{}
		recorder := NewRecorder(repo, logger)

		recorder.Record(ctx, "uid-1", ActionCreate, "invite", "inv-1",
			Details{"email": "a@b.com"})

		require.Len(t, repo.records, 1)
		record := repo.records[0]
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, "uid-1", record.ActorID)
		assert.Equal(t, ActionCreate, record.Action)
		assert.Equal(t, "invite", record.Resource)
		assert.Equal(t, "inv-1", record.ResourceID)
		assert.Equal(t, "a@b.com", record.Details["email"])
	})

	t.Run("a failed insert never reaches the caller", func(t *testing.T) {
		repo := &fakeRepo{err: errors.New("connection reset")}
		recorder := NewRecorder(repo, logger)

		assert.NotPanics(t, func() {
			recorder.Record(ctx, "uid-1", ActionDelete, "services", "web", nil)
		})
		assert.Empty(t, repo.records)
	})
}
