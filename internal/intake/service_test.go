// AngelaMos | 2026
// service_test.go

package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdstudio/backoffice/internal/audit"
	"github.com/jdstudio/backoffice/internal/core"
)

type fakeRepo struct {
	messages map[string]*Message
	quotes   map[string]*Quote
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		messages: map[string]*Message{},
		quotes:   map[string]*Quote{},
	}
}

func (f *fakeRepo) CreateMessage(_ context.Context, message *Message) error {
	copied := *message
	f.messages[message.ID] = &copied
	return nil
}

func (f *fakeRepo) ListMessages(_ context.Context) ([]Message, error) {
	result := make([]Message, 0, len(f.messages))
	for _, message := range f.messages {
		result = append(result, *message)
	}
	return result, nil
}

func (f *fakeRepo) UpdateMessageStatus(
	_ context.Context,
	id, status string,
) error {
	message, ok := f.messages[id]
	if !ok {
		return fmt.Errorf("update message status: %w", core.ErrNotFound)
	}
	message.Status = status
	return nil
}

func (f *fakeRepo) CountMessagesByStatus(
	_ context.Context,
	status string,
) (int64, error) {
	var count int64
	for _, message := range f.messages {
		if message.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CreateQuote(_ context.Context, quote *Quote) error {
	copied := *quote
	f.quotes[quote.ID] = &copied
	return nil
}

func (f *fakeRepo) ListQuotes(_ context.Context) ([]Quote, error) {
	result := make([]Quote, 0, len(f.quotes))
	for _, quote := range f.quotes {
		result = append(result, *quote)
	}
	return result, nil
}

func (f *fakeRepo) UpdateQuoteStatus(
	_ context.Context,
	id, status string,
) error {
	quote, ok := f.quotes[id]
	if !ok {
		return fmt.Errorf("update quote status: %w", core.ErrNotFound)
	}
	quote.Status = status
	return nil
}

func (f *fakeRepo) CountQuotesByStatus(
	_ context.Context,
	status string,
) (int64, error) {
	var count int64
	for _, quote := range f.quotes {
		if quote.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeNotifier struct {
	contacts int
	quotes   int
	err      error
}

func (f *fakeNotifier) SendContactNotification(
	_ context.Context,
	_ *Message,
) error {
	if f.err != nil {
		return f.err
	}
	f.contacts++
	return nil
}

func (f *fakeNotifier) SendQuoteNotification(
	_ context.Context,
	_ *Quote,
) error {
	if f.err != nil {
		return f.err
	}
	f.quotes++
	return nil
}

type recordedAudit struct {
	entries []string
}

func (r *recordedAudit) Record(
	_ context.Context,
	_, action, resource, _ string,
	_ audit.Details,
) {
	r.entries = append(r.entries, action+" "+resource)
}

func newIntakeService(
	repo Repository,
	recorder audit.Recorder,
	notifier Notifier,
) *Service {
	return NewService(repo, recorder, notifier, slog.New(slog.DiscardHandler))
}

func TestSubmitMessage(t *testing.T) {
	ctx := context.Background()

	req := ContactRequest{
		Name:    "Dana",
		Email:   "dana@example.com",
		Subject: "New site",
		Message: "We need a marketing site refreshed before Q4.",
	}

	t.Run("persists as new and notifies", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{}
		svc := newIntakeService(repo, &recordedAudit{}, notifier)

		message, err := svc.SubmitMessage(ctx, req)
		require.NoError(t, err)

		assert.NotEmpty(t, message.ID)
		assert.Equal(t, MessageStatusNew, message.Status)
		assert.Equal(t, 1, notifier.contacts)

		count, err := svc.CountNewMessages(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("notification failure is swallowed", func(t *testing.T) {
		repo := newFakeRepo()
		notifier := &fakeNotifier{err: errors.New("inbox unreachable")}
		svc := newIntakeService(repo, &recordedAudit{}, notifier)

		message, err := svc.SubmitMessage(ctx, req)
		require.NoError(t, err)
		assert.Len(t, repo.messages, 1)
		assert.Equal(t, MessageStatusNew, message.Status)
	})

	t.Run("works without a notifier", func(t *testing.T) {
		svc := newIntakeService(newFakeRepo(), &recordedAudit{}, nil)

		_, err := svc.SubmitMessage(ctx, req)
		assert.NoError(t, err)
	})
}

func TestSubmitQuote(t *testing.T) {
	ctx := context.Background()

	req := QuoteRequest{
		Name:        "Dana",
		Email:       "dana@example.com",
		ProjectType: "saas",
		Budget:      "$25k-$50k",
		Timeline:    "3 months",
		Details:     "Multi-tenant dashboard with billing.",
	}

	t.Run("persists as new with optional company", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newIntakeService(repo, &recordedAudit{}, nil)

		quote, err := svc.SubmitQuote(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, QuoteStatusNew, quote.Status)
		assert.Nil(t, quote.Company)

		withCompany := req
		withCompany.Company = "Acme Corp"
		quote, err = svc.SubmitQuote(ctx, withCompany)
		require.NoError(t, err)
		require.NotNil(t, quote.Company)
		assert.Equal(t, "Acme Corp", *quote.Company)
	})
}

func TestStatusUpdates(t *testing.T) {
	ctx := context.Background()

	t.Run("message status change is audited", func(t *testing.T) {
		repo := newFakeRepo()
		recorder := &recordedAudit{}
		svc := newIntakeService(repo, recorder, nil)

		message, err := svc.SubmitMessage(ctx, ContactRequest{
			Name:    "Dana",
			Email:   "dana@example.com",
			Subject: "Hello",
			Message: "Just checking in about the proposal.",
		})
		require.NoError(t, err)

		err = svc.UpdateMessageStatus(ctx, message.ID, MessageStatusRead, "uid-1")
		require.NoError(t, err)

		assert.Equal(t, MessageStatusRead, repo.messages[message.ID].Status)
		assert.Equal(t, []string{"UPDATE messages"}, recorder.entries)

		count, err := svc.CountNewMessages(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("quote status change is audited", func(t *testing.T) {
		repo := newFakeRepo()
		recorder := &recordedAudit{}
		svc := newIntakeService(repo, recorder, nil)

		quote, err := svc.SubmitQuote(ctx, QuoteRequest{
			Name:        "Dana",
			Email:       "dana@example.com",
			ProjectType: "web",
			Budget:      "$10k",
			Timeline:    "6 weeks",
			Details:     "Brochure site with a blog.",
		})
		require.NoError(t, err)

		err = svc.UpdateQuoteStatus(ctx, quote.ID, QuoteStatusContacted, "uid-1")
		require.NoError(t, err)

		assert.Equal(t, QuoteStatusContacted, repo.quotes[quote.ID].Status)
		assert.Equal(t, []string{"UPDATE quotes"}, recorder.entries)
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		svc := newIntakeService(newFakeRepo(), &recordedAudit{}, nil)

		err := svc.UpdateMessageStatus(ctx, "missing", MessageStatusRead, "uid-1")
		assert.ErrorIs(t, err, core.ErrNotFound)

		err = svc.UpdateQuoteStatus(ctx, "missing", QuoteStatusClosed, "uid-1")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}
