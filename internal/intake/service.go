// AngelaMos | 2026
// service.go

package intake

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jdstudio/backoffice/internal/audit"
)

// Notifier forwards new submissions to the team's inboxes. Delivery
// failures are logged and swallowed: the submission is already
// persisted and visible in the back office either way.
type Notifier interface {
	SendContactNotification(ctx context.Context, message *Message) error
	SendQuoteNotification(ctx context.Context, quote *Quote) error
}

type Service struct {
	repo     Repository
	audit    audit.Recorder
	notifier Notifier
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	recorder audit.Recorder,
	notifier Notifier,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		audit:    recorder,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitMessage records an unauthenticated contact-form submission.
func (s *Service) SubmitMessage(
	ctx context.Context,
	req ContactRequest,
) (*Message, error) {
	message := &Message{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
		Status:  MessageStatusNew,
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendContactNotification(ctx, message); err != nil {
			s.logger.Error("contact notification failed",
				"message_id", message.ID,
				"error", err,
			)
		}
	}

	return message, nil
}

// SubmitQuote records an unauthenticated quote request.
func (s *Service) SubmitQuote(
	ctx context.Context,
	req QuoteRequest,
) (*Quote, error) {
	quote := &Quote{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Email:       req.Email,
		ProjectType: req.ProjectType,
		Budget:      req.Budget,
		Timeline:    req.Timeline,
		Details:     req.Details,
		Status:      QuoteStatusNew,
	}
	if req.Company != "" {
		quote.Company = &req.Company
	}

	if err := s.repo.CreateQuote(ctx, quote); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendQuoteNotification(ctx, quote); err != nil {
			s.logger.Error("quote notification failed",
				"quote_id", quote.ID,
				"error", err,
			)
		}
	}

	return quote, nil
}

func (s *Service) ListMessages(ctx context.Context) ([]Message, error) {
	return s.repo.ListMessages(ctx)
}

func (s *Service) ListQuotes(ctx context.Context) ([]Quote, error) {
	return s.repo.ListQuotes(ctx)
}

func (s *Service) UpdateMessageStatus(
	ctx context.Context,
	id, status, actorID string,
) error {
	if err := s.repo.UpdateMessageStatus(ctx, id, status); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, audit.ActionUpdate, "messages", id,
		audit.Details{"status": status})

	return nil
}

func (s *Service) UpdateQuoteStatus(
	ctx context.Context,
	id, status, actorID string,
) error {
	if err := s.repo.UpdateQuoteStatus(ctx, id, status); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, audit.ActionUpdate, "quotes", id,
		audit.Details{"status": status})

	return nil
}

func (s *Service) CountNewMessages(ctx context.Context) (int64, error) {
	return s.repo.CountMessagesByStatus(ctx, MessageStatusNew)
}

func (s *Service) CountNewQuotes(ctx context.Context) (int64, error) {
	return s.repo.CountQuotesByStatus(ctx, QuoteStatusNew)
}
