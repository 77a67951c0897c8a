// AngelaMos | 2026
// service.go

package invite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jdstudio/backoffice/internal/audit"
	"github.com/jdstudio/backoffice/internal/core"
	"github.com/jdstudio/backoffice/internal/user"
)

var (
	// ErrUserExists means the email already resolved to a profile, so
	// an invite would be pointless.
	ErrUserExists = errors.New("a user with this email already exists")

	// ErrDuplicatePending enforces the one-pending-invite-per-email
	// rule.
	ErrDuplicatePending = errors.New("a pending invite already exists for this email")

	// ErrInvalidOrExpired covers every unusable-token case: unknown,
	// already redeemed, revoked, or past expiry. Callers cannot
	// distinguish which, deliberately.
	ErrInvalidOrExpired = errors.New("invite is invalid or has expired")
)

// ProfileDirectory is what invite redemption needs from the user
// manager.
type ProfileDirectory interface {
	CreateFromInvite(ctx context.Context, uid, email, displayName, role string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// ClaimSetter mirrors the redeemed role into the identity provider.
type ClaimSetter interface {
	SetRoleClaim(ctx context.Context, uid, role string) error
}

// Mailer delivers the redemption link. Failures are logged, never
// surfaced: the inviter still holds the token and can deliver it by
// hand.
type Mailer interface {
	SendInvite(ctx context.Context, email, role, acceptURL string) error
}

type Service struct {
	repo      Repository
	profiles  ProfileDirectory
	claims    ClaimSetter
	audit     audit.Recorder
	mailer    Mailer
	logger    *slog.Logger
	expiry    time.Duration
	acceptURL string

	now func() time.Time
}

func NewService(
	repo Repository,
	profiles ProfileDirectory,
	claims ClaimSetter,
	recorder audit.Recorder,
	mailer Mailer,
	logger *slog.Logger,
	expiry time.Duration,
	acceptURL string,
) *Service {
	return &Service{
		repo:      repo,
		profiles:  profiles,
		claims:    claims,
		audit:     recorder,
		mailer:    mailer,
		logger:    logger,
		expiry:    expiry,
		acceptURL: acceptURL,
		now:       time.Now,
	}
}

// Create issues a pending invite and returns it together with the raw
// token. The token is never persisted and never written to audit
// detail; losing it means revoking and re-inviting.
func (s *Service) Create(
	ctx context.Context,
	email, role, inviterID string,
) (*Invite, string, error) {
	if !user.AssignableRole(role) {
		return nil, "", user.ErrForbiddenRole
	}

	exists, err := s.profiles.EmailExists(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUserExists
	}

	pending, err := s.repo.HasPendingForEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if pending {
		return nil, "", ErrDuplicatePending
	}

	token, err := core.GenerateInviteToken()
	if err != nil {
		return nil, "", fmt.Errorf("generate invite token: %w", err)
	}

	invite := &Invite{
		ID:          uuid.New().String(),
		Email:       email,
		Role:        role,
		InvitedBy:   inviterID,
		TokenDigest: core.HashToken(token),
		Status:      StatusPending,
		ExpiresAt:   s.now().Add(s.expiry),
	}

	if err := s.repo.Create(ctx, invite); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", ErrDuplicatePending
		}
		return nil, "", err
	}

	s.audit.Record(ctx, inviterID, audit.ActionCreate, "invite", invite.ID,
		audit.Details{"email": email, "role": role})

	if s.mailer != nil {
		link := s.AcceptLink(token)
		if err := s.mailer.SendInvite(ctx, email, role, link); err != nil {
			s.logger.Error("invite email failed",
				"invite_id", invite.ID,
				"error", err,
			)
		}
	}

	return invite, token, nil
}

// GetByToken resolves a pending invite by its raw token. An invite
// found past its expiry is transitioned to expired on the spot; this
// read-time check is the only expiry enforcement, there is no sweep.
func (s *Service) GetByToken(
	ctx context.Context,
	token string,
) (*Invite, error) {
	invite, err := s.repo.GetPendingByTokenDigest(ctx, core.HashToken(token))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidOrExpired
		}
		return nil, err
	}

	if invite.ExpiredAt(s.now()) {
		if err := s.repo.MarkExpired(ctx, invite.ID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidOrExpired
	}

	return invite, nil
}

// Complete redeems an invite for a freshly provisioned identity. The
// steps run in order: profile create, role claim, invite accepted.
// They are not transactional; a later-step failure is returned with
// the earlier steps already applied.
func (s *Service) Complete(
	ctx context.Context,
	token, identityID, displayName string,
) (*Invite, error) {
	invite, err := s.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	err = s.profiles.CreateFromInvite(
		ctx,
		identityID,
		invite.Email,
		displayName,
		invite.Role,
	)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	if err := s.claims.SetRoleClaim(ctx, identityID, invite.Role); err != nil {
		return nil, fmt.Errorf("set role claim: %w", err)
	}

	if err := s.repo.MarkAccepted(ctx, invite.ID, identityID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidOrExpired
		}
		return nil, err
	}

	s.audit.Record(ctx, identityID, audit.ActionUpdate, "invite", invite.ID,
		audit.Details{"status": StatusAccepted, "profile": identityID})

	invite.Status = StatusAccepted
	invite.AcceptedBy = &identityID

	return invite, nil
}

// Revoke force-expires an invite regardless of its current status.
// Revoking an already-accepted invite has no effect on the profile it
// produced.
func (s *Service) Revoke(ctx context.Context, id, actorID string) error {
	if err := s.repo.ForceExpire(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, actorID, audit.ActionDelete, "invite", id,
		audit.Details{"status": StatusExpired})

	return nil
}

func (s *Service) List(ctx context.Context) ([]Invite, error) {
	return s.repo.List(ctx)
}

func (s *Service) CountPending(ctx context.Context) (int64, error) {
	return s.repo.CountPending(ctx)
}

// AcceptLink builds the out-of-band redemption URL for a raw token.
func (s *Service) AcceptLink(token string) string {
	if s.acceptURL == "" {
		return ""
	}
	return s.acceptURL + "?token=" + url.QueryEscape(token)
}
