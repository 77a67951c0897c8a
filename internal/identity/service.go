// AngelaMos | 2026
// service.go

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jdstudio/backoffice/internal/core"
	"github.com/jdstudio/backoffice/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityDisabled   = errors.New("identity disabled")
)

const (
	roleClaimKeyPrefix = "claims:role:"
	disabledSetKey     = "identity:disabled"
)

// Service is the in-process identity provider: credential
// verification, session issuance, role claims, and identity disabling.
type Service struct {
	repo     Repository
	sessions *SessionManager
	redis    *redis.Client
}

func NewService(
	repo Repository,
	sessions *SessionManager,
	redisClient *redis.Client,
) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
		redis:    redisClient,
	}
}

type Session struct {
	Token     string
	UID       string
	Role      string
	ExpiresAt time.Time
}

func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*Session, error) {
	identity, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		password,
		&identity.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if identity.Disabled {
		return nil, ErrIdentityDisabled
	}

	if newHash != "" {
		//nolint:errcheck // best-effort rehash upgrade
		_ = s.repo.UpdatePassword(ctx, identity.UID, newHash)
	}

	return s.CreateSession(ctx, identity.UID)
}

// CreateSession issues the session artifact for an already-verified
// identity, stamping the current role claim into it.
func (s *Service) CreateSession(
	ctx context.Context,
	uid string,
) (*Session, error) {
	role, err := s.roleClaim(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("read role claim: %w", err)
	}

	token, expiresAt, err := s.sessions.CreateSession(uid, role)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &Session{
		Token:     token,
		UID:       uid,
		Role:      role,
		ExpiresAt: expiresAt,
	}, nil
}

// VerifySession validates the artifact and rejects identities that
// were disabled after issuance.
func (s *Service) VerifySession(
	ctx context.Context,
	token string,
) (*middleware.SessionClaims, error) {
	claims, err := s.sessions.ParseSession(token)
	if err != nil {
		return nil, err
	}

	disabled, err := s.redis.SIsMember(ctx, disabledSetKey, claims.UserID).
		Result()
	if err != nil {
		return nil, fmt.Errorf("check disabled set: %w", err)
	}

	if disabled {
		return nil, fmt.Errorf("verify session: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

// Provision creates a credential for a newly redeemed invite. The
// role claim is written separately, once the profile exists.
func (s *Service) Provision(
	ctx context.Context,
	uid, email, password string,
) error {
	passwordHash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	identity := &Identity{
		UID:          uid,
		Email:        email,
		PasswordHash: passwordHash,
	}

	return s.repo.Create(ctx, identity)
}

func (s *Service) SetRoleClaim(ctx context.Context, uid, role string) error {
	key := roleClaimKeyPrefix + uid
	if err := s.redis.Set(ctx, key, role, 0).Err(); err != nil {
		return fmt.Errorf("set role claim: %w", err)
	}
	return nil
}

func (s *Service) DisableIdentity(ctx context.Context, uid string) error {
	if err := s.repo.SetDisabled(ctx, uid, true); err != nil {
		return err
	}

	if err := s.redis.SAdd(ctx, disabledSetKey, uid).Err(); err != nil {
		return fmt.Errorf("add to disabled set: %w", err)
	}

	return nil
}

func (s *Service) EnableIdentity(ctx context.Context, uid string) error {
	if err := s.repo.SetDisabled(ctx, uid, false); err != nil {
		return err
	}

	if err := s.redis.SRem(ctx, disabledSetKey, uid).Err(); err != nil {
		return fmt.Errorf("remove from disabled set: %w", err)
	}

	return nil
}

func (s *Service) roleClaim(ctx context.Context, uid string) (string, error) {
	role, err := s.redis.Get(ctx, roleClaimKeyPrefix+uid).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

var _ middleware.SessionVerifier = (*Service)(nil)
