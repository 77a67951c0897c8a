// AngelaMos | 2026
// service_test.go

package invite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdstudio/backoffice/internal/audit"
	"github.com/jdstudio/backoffice/internal/core"
	"github.com/jdstudio/backoffice/internal/user"
)

type fakeRepo struct {
	invites map[string]*Invite
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{invites: map[string]*Invite{}}
}

func (f *fakeRepo) Create(_ context.Context, invite *Invite) error {
	for _, existing := range f.invites {
		if existing.Email == invite.Email &&
			existing.Status == StatusPending {
			return fmt.Errorf("create invite: %w", core.ErrDuplicateKey)
		}
	}
	stored := *invite
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.invites[invite.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Invite, error) {
	invite, ok := f.invites[id]
	if !ok {
		return nil, fmt.Errorf("get invite: %w", core.ErrNotFound)
	}
	copied := *invite
	return &copied, nil
}

func (f *fakeRepo) GetPendingByTokenDigest(
	_ context.Context,
	digest string,
) (*Invite, error) {
	for _, invite := range f.invites {
		if invite.TokenDigest == digest && invite.Status == StatusPending {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get invite by token: %w", core.ErrNotFound)
}

func (f *fakeRepo) HasPendingForEmail(
	_ context.Context,
	email string,
) (bool, error) {
	for _, invite := range f.invites {
		if invite.Email == email && invite.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) MarkExpired(_ context.Context, id string) error {
	invite, ok := f.invites[id]
	if ok && invite.Status == StatusPending {
		invite.Status = StatusExpired
	}
	return nil
}

func (f *fakeRepo) MarkAccepted(
	_ context.Context,
	id, acceptedBy string,
) error {
	invite, ok := f.invites[id]
	if !ok || invite.Status != StatusPending {
		return fmt.Errorf("mark invite accepted: %w", core.ErrNotFound)
	}
	invite.Status = StatusAccepted
	invite.AcceptedBy = &acceptedBy
	return nil
}

func (f *fakeRepo) ForceExpire(_ context.Context, id string) error {
	invite, ok := f.invites[id]
	if !ok {
		return fmt.Errorf("force expire invite: %w", core.ErrNotFound)
	}
	invite.Status = StatusExpired
	return nil
}

func (f *fakeRepo) List(_ context.Context) ([]Invite, error) {
	result := make([]Invite, 0, len(f.invites))
	for _, invite := range f.invites {
		result = append(result, *invite)
	}
	return result, nil
}

func (f *fakeRepo) CountPending(_ context.Context) (int64, error) {
	var count int64
	for _, invite := range f.invites {
		if invite.Status == StatusPending {
			count++
		}
	}
	return count, nil
}

type fakeProfiles struct {
	existing map[string]bool
	created  []string
	err      error
}

func (f *fakeProfiles) CreateFromInvite(
	_ context.Context,
	uid, _, _, _ string,
) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, uid)
	return nil
}

func (f *fakeProfiles) EmailExists(
	_ context.Context,
	email string,
) (bool, error) {
	return f.existing[email], nil
}

type fakeClaims struct {
	roles map[string]string
	err   error
}

func (f *fakeClaims) SetRoleClaim(_ context.Context, uid, role string) error {
	if f.err != nil {
		return f.err
	}
	if f.roles == nil {
		f.roles = map[string]string{}
	}
	f.roles[uid] = role
	return nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) SendInvite(
	_ context.Context,
	email, _, _ string,
) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

type recordedAudit struct {
	actions []string
}

func (r *recordedAudit) Record(
	_ context.Context,
	_, action, resource, _ string,
	_ audit.Details,
) {
	r.actions = append(r.actions, action+" "+resource)
}

type inviteFixture struct {
	svc      *Service
	repo     *fakeRepo
	profiles *fakeProfiles
	claims   *fakeClaims
	mailer   *fakeMailer
	audit    *recordedAudit
}

func newInviteFixture(t *testing.T) *inviteFixture {
	t.Helper()

	f := &inviteFixture{
		repo:     newFakeRepo(),
		profiles: &fakeProfiles{existing: map[string]bool{}},
		claims:   &fakeClaims{},
		mailer:   &fakeMailer{},
		audit:    &recordedAudit{},
	}

	f.svc = NewService(
		f.repo,
		f.profiles,
		f.claims,
		f.audit,
		f.mailer,
		slog.New(slog.DiscardHandler),
		7*24*time.Hour,
		"https://example.com/accept",
	)

	return f
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a pending invite with a raw token", func(t *testing.T) {
		f := newInviteFixture(t)

		invite, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		assert.Equal(t, StatusPending, invite.Status)
		assert.Equal(t, "a@b.com", invite.Email)
		assert.Equal(t, "admin", invite.Role)
		assert.Len(t, token, 64)
		assert.Equal(t, core.HashToken(token), invite.TokenDigest)
		assert.WithinDuration(
			t,
			time.Now().Add(7*24*time.Hour),
			invite.ExpiresAt,
			time.Minute,
		)
		assert.Equal(t, []string{"CREATE invite"}, f.audit.actions)
		assert.Equal(t, []string{"a@b.com"}, f.mailer.sent)
	})

	t.Run("rejects the founder role", func(t *testing.T) {
		f := newInviteFixture(t)

		_, _, err := f.svc.Create(ctx, "a@b.com", "founder", "founder-001")
		assert.ErrorIs(t, err, user.ErrForbiddenRole)
		assert.Empty(t, f.audit.actions)
	})

	t.Run("rejects an email that already has a profile", func(t *testing.T) {
		f := newInviteFixture(t)
		f.profiles.existing["a@b.com"] = true

		_, _, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("rejects a second pending invite for the same email", func(t *testing.T) {
		f := newInviteFixture(t)

		_, _, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		_, _, err = f.svc.Create(ctx, "a@b.com", "employee", "founder-001")
		assert.ErrorIs(t, err, ErrDuplicatePending)
	})

	t.Run("email failure does not fail the invite", func(t *testing.T) {
		f := newInviteFixture(t)
		f.mailer.err = errors.New("smtp down")

		invite, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, StatusPending, invite.Status)
	})
}

func TestGetByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the pending invite", func(t *testing.T) {
		f := newInviteFixture(t)
		created, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		found, err := f.svc.GetByToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		f := newInviteFixture(t)

		_, err := f.svc.GetByToken(ctx, "deadbeef")
		assert.ErrorIs(t, err, ErrInvalidOrExpired)
	})

	t.Run("expires a stale invite on lookup", func(t *testing.T) {
		f := newInviteFixture(t)
		created, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		f.svc.now = func() time.Time {
			return time.Now().Add(8 * 24 * time.Hour)
		}

		_, err = f.svc.GetByToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidOrExpired)

		stored, err := f.repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusExpired, stored.Status)

		// A second lookup stays invalid with no further transition.
		_, err = f.svc.GetByToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidOrExpired)
	})
}

func TestComplete(t *testing.T) {
	ctx := context.Background()

	t.Run("redeems once and only once", func(t *testing.T) {
		f := newInviteFixture(t)
		created, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		redeemed, err := f.svc.Complete(ctx, token, "uid-123", "Alice")
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, redeemed.Status)
		require.NotNil(t, redeemed.AcceptedBy)
		assert.Equal(t, "uid-123", *redeemed.AcceptedBy)

		assert.Equal(t, []string{"uid-123"}, f.profiles.created)
		assert.Equal(t, "admin", f.claims.roles["uid-123"])

		stored, err := f.repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, stored.Status)

		_, err = f.svc.Complete(ctx, token, "uid-999", "Eve")
		assert.ErrorIs(t, err, ErrInvalidOrExpired)
	})

	t.Run("expired token cannot be redeemed", func(t *testing.T) {
		f := newInviteFixture(t)
		_, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		f.svc.now = func() time.Time {
			return time.Now().Add(8 * 24 * time.Hour)
		}

		_, err = f.svc.Complete(ctx, token, "uid-123", "Alice")
		assert.ErrorIs(t, err, ErrInvalidOrExpired)
		assert.Empty(t, f.profiles.created)
	})

	t.Run("claim failure reports after profile creation", func(t *testing.T) {
		f := newInviteFixture(t)
		created, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		f.claims.err = errors.New("provider unavailable")

		_, err = f.svc.Complete(ctx, token, "uid-123", "Alice")
		require.Error(t, err)

		// Profile step already ran, invite is still pending.
		assert.Equal(t, []string{"uid-123"}, f.profiles.created)
		stored, err := f.repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, stored.Status)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()

	t.Run("expires a pending invite", func(t *testing.T) {
		f := newInviteFixture(t)
		created, _, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		require.NoError(t, f.svc.Revoke(ctx, created.ID, "founder-001"))

		stored, err := f.repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusExpired, stored.Status)
	})

	t.Run("expires an accepted invite without touching the profile", func(t *testing.T) {
		f := newInviteFixture(t)
		created, token, err := f.svc.Create(ctx, "a@b.com", "admin", "founder-001")
		require.NoError(t, err)

		_, err = f.svc.Complete(ctx, token, "uid-123", "Alice")
		require.NoError(t, err)

		require.NoError(t, f.svc.Revoke(ctx, created.ID, "founder-001"))

		stored, err := f.repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusExpired, stored.Status)
		assert.Equal(t, []string{"uid-123"}, f.profiles.created)
	})

	t.Run("unknown invite is not found", func(t *testing.T) {
		f := newInviteFixture(t)

		err := f.svc.Revoke(ctx, "missing", "founder-001")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}
