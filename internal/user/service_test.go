// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdstudio/backoffice/internal/audit"
	"github.com/jdstudio/backoffice/internal/core"
)

const founderUID = "founder-001"

type fakeRepo struct {
	users map[string]*User
}

func newFakeRepo(users ...*User) *fakeRepo {
	f := &fakeRepo{users: map[string]*User{}}
	for _, u := range users {
		copied := *u
		f.users[u.UID] = &copied
	}
	return f
}

func (f *fakeRepo) Create(_ context.Context, user *User) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	copied := *user
	f.users[user.UID] = &copied
	return nil
}

func (f *fakeRepo) GetByUID(_ context.Context, uid string) (*User, error) {
	user, ok := f.users[uid]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeRepo) GetByNamecardUsername(
	_ context.Context,
	username string,
) (*User, error) {
	for _, user := range f.users {
		if user.Namecard.Username == username && user.Status == StatusActive {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get namecard: %w", core.ErrNotFound)
}

func (f *fakeRepo) List(_ context.Context) ([]User, error) {
	result := make([]User, 0, len(f.users))
	for _, user := range f.users {
		result = append(result, *user)
	}
	return result, nil
}

func (f *fakeRepo) UpdateRole(_ context.Context, uid, role string) error {
	user, ok := f.users[uid]
	if !ok {
		return fmt.Errorf("update role: %w", core.ErrNotFound)
	}
	user.Role = role
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, uid, status string) error {
	user, ok := f.users[uid]
	if !ok {
		return fmt.Errorf("update status: %w", core.ErrNotFound)
	}
	user.Status = status
	return nil
}

func (f *fakeRepo) UpdateProjects(
	_ context.Context,
	uid string,
	projects StringSlice,
) error {
	user, ok := f.users[uid]
	if !ok {
		return fmt.Errorf("update projects: %w", core.ErrNotFound)
	}
	user.AssignedProjects = projects
	return nil
}

func (f *fakeRepo) UpdateProfile(_ context.Context, user *User) error {
	stored, ok := f.users[user.UID]
	if !ok {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	*stored = *user
	return nil
}

func (f *fakeRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) NamecardUsernameTaken(
	_ context.Context,
	username, excludeUID string,
) (bool, error) {
	for _, user := range f.users {
		if user.UID != excludeUID && user.Namecard.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeDirectory struct {
	roles    map[string]string
	disabled map[string]bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		roles:    map[string]string{},
		disabled: map[string]bool{},
	}
}

func (f *fakeDirectory) SetRoleClaim(_ context.Context, uid, role string) error {
	f.roles[uid] = role
	return nil
}

func (f *fakeDirectory) DisableIdentity(_ context.Context, uid string) error {
	f.disabled[uid] = true
	return nil
}

func (f *fakeDirectory) EnableIdentity(_ context.Context, uid string) error {
	f.disabled[uid] = false
	return nil
}

type noopRecorder struct{}

func (noopRecorder) Record(
	_ context.Context,
	_, _, _, _ string,
	_ audit.Details,
) {
}

func founderUser() *User {
	return &User{
		UID:         founderUID,
		Email:       "founder@jdstudio.dev",
		DisplayName: "JD",
		Role:        RoleFounder,
		Status:      StatusActive,
	}
}

func staffUser(uid, role string) *User {
	return &User{
		UID:         uid,
		Email:       uid + "@jdstudio.dev",
		DisplayName: "Staff " + uid,
		Role:        role,
		Status:      StatusActive,
	}
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("updates the profile and the claim", func(t *testing.T) {
		repo := newFakeRepo(staffUser("uid-1", RoleEmployee))
		directory := newFakeDirectory()
		svc := NewService(repo, directory, noopRecorder{}, founderUID)

		require.NoError(t, svc.UpdateRole(ctx, "uid-1", RoleAdmin, founderUID))

		stored, err := repo.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, stored.Role)
		assert.Equal(t, RoleAdmin, directory.roles["uid-1"])
	})

	t.Run("founder role cannot be granted", func(t *testing.T) {
		repo := newFakeRepo(staffUser("uid-1", RoleEmployee))
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		err := svc.UpdateRole(ctx, "uid-1", RoleFounder, founderUID)
		assert.ErrorIs(t, err, ErrForbiddenRole)

		stored, err := repo.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, RoleEmployee, stored.Role)
	})

	t.Run("founder account is protected", func(t *testing.T) {
		repo := newFakeRepo(founderUser())
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		err := svc.UpdateRole(ctx, founderUID, RoleAdmin, "uid-1")
		assert.ErrorIs(t, err, ErrFounderProtected)

		stored, err := repo.GetByUID(ctx, founderUID)
		require.NoError(t, err)
		assert.Equal(t, RoleFounder, stored.Role)
	})
}

func TestAssignProjects(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the list wholesale", func(t *testing.T) {
		repo := newFakeRepo(staffUser("uid-1", RolePartner))
		repo.users["uid-1"].AssignedProjects = StringSlice{"alpha"}
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		err := svc.AssignProjects(ctx, "uid-1", []string{"beta", "gamma"}, founderUID)
		require.NoError(t, err)

		stored, err := repo.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, StringSlice{"beta", "gamma"}, stored.AssignedProjects)
	})

	t.Run("nil clears to an empty list", func(t *testing.T) {
		repo := newFakeRepo(staffUser("uid-1", RolePartner))
		repo.users["uid-1"].AssignedProjects = StringSlice{"alpha"}
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		require.NoError(t, svc.AssignProjects(ctx, "uid-1", nil, founderUID))

		stored, err := repo.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, StringSlice{}, stored.AssignedProjects)
	})

	t.Run("founder account is protected", func(t *testing.T) {
		repo := newFakeRepo(founderUser())
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		err := svc.AssignProjects(ctx, founderUID, []string{"alpha"}, "uid-1")
		assert.ErrorIs(t, err, ErrFounderProtected)
	})
}

func TestDeactivateReactivate(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivate disables the identity too", func(t *testing.T) {
		repo := newFakeRepo(staffUser("uid-1", RoleEmployee))
		directory := newFakeDirectory()
		svc := NewService(repo, directory, noopRecorder{}, founderUID)

		require.NoError(t, svc.Deactivate(ctx, "uid-1", founderUID))

		stored, err := repo.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, StatusInactive, stored.Status)
		assert.True(t, directory.disabled["uid-1"])
	})

	t.Run("reactivate re-enables the identity", func(t *testing.T) {
		repo := newFakeRepo(staffUser("uid-1", RoleEmployee))
		repo.users["uid-1"].Status = StatusInactive
		directory := newFakeDirectory()
		directory.disabled["uid-1"] = true
		svc := NewService(repo, directory, noopRecorder{}, founderUID)

		require.NoError(t, svc.Reactivate(ctx, "uid-1", founderUID))

		stored, err := repo.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, stored.Status)
		assert.False(t, directory.disabled["uid-1"])
	})

	t.Run("founder cannot be deactivated", func(t *testing.T) {
		repo := newFakeRepo(founderUser())
		directory := newFakeDirectory()
		svc := NewService(repo, directory, noopRecorder{}, founderUID)

		err := svc.Deactivate(ctx, founderUID, "uid-1")
		assert.ErrorIs(t, err, ErrFounderProtected)
		assert.False(t, directory.disabled[founderUID])

		stored, err := repo.GetByUID(ctx, founderUID)
		require.NoError(t, err)
		assert.Equal(t, StatusActive, stored.Status)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		err := svc.Deactivate(ctx, "missing", founderUID)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	profileRequest := func(username string) UpdateProfileRequest {
		return UpdateProfileRequest{
			DisplayName: "Alice",
			Title:       "Engineer",
			Namecard: NamecardInput{
				Username:    username,
				Tagline:     "builds things",
				ShowEmail:   true,
				AccentColor: "#6366f1",
			},
		}
	}

	t.Run("applies profile and namecard edits", func(t *testing.T) {
		repo := newFakeRepo(staffUser("uid-1", RoleEmployee))
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		updated, err := svc.UpdateProfile(ctx, "uid-1", profileRequest("alice"))
		require.NoError(t, err)

		assert.Equal(t, "Alice", updated.DisplayName)
		require.NotNil(t, updated.Title)
		assert.Equal(t, "Engineer", *updated.Title)
		assert.Nil(t, updated.Bio)
		assert.Equal(t, "alice", updated.Namecard.Username)
	})

	t.Run("rejects a username held by someone else", func(t *testing.T) {
		other := staffUser("uid-2", RoleEmployee)
		other.Namecard.Username = "alice"
		repo := newFakeRepo(staffUser("uid-1", RoleEmployee), other)
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		_, err := svc.UpdateProfile(ctx, "uid-1", profileRequest("alice"))
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("keeping your own username is fine", func(t *testing.T) {
		own := staffUser("uid-1", RoleEmployee)
		own.Namecard.Username = "alice"
		repo := newFakeRepo(own)
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		_, err := svc.UpdateProfile(ctx, "uid-1", profileRequest("alice"))
		assert.NoError(t, err)
	})
}

func TestGetNamecard(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves an active published card", func(t *testing.T) {
		published := staffUser("uid-1", RolePartner)
		published.Namecard = Namecard{Username: "alice", Tagline: "hi"}
		repo := newFakeRepo(published)
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		card, err := svc.GetNamecard(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "uid-1", card.UID)
	})

	t.Run("inactive users have no public card", func(t *testing.T) {
		hidden := staffUser("uid-1", RolePartner)
		hidden.Namecard = Namecard{Username: "alice"}
		hidden.Status = StatusInactive
		repo := newFakeRepo(hidden)
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		_, err := svc.GetNamecard(ctx, "alice")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestCreateFromInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("provisions an active profile", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		err := svc.CreateFromInvite(ctx, "uid-1", "a@b.com", "Alice", RoleAdmin)
		require.NoError(t, err)

		stored, err := repo.GetByUID(ctx, "uid-1")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, stored.Status)
		assert.Equal(t, RoleAdmin, stored.Role)
		assert.NotNil(t, stored.AssignedProjects)
	})

	t.Run("founder role is never provisioned", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewService(repo, newFakeDirectory(), noopRecorder{}, founderUID)

		err := svc.CreateFromInvite(ctx, "uid-1", "a@b.com", "Alice", RoleFounder)
		assert.ErrorIs(t, err, ErrForbiddenRole)
	})
}
