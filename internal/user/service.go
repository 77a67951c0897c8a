// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jdstudio/backoffice/internal/audit"
	"github.com/jdstudio/backoffice/internal/core"
)

var (
	// ErrFounderProtected rejects any mutation aimed at the configured
	// founder identity.
	ErrFounderProtected = errors.New("founder account cannot be modified")

	// ErrForbiddenRole rejects any attempt to grant the founder role.
	ErrForbiddenRole = errors.New("role cannot be granted")

	ErrUsernameTaken = errors.New("namecard username already taken")
)

// IdentityDirectory is the slice of the identity provider the user
// manager needs: keeping role claims in sync and flipping the
// disabled switch.
type IdentityDirectory interface {
	SetRoleClaim(ctx context.Context, uid, role string) error
	DisableIdentity(ctx context.Context, uid string) error
	EnableIdentity(ctx context.Context, uid string) error
}

type Service struct {
	repo       Repository
	directory  IdentityDirectory
	audit      audit.Recorder
	founderUID string
}

func NewService(
	repo Repository,
	directory IdentityDirectory,
	recorder audit.Recorder,
	founderUID string,
) *Service {
	return &Service{
		repo:       repo,
		directory:  directory,
		audit:      recorder,
		founderUID: founderUID,
	}
}

// CreateFromInvite provisions the profile produced by a redeemed
// invite. Email and role are copied from the invite verbatim.
func (s *Service) CreateFromInvite(
	ctx context.Context,
	uid, email, displayName, role string,
) error {
	if !AssignableRole(role) {
		return ErrForbiddenRole
	}

	user := &User{
		UID:              uid,
		Email:            email,
		DisplayName:      displayName,
		Role:             role,
		Status:           StatusActive,
		AssignedProjects: StringSlice{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return err
	}

	return nil
}

func (s *Service) Get(ctx context.Context, uid string) (*User, error) {
	return s.repo.GetByUID(ctx, uid)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.EmailExists(ctx, email)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// UpdateRole changes a profile's role and mirrors it into the
// identity provider's role claim. The profile update and the claim
// update are sequential, not transactional; a claim failure is
// reported to the caller with the profile already updated.
func (s *Service) UpdateRole(
	ctx context.Context,
	uid, newRole, updatedBy string,
) error {
	if uid == s.founderUID {
		return ErrFounderProtected
	}
	if !AssignableRole(newRole) {
		return ErrForbiddenRole
	}

	if err := s.repo.UpdateRole(ctx, uid, newRole); err != nil {
		return err
	}

	if err := s.directory.SetRoleClaim(ctx, uid, newRole); err != nil {
		return fmt.Errorf("sync role claim: %w", err)
	}

	s.audit.Record(ctx, updatedBy, audit.ActionUpdate, "user", uid,
		audit.Details{"field": "role", "role": newRole})

	return nil
}

// AssignProjects replaces the assigned-project list wholesale.
func (s *Service) AssignProjects(
	ctx context.Context,
	uid string,
	projects []string,
	updatedBy string,
) error {
	if uid == s.founderUID {
		return ErrFounderProtected
	}

	if projects == nil {
		projects = []string{}
	}

	if err := s.repo.UpdateProjects(ctx, uid, projects); err != nil {
		return err
	}

	s.audit.Record(ctx, updatedBy, audit.ActionUpdate, "user", uid,
		audit.Details{"field": "assigned_projects", "count": len(projects)})

	return nil
}

// Deactivate marks the profile inactive and disables the identity so
// outstanding sessions stop verifying.
func (s *Service) Deactivate(ctx context.Context, uid, updatedBy string) error {
	if uid == s.founderUID {
		return ErrFounderProtected
	}

	if err := s.repo.UpdateStatus(ctx, uid, StatusInactive); err != nil {
		return err
	}

	if err := s.directory.DisableIdentity(ctx, uid); err != nil {
		return fmt.Errorf("disable identity: %w", err)
	}

	s.audit.Record(ctx, updatedBy, audit.ActionUpdate, "user", uid,
		audit.Details{"field": "status", "status": StatusInactive})

	return nil
}

// Reactivate is the inverse of Deactivate.
func (s *Service) Reactivate(ctx context.Context, uid, updatedBy string) error {
	if uid == s.founderUID {
		return ErrFounderProtected
	}

	if err := s.repo.UpdateStatus(ctx, uid, StatusActive); err != nil {
		return err
	}

	if err := s.directory.EnableIdentity(ctx, uid); err != nil {
		return fmt.Errorf("enable identity: %w", err)
	}

	s.audit.Record(ctx, updatedBy, audit.ActionUpdate, "user", uid,
		audit.Details{"field": "status", "status": StatusActive})

	return nil
}

// UpdateProfile applies self-service profile and namecard edits.
// Role, status and project assignments are not reachable from here.
func (s *Service) UpdateProfile(
	ctx context.Context,
	uid string,
	req UpdateProfileRequest,
) (*User, error) {
	current, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Namecard.Username != "" {
		taken, err := s.repo.NamecardUsernameTaken(
			ctx,
			req.Namecard.Username,
			uid,
		)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	current.DisplayName = req.DisplayName
	current.Title = optional(req.Title)
	current.Bio = optional(req.Bio)
	current.Phone = optional(req.Phone)
	current.PhotoURL = optional(req.PhotoURL)
	current.Social = Social{
		LinkedIn: req.Social.LinkedIn,
		GitHub:   req.Social.GitHub,
		Twitter:  req.Social.Twitter,
		Website:  req.Social.Website,
	}
	current.Namecard = Namecard{
		Username:    req.Namecard.Username,
		Tagline:     req.Namecard.Tagline,
		ShowEmail:   req.Namecard.ShowEmail,
		ShowPhone:   req.Namecard.ShowPhone,
		AccentColor: req.Namecard.AccentColor,
	}

	if err := s.repo.UpdateProfile(ctx, current); err != nil {
		return nil, err
	}

	return s.repo.GetByUID(ctx, uid)
}

// GetNamecard resolves a published card by its public username.
func (s *Service) GetNamecard(
	ctx context.Context,
	username string,
) (*User, error) {
	user, err := s.repo.GetByNamecardUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.Namecard.Username == "" {
		return nil, fmt.Errorf("get namecard: %w", core.ErrNotFound)
	}

	return user, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
