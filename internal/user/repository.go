// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jdstudio/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByUID(ctx context.Context, uid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByNamecardUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, uid, role string) error
	UpdateStatus(ctx context.Context, uid, status string) error
	UpdateProjects(ctx context.Context, uid string, projects StringSlice) error
	UpdateProfile(ctx context.Context, user *User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	NamecardUsernameTaken(
		ctx context.Context,
		username, excludeUID string,
	) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const userColumns = `
	uid, email, display_name, role, status, assigned_projects,
	title, bio, phone, photo_url, social, namecard,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (
			uid, email, display_name, role, status, assigned_projects,
			social, namecard
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.UID,
		user.Email,
		user.DisplayName,
		user.Role,
		user.Status,
		user.AssignedProjects,
		user.Social,
		user.Namecard,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByUID(ctx context.Context, uid string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByNamecardUsername(
	ctx context.Context,
	username string,
) (*User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE namecard->>'username' = $1 AND status = $2`

	var user User
	err := r.db.GetContext(ctx, &user, query, username, StatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get namecard: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get namecard: %w", err)
	}

	return &user, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC`

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) UpdateRole(ctx context.Context, uid, role string) error {
	return r.exec(ctx, "update role",
		`UPDATE users SET role = $2, updated_at = NOW() WHERE uid = $1`,
		uid, role)
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	uid, status string,
) error {
	return r.exec(ctx, "update status",
		`UPDATE users SET status = $2, updated_at = NOW() WHERE uid = $1`,
		uid, status)
}

func (r *repository) UpdateProjects(
	ctx context.Context,
	uid string,
	projects StringSlice,
) error {
	return r.exec(ctx, "update projects",
		`UPDATE users SET assigned_projects = $2, updated_at = NOW()
		 WHERE uid = $1`,
		uid, projects)
}

func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	query := `
		UPDATE users SET
			display_name = $2,
			title = $3,
			bio = $4,
			phone = $5,
			photo_url = $6,
			social = $7,
			namecard = $8,
			updated_at = NOW()
		WHERE uid = $1`

	result, err := r.db.ExecContext(ctx, query,
		user.UID,
		user.DisplayName,
		user.Title,
		user.Bio,
		user.Phone,
		user.PhotoURL,
		user.Social,
		user.Namecard,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) EmailExists(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) NamecardUsernameTaken(
	ctx context.Context,
	username, excludeUID string,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE namecard->>'username' = $1 AND uid != $2
		)`

	var taken bool
	err := r.db.GetContext(ctx, &taken, query, username, excludeUID)
	if err != nil {
		return false, fmt.Errorf("check namecard username: %w", err)
	}

	return taken, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (r *repository) exec(
	ctx context.Context,
	op, query string,
	args ...any,
) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
