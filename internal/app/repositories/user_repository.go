package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/db"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// UserRepository handles database operations for users and their role profiles
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// CreateWithProfile creates a user and its role profile row in a single
// transaction. On success user.ID and the returned profile ID are set.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *models.User) (profileID int64, err error) {
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO users (email, password, full_name, avatar, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`
		if err := tx.QueryRow(ctx, query,
			user.Email, user.Password, user.FullName, user.Avatar, user.Role,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}

		switch user.Role {
		case models.RoleStudent:
			return tx.QueryRow(ctx,
				`INSERT INTO students (user_id) VALUES ($1) RETURNING id`,
				user.ID).Scan(&profileID)
		case models.RoleTeacher:
			return tx.QueryRow(ctx,
				`INSERT INTO teachers (user_id) VALUES ($1) RETURNING id`,
				user.ID).Scan(&profileID)
		case models.RoleParent:
			return tx.QueryRow(ctx,
				`INSERT INTO parents (user_id) VALUES ($1) RETURNING id`,
				user.ID).Scan(&profileID)
		case models.RoleAdmin:
			return nil
		default:
			return apperrors.ErrInvalidRole
		}
	})
	if err != nil {
		return 0, err
	}
	return profileID, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password, full_name, avatar, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.Avatar,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password, full_name, avatar, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.Avatar,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return &user, nil
}

// EmailExists checks if an email already exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// UpdateProfile updates a user's basic profile information
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, fullName string, avatar *string) error {
	query := `
		UPDATE users
		SET full_name = $1, avatar = $2, updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, fullName, avatar, userID)
	if err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ResolveCaller loads the authenticated caller's identity together with its
// role profile IDs in one query. Profile columns are NULL for roles without
// the matching profile row.
func (r *UserRepository) ResolveCaller(ctx context.Context, userID int64) (*models.Caller, error) {
	query := `
		SELECT u.id, u.email, u.full_name, u.role,
		       s.id, s.class_id, t.id, p.id
		FROM users u
		LEFT JOIN students s ON s.user_id = u.id
		LEFT JOIN teachers t ON t.user_id = u.id
		LEFT JOIN parents p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var caller models.Caller
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&caller.UserID,
		&caller.Email,
		&caller.FullName,
		&caller.Role,
		&caller.StudentID,
		&caller.StudentClassID,
		&caller.TeacherID,
		&caller.ParentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error resolving caller: %w", err)
	}

	return &caller, nil
}

// GetParentProfileIDByEmail returns the parent profile id of the user with
// the given email
func (r *UserRepository) GetParentProfileIDByEmail(ctx context.Context, email string) (int64, error) {
	query := `
		SELECT p.id
		FROM parents p
		JOIN users u ON u.id = p.user_id
		WHERE u.email = $1
	`

	var parentID int64
	err := r.db.QueryRow(ctx, query, email).Scan(&parentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrParentNotFound
		}
		return 0, fmt.Errorf("error retrieving parent by email: %w", err)
	}

	return parentID, nil
}

// CountByRole counts users having the given role
func (r *UserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users by role: %w", err)
	}

	return count, nil
}

// GetRecent retrieves the most recently created users
func (r *UserRepository) GetRecent(ctx context.Context, limit int) ([]models.UserOverview, error) {
	query := `
		SELECT id, full_name, email, role, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.UserOverview
	for rows.Next() {
		var u models.UserOverview
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// GetAdminUserIDs retrieves the user IDs of every admin account
func (r *UserRepository) GetAdminUserIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM users WHERE role = $1`, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
