package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// StudentRepository handles database operations for student profiles
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// GetByID retrieves a student profile with its user
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.class_id, s.parent_id,
		       u.id, u.email, u.full_name, u.avatar, u.role
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.id = $1
	`

	var student models.Student
	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.UserID,
		&student.ClassID,
		&student.ParentID,
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Avatar,
		&user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	student.User = &user

	return &student, nil
}

// GetByUserEmail retrieves a student profile by its user's email address
func (r *StudentRepository) GetByUserEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.class_id, s.parent_id
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE u.email = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, email).Scan(
		&student.ID,
		&student.UserID,
		&student.ClassID,
		&student.ParentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student by email: %w", err)
	}

	return &student, nil
}

// GetUserID returns the owning user id of a student profile
func (r *StudentRepository) GetUserID(ctx context.Context, studentID int64) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM students WHERE id = $1`, studentID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, fmt.Errorf("error retrieving student user id: %w", err)
	}

	return userID, nil
}

// GetParentUserID returns the user id of the student's linked parent;
// apperrors.ErrParentNotFound when the student has no parent.
func (r *StudentRepository) GetParentUserID(ctx context.Context, studentID int64) (int64, error) {
	query := `
		SELECT p.user_id
		FROM students s
		JOIN parents p ON p.id = s.parent_id
		WHERE s.id = $1
	`

	var userID int64
	err := r.db.QueryRow(ctx, query, studentID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrParentNotFound
		}
		return 0, fmt.Errorf("error retrieving parent user id: %w", err)
	}

	return userID, nil
}

// LinkParent points a student profile at a parent profile
func (r *StudentRepository) LinkParent(ctx context.Context, studentID, parentID int64) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET parent_id = $1 WHERE id = $2`, parentID, studentID)
	if err != nil {
		return fmt.Errorf("error linking parent: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// GetByClassID retrieves all students of a class with their users
func (r *StudentRepository) GetByClassID(ctx context.Context, classID int64) ([]models.Student, error) {
	query := `
		SELECT s.id, s.user_id, s.class_id, s.parent_id,
		       u.id, u.email, u.full_name, u.avatar, u.role
		FROM students s
		JOIN users u ON u.id = s.user_id
		WHERE s.class_id = $1
		ORDER BY u.full_name
	`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		var user models.User
		if err := rows.Scan(
			&student.ID,
			&student.UserID,
			&student.ClassID,
			&student.ParentID,
			&user.ID,
			&user.Email,
			&user.FullName,
			&user.Avatar,
			&user.Role,
		); err != nil {
			return nil, err
		}
		student.User = &user
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
