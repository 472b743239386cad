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

// ClassRepository handles database operations for classes and subjects
type ClassRepository struct {
	db *pgxpool.Pool
}

// NewClassRepository creates a new class repository
func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{
		db: db,
	}
}

// GetAll retrieves every class with its teacher and enrolled student count
func (r *ClassRepository) GetAll(ctx context.Context) ([]models.Class, error) {
	query := `
		SELECT c.id, c.name, c.level, c.teacher_id,
		       t.id, t.user_id, u.full_name, u.email,
		       (SELECT COUNT(*) FROM students s WHERE s.class_id = c.id)
		FROM classes c
		LEFT JOIN teachers t ON t.id = c.teacher_id
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var class models.Class
		var teacherID, teacherUserID *int64
		var teacherName, teacherEmail *string
		var count int64
		if err := rows.Scan(
			&class.ID,
			&class.Name,
			&class.Level,
			&class.TeacherID,
			&teacherID,
			&teacherUserID,
			&teacherName,
			&teacherEmail,
			&count,
		); err != nil {
			return nil, err
		}
		if teacherID != nil {
			class.Teacher = &models.Teacher{
				ID:     *teacherID,
				UserID: *teacherUserID,
				User: &models.User{
					ID:       *teacherUserID,
					Email:    *teacherEmail,
					FullName: *teacherName,
				},
			}
		}
		class.StudentCount = &count
		classes = append(classes, class)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// GetByID retrieves a class with its teacher
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	query := `
		SELECT c.id, c.name, c.level, c.teacher_id,
		       t.id, t.user_id, u.full_name, u.email
		FROM classes c
		LEFT JOIN teachers t ON t.id = c.teacher_id
		LEFT JOIN users u ON u.id = t.user_id
		WHERE c.id = $1
	`

	var class models.Class
	var teacherID, teacherUserID *int64
	var teacherName, teacherEmail *string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&class.ID,
		&class.Name,
		&class.Level,
		&class.TeacherID,
		&teacherID,
		&teacherUserID,
		&teacherName,
		&teacherEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	if teacherID != nil {
		class.Teacher = &models.Teacher{
			ID:     *teacherID,
			UserID: *teacherUserID,
			User: &models.User{
				ID:       *teacherUserID,
				Email:    *teacherEmail,
				FullName: *teacherName,
			},
		}
	}

	return &class, nil
}

// GetSubjectsByClassID retrieves the subjects taught in a class
func (r *ClassRepository) GetSubjectsByClassID(ctx context.Context, classID int64) ([]models.Subject, error) {
	query := `
		SELECT id, name, code, class_id
		FROM subjects
		WHERE class_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Code, &subject.ClassID); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// Exists checks if a class exists by ID
func (r *ClassRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking class existence: %w", err)
	}

	return exists, nil
}
