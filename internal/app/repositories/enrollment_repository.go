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

// EnrollmentFilter narrows enrollment listings. Nil fields are ignored.
type EnrollmentFilter struct {
	StudentID *int64
	ClassID   *int64
}

// EnrollmentRepository handles database operations for enrollments. Writes
// keep students.class_id in step with the enrollments table inside one
// transaction.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

const enrollmentSelect = `
	SELECT e.id, e.student_id, e.class_id, e.created_at,
	       su.full_name, su.email, c.name, c.level
	FROM enrollments e
	JOIN students s ON s.id = e.student_id
	JOIN users su ON su.id = s.user_id
	JOIN classes c ON c.id = e.class_id
`

func scanEnrollmentRows(rows pgx.Rows) ([]models.Enrollment, error) {
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		var studentName, studentEmail, className, classLevel string
		if err := rows.Scan(
			&e.ID,
			&e.StudentID,
			&e.ClassID,
			&e.CreatedAt,
			&studentName,
			&studentEmail,
			&className,
			&classLevel,
		); err != nil {
			return nil, err
		}
		e.Student = &models.Student{
			ID:   e.StudentID,
			User: &models.User{FullName: studentName, Email: studentEmail},
		}
		e.Class = &models.Class{ID: e.ClassID, Name: className, Level: classLevel}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}

// List retrieves enrollments newest first
func (r *EnrollmentRepository) List(ctx context.Context, filter EnrollmentFilter) ([]models.Enrollment, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.StudentID != nil {
		where += fmt.Sprintf(" AND e.student_id = $%d", argPos)
		args = append(args, *filter.StudentID)
		argPos++
	}
	if filter.ClassID != nil {
		where += fmt.Sprintf(" AND e.class_id = $%d", argPos)
		args = append(args, *filter.ClassID)
		argPos++
	}

	rows, err := r.db.Query(ctx, enrollmentSelect+where+` ORDER BY e.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}

	return scanEnrollmentRows(rows)
}

// GetByID retrieves an enrollment with student and class context
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, enrollmentSelect+` WHERE e.id = $1`, id)
	if err != nil {
		return nil, err
	}

	enrollments, err := scanEnrollmentRows(rows)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	if len(enrollments) == 0 {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	return &enrollments[0], nil
}

// Create inserts the enrollment and points students.class_id at the class,
// in one transaction.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO enrollments (student_id, class_id)
			VALUES ($1, $2)
			RETURNING id, created_at
		`
		if err := tx.QueryRow(ctx, query,
			enrollment.StudentID, enrollment.ClassID,
		).Scan(&enrollment.ID, &enrollment.CreatedAt); err != nil {
			return err
		}

		cmdTag, err := tx.Exec(ctx,
			`UPDATE students SET class_id = $1 WHERE id = $2`,
			enrollment.ClassID, enrollment.StudentID)
		if err != nil {
			return fmt.Errorf("error updating student class: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		return nil
	})
}

// Delete removes the enrollment and clears students.class_id when it still
// points at the dropped class, in one transaction.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var studentID, classID int64
		err := tx.QueryRow(ctx,
			`DELETE FROM enrollments WHERE id = $1 RETURNING student_id, class_id`,
			id).Scan(&studentID, &classID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEnrollmentNotFound
			}
			return fmt.Errorf("error deleting enrollment: %w", err)
		}

		_, err = tx.Exec(ctx,
			`UPDATE students SET class_id = NULL WHERE id = $1 AND class_id = $2`,
			studentID, classID)
		if err != nil {
			return fmt.Errorf("error clearing student class: %w", err)
		}

		return nil
	})
}

// GetRecent retrieves the most recent enrollments with display names
func (r *EnrollmentRepository) GetRecent(ctx context.Context, limit int) ([]models.EnrollmentOverview, error) {
	query := `
		SELECT e.id, e.created_at, su.full_name, c.name
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN users su ON su.id = s.user_id
		JOIN classes c ON c.id = e.class_id
		ORDER BY e.created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recent []models.EnrollmentOverview
	for rows.Next() {
		var e models.EnrollmentOverview
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.StudentName, &e.ClassName); err != nil {
			return nil, err
		}
		recent = append(recent, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recent, nil
}
