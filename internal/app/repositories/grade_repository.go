package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// GradeFilter narrows grade listings. Nil fields are ignored.
type GradeFilter struct {
	StudentID *int64
	ExamID    *int64
	SubjectID *int64
}

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
	}
}

const gradeSelect = `
	SELECT g.id, g.exam_id, g.student_id, g.subject_id, g.marks,
	       e.name, e.date, sub.name, su.full_name
	FROM grades g
	JOIN exams e ON e.id = g.exam_id
	JOIN subjects sub ON sub.id = g.subject_id
	JOIN students s ON s.id = g.student_id
	JOIN users su ON su.id = s.user_id
`

func scanGradeRows(rows pgx.Rows) ([]models.Grade, error) {
	defer rows.Close()

	var grades []models.Grade
	for rows.Next() {
		var g models.Grade
		var exam models.Exam
		var subjectName, studentName string
		if err := rows.Scan(
			&g.ID,
			&g.ExamID,
			&g.StudentID,
			&g.SubjectID,
			&g.Marks,
			&exam.Name,
			&exam.Date,
			&subjectName,
			&studentName,
		); err != nil {
			return nil, err
		}
		exam.ID = g.ExamID
		g.Exam = &exam
		g.Subject = &models.Subject{ID: g.SubjectID, Name: subjectName}
		g.Student = &models.Student{ID: g.StudentID, User: &models.User{FullName: studentName}}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// List retrieves grades by exam date descending with the total count
func (r *GradeRepository) List(ctx context.Context, filter GradeFilter, offset, limit int) ([]models.Grade, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.StudentID != nil {
		where += fmt.Sprintf(" AND g.student_id = $%d", argPos)
		args = append(args, *filter.StudentID)
		argPos++
	}
	if filter.ExamID != nil {
		where += fmt.Sprintf(" AND g.exam_id = $%d", argPos)
		args = append(args, *filter.ExamID)
		argPos++
	}
	if filter.SubjectID != nil {
		where += fmt.Sprintf(" AND g.subject_id = $%d", argPos)
		args = append(args, *filter.SubjectID)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM grades g` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting grades: %w", err)
	}

	query := gradeSelect + where +
		fmt.Sprintf(" ORDER BY e.date DESC, g.id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	grades, err := scanGradeRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return grades, total, nil
}

// GetByID retrieves a grade with exam, subject and student context
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	rows, err := r.db.Query(ctx, gradeSelect+` WHERE g.id = $1`, id)
	if err != nil {
		return nil, err
	}

	grades, err := scanGradeRows(rows)
	if err != nil {
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	if len(grades) == 0 {
		return nil, apperrors.ErrGradeNotFound
	}

	return &grades[0], nil
}

// GetByStudentID retrieves a student's grades by exam date descending
func (r *GradeRepository) GetByStudentID(ctx context.Context, studentID int64) ([]models.Grade, error) {
	rows, err := r.db.Query(ctx,
		gradeSelect+` WHERE g.student_id = $1 ORDER BY e.date DESC`, studentID)
	if err != nil {
		return nil, err
	}

	return scanGradeRows(rows)
}

// GetByExamID retrieves an exam's grades ordered by student name
func (r *GradeRepository) GetByExamID(ctx context.Context, examID int64) ([]models.Grade, error) {
	rows, err := r.db.Query(ctx,
		gradeSelect+` WHERE g.exam_id = $1 ORDER BY su.full_name`, examID)
	if err != nil {
		return nil, err
	}

	return scanGradeRows(rows)
}

// Create inserts a new grade
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (exam_id, student_id, subject_id, marks)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		grade.ExamID, grade.StudentID, grade.SubjectID, grade.Marks,
	).Scan(&grade.ID)
	if err != nil {
		return err
	}

	return nil
}

// UpdateMarks changes the marks of an existing grade
func (r *GradeRepository) UpdateMarks(ctx context.Context, id int64, marks int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE grades SET marks = $1 WHERE id = $2`, marks, id)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}

// Delete deletes a grade by ID
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
