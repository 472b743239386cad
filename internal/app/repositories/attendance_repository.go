package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/helpers"
)

// AttendanceFilter narrows attendance listings. Nil fields are ignored.
type AttendanceFilter struct {
	ClassID   *int64
	StudentID *int64
	Date      *time.Time
}

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

const attendanceSelect = `
	SELECT a.id, a.student_id, a.class_id, a.date, a.status,
	       su.full_name, c.name
	FROM attendances a
	JOIN students s ON s.id = a.student_id
	JOIN users su ON su.id = s.user_id
	JOIN classes c ON c.id = a.class_id
`

func scanAttendanceRows(rows pgx.Rows) ([]models.Attendance, error) {
	defer rows.Close()

	var records []models.Attendance
	for rows.Next() {
		var a models.Attendance
		var studentName, className string
		if err := rows.Scan(
			&a.ID,
			&a.StudentID,
			&a.ClassID,
			&a.Date,
			&a.Status,
			&studentName,
			&className,
		); err != nil {
			return nil, err
		}
		a.Student = &models.Student{ID: a.StudentID, User: &models.User{FullName: studentName}}
		a.Class = &models.Class{ID: a.ClassID, Name: className}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// List retrieves attendance records newest first with the total count
func (r *AttendanceRepository) List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]models.Attendance, int64, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	argPos := 1

	if filter.ClassID != nil {
		where += fmt.Sprintf(" AND a.class_id = $%d", argPos)
		args = append(args, *filter.ClassID)
		argPos++
	}
	if filter.StudentID != nil {
		where += fmt.Sprintf(" AND a.student_id = $%d", argPos)
		args = append(args, *filter.StudentID)
		argPos++
	}
	if filter.Date != nil {
		start, end := helpers.DayWindow(*filter.Date)
		where += fmt.Sprintf(" AND a.date >= $%d AND a.date < $%d", argPos, argPos+1)
		args = append(args, start, end)
		argPos += 2
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting attendance: %w", err)
	}

	query := attendanceSelect + where +
		fmt.Sprintf(" ORDER BY a.date DESC, a.id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	records, err := scanAttendanceRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// GetByID retrieves an attendance record with display names
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	rows, err := r.db.Query(ctx, attendanceSelect+` WHERE a.id = $1`, id)
	if err != nil {
		return nil, err
	}

	records, err := scanAttendanceRows(rows)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance: %w", err)
	}
	if len(records) == 0 {
		return nil, apperrors.ErrAttendanceNotFound
	}

	return &records[0], nil
}

// GetByStudentID retrieves a student's attendance newest first, optionally
// bounded to [from, to].
func (r *AttendanceRepository) GetByStudentID(ctx context.Context, studentID int64, from, to *time.Time) ([]models.Attendance, error) {
	where := ` WHERE a.student_id = $1`
	args := []interface{}{studentID}
	argPos := 2

	if from != nil {
		where += fmt.Sprintf(" AND a.date >= $%d", argPos)
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		where += fmt.Sprintf(" AND a.date <= $%d", argPos)
		args = append(args, *to)
		argPos++
	}

	rows, err := r.db.Query(ctx, attendanceSelect+where+` ORDER BY a.date DESC`, args...)
	if err != nil {
		return nil, err
	}

	return scanAttendanceRows(rows)
}

// GetByClassID retrieves a class's attendance newest first, optionally for a
// single day.
func (r *AttendanceRepository) GetByClassID(ctx context.Context, classID int64, date *time.Time) ([]models.Attendance, error) {
	where := ` WHERE a.class_id = $1`
	args := []interface{}{classID}

	if date != nil {
		start, end := helpers.DayWindow(*date)
		where += ` AND a.date >= $2 AND a.date < $3`
		args = append(args, start, end)
	}

	rows, err := r.db.Query(ctx, attendanceSelect+where+` ORDER BY a.date DESC`, args...)
	if err != nil {
		return nil, err
	}

	return scanAttendanceRows(rows)
}

// GetStatusesByStudentID retrieves only the status column of a student's
// records, for summarization.
func (r *AttendanceRepository) GetStatusesByStudentID(ctx context.Context, studentID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status FROM attendances WHERE student_id = $1`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []string
	for rows.Next() {
		var status string
		if err := rows.Scan(&status); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// ExistsForStudentOnDate checks if the student already has a record within
// the day of date.
func (r *AttendanceRepository) ExistsForStudentOnDate(ctx context.Context, studentID int64, date time.Time) (bool, error) {
	start, end := helpers.DayWindow(date)

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM attendances
		 WHERE student_id = $1 AND date >= $2 AND date < $3)`,
		studentID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking attendance existence: %w", err)
	}

	return exists, nil
}

// Create inserts a new attendance record
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	query := `
		INSERT INTO attendances (student_id, class_id, date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		attendance.StudentID, attendance.ClassID, attendance.Date, attendance.Status,
	).Scan(&attendance.ID)
	if err != nil {
		return err
	}

	return nil
}

// UpdateStatus changes the status of an existing record
func (r *AttendanceRepository) UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE attendances SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating attendance: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}
