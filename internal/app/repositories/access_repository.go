package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AccessRepository answers the existence probes behind the authorization
// predicates. Every method is a single EXISTS query; a missing row reads as
// false, never as an error.
type AccessRepository struct {
	db *pgxpool.Pool
}

// NewAccessRepository creates a new access repository
func NewAccessRepository(db *pgxpool.Pool) *AccessRepository {
	return &AccessRepository{
		db: db,
	}
}

func (r *AccessRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking access: %w", err)
	}
	return exists, nil
}

// StudentHasParent checks whether the student is linked to the parent
func (r *AccessRepository) StudentHasParent(ctx context.Context, studentID, parentID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE id = $1 AND parent_id = $2)`,
		studentID, parentID)
}

// AttendanceBelongsToStudent checks whether the attendance record is the
// student's own.
func (r *AccessRepository) AttendanceBelongsToStudent(ctx context.Context, attendanceID, studentID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(SELECT 1 FROM attendances WHERE id = $1 AND student_id = $2)`,
		attendanceID, studentID)
}

// AttendanceInTeacherClass checks whether the attendance record belongs to
// a class taught by the teacher.
func (r *AccessRepository) AttendanceInTeacherClass(ctx context.Context, attendanceID, teacherID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM attendances a
			JOIN classes c ON c.id = a.class_id
			WHERE a.id = $1 AND c.teacher_id = $2)`,
		attendanceID, teacherID)
}

// GradeBelongsToStudent checks whether the grade is the student's own
func (r *AccessRepository) GradeBelongsToStudent(ctx context.Context, gradeID, studentID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(SELECT 1 FROM grades WHERE id = $1 AND student_id = $2)`,
		gradeID, studentID)
}

// GradeInTeacherExam checks whether the grade belongs to an exam set by the
// teacher.
func (r *AccessRepository) GradeInTeacherExam(ctx context.Context, gradeID, teacherID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM grades g
			JOIN exams e ON e.id = g.exam_id
			WHERE g.id = $1 AND e.teacher_id = $2)`,
		gradeID, teacherID)
}

// ClassOwnedByTeacher checks whether the class is taught by the teacher
func (r *AccessRepository) ClassOwnedByTeacher(ctx context.Context, classID, teacherID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(SELECT 1 FROM classes WHERE id = $1 AND teacher_id = $2)`,
		classID, teacherID)
}

// StudentInClass checks whether the student belongs to the class
func (r *AccessRepository) StudentInClass(ctx context.Context, studentID, classID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE id = $1 AND class_id = $2)`,
		studentID, classID)
}

// ParentHasChildInClass checks whether any child of the parent belongs to
// the class.
func (r *AccessRepository) ParentHasChildInClass(ctx context.Context, parentID, classID int64) (bool, error) {
	return r.exists(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE parent_id = $1 AND class_id = $2)`,
		parentID, classID)
}
