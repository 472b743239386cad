package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// DashboardRepository serves the read queries of the dashboard views. It
// reuses the exam and timetable repositories for the overviews they already
// shape and owns the remaining join queries itself.
type DashboardRepository struct {
	db         *pgxpool.Pool
	exams      *ExamRepository
	timetables *TimetableRepository
}

// NewDashboardRepository creates a new dashboard repository
func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{
		db:         db,
		exams:      NewExamRepository(db),
		timetables: NewTimetableRepository(db),
	}
}

// CountUsersByRole counts user accounts with the given role
func (r *DashboardRepository) CountUsersByRole(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// CountClasses counts all classes
func (r *DashboardRepository) CountClasses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting classes: %w", err)
	}
	return count, nil
}

// CountSubjects counts all subjects
func (r *DashboardRepository) CountSubjects(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM subjects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting subjects: %w", err)
	}
	return count, nil
}

// RecentUsers retrieves users registered at or after since, newest first
func (r *DashboardRepository) RecentUsers(ctx context.Context, since time.Time, limit int) ([]models.UserOverview, error) {
	query := `
		SELECT id, full_name, email, role, created_at
		FROM users
		WHERE created_at >= $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, since, limit)
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

// RecentEnrollments retrieves the newest enrollments with display names
func (r *DashboardRepository) RecentEnrollments(ctx context.Context, limit int) ([]models.EnrollmentOverview, error) {
	return NewEnrollmentRepository(r.db).GetRecent(ctx, limit)
}

// ClassesByTeacher retrieves a teacher's classes with student counts
func (r *DashboardRepository) ClassesByTeacher(ctx context.Context, teacherID int64) ([]models.ClassOverview, error) {
	query := `
		SELECT c.id, c.name, c.level,
		       (SELECT COUNT(*) FROM students s WHERE s.class_id = c.id)
		FROM classes c
		WHERE c.teacher_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.Query(ctx, query, teacherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.ClassOverview
	for rows.Next() {
		var c models.ClassOverview
		if err := rows.Scan(&c.ID, &c.Name, &c.Level, &c.StudentCount); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return classes, nil
}

// UpcomingExams retrieves exams at or after "after" for the given classes
func (r *DashboardRepository) UpcomingExams(ctx context.Context, classIDs []int64, after time.Time, limit int) ([]models.ExamOverview, error) {
	return r.exams.GetUpcomingByClassIDs(ctx, classIDs, after, limit)
}

// RecentAttendanceByClasses retrieves the newest attendance rows of the
// given classes with display names.
func (r *DashboardRepository) RecentAttendanceByClasses(ctx context.Context, classIDs []int64, limit int) ([]models.AttendanceOverview, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT a.id, a.date, a.status, su.full_name, c.name
		FROM attendances a
		JOIN students s ON s.id = a.student_id
		JOIN users su ON su.id = s.user_id
		JOIN classes c ON c.id = a.class_id
		WHERE a.class_id = ANY($1)
		ORDER BY a.date DESC, a.id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, classIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AttendanceOverview
	for rows.Next() {
		var a models.AttendanceOverview
		if err := rows.Scan(&a.ID, &a.Date, &a.Status, &a.StudentName, &a.ClassName); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// TeacherTimetable retrieves a teacher's timetable slots
func (r *DashboardRepository) TeacherTimetable(ctx context.Context, teacherID int64, limit int) ([]models.TimetableOverview, error) {
	return r.timetables.GetByTeacherID(ctx, teacherID, limit)
}

// ClassTimetable retrieves a class's timetable slots
func (r *DashboardRepository) ClassTimetable(ctx context.Context, classID int64) ([]models.TimetableOverview, error) {
	return r.timetables.GetByClassID(ctx, classID)
}

// StudentDetail retrieves the student header of the student dashboard:
// profile plus class, class teacher and parent display fields.
func (r *DashboardRepository) StudentDetail(ctx context.Context, studentID int64) (*models.StudentDetail, error) {
	query := `
		SELECT s.id, s.class_id, su.full_name, su.email,
		       c.name, c.level, tu.full_name, pu.full_name, pu.email
		FROM students s
		JOIN users su ON su.id = s.user_id
		LEFT JOIN classes c ON c.id = s.class_id
		LEFT JOIN teachers t ON t.id = c.teacher_id
		LEFT JOIN users tu ON tu.id = t.user_id
		LEFT JOIN parents p ON p.id = s.parent_id
		LEFT JOIN users pu ON pu.id = p.user_id
		WHERE s.id = $1
	`

	var detail models.StudentDetail
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&detail.ID,
		&detail.ClassID,
		&detail.FullName,
		&detail.Email,
		&detail.ClassName,
		&detail.ClassLevel,
		&detail.TeacherName,
		&detail.ParentName,
		&detail.ParentEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student detail: %w", err)
	}

	return &detail, nil
}

// AttendanceStatusCounts groups one student's attendance by status
func (r *DashboardRepository) AttendanceStatusCounts(ctx context.Context, studentID int64) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM attendances
		WHERE student_id = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// AttendanceStatusCountsByStudents groups attendance by (student, status)
// over the given students.
func (r *DashboardRepository) AttendanceStatusCountsByStudents(ctx context.Context, studentIDs []int64) ([]models.StatusCount, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT student_id, status, COUNT(*)
		FROM attendances
		WHERE student_id = ANY($1)
		GROUP BY student_id, status
	`

	rows, err := r.db.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.StatusCount
	for rows.Next() {
		var c models.StatusCount
		if err := rows.Scan(&c.StudentID, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}

// RecentGradesByStudents retrieves the newest grades of the given students
// by exam date descending.
func (r *DashboardRepository) RecentGradesByStudents(ctx context.Context, studentIDs []int64, limit int) ([]models.GradeOverview, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT g.id, g.marks, e.name, e.date, sub.name, su.full_name
		FROM grades g
		JOIN exams e ON e.id = g.exam_id
		JOIN subjects sub ON sub.id = g.subject_id
		JOIN students s ON s.id = g.student_id
		JOIN users su ON su.id = s.user_id
		WHERE g.student_id = ANY($1)
		ORDER BY e.date DESC, g.id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, studentIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grades []models.GradeOverview
	for rows.Next() {
		var g models.GradeOverview
		if err := rows.Scan(&g.ID, &g.Marks, &g.ExamName, &g.ExamDate, &g.SubjectName, &g.StudentName); err != nil {
			return nil, err
		}
		grades = append(grades, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grades, nil
}

// SubjectsByClass retrieves the subjects of a class
func (r *DashboardRepository) SubjectsByClass(ctx context.Context, classID int64) ([]models.Subject, error) {
	return NewClassRepository(r.db).GetSubjectsByClassID(ctx, classID)
}

// ChildrenByParent retrieves a parent's children with class display fields
func (r *DashboardRepository) ChildrenByParent(ctx context.Context, parentID int64) ([]models.ChildOverview, error) {
	query := `
		SELECT s.id, s.class_id, su.full_name, su.email, c.name, c.level
		FROM students s
		JOIN users su ON su.id = s.user_id
		LEFT JOIN classes c ON c.id = s.class_id
		WHERE s.parent_id = $1
		ORDER BY su.full_name
	`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []models.ChildOverview
	for rows.Next() {
		var c models.ChildOverview
		if err := rows.Scan(&c.ID, &c.ClassID, &c.FullName, &c.Email, &c.ClassName, &c.ClassLevel); err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return children, nil
}
