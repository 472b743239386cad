package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	StudentRepository      *StudentRepository
	ClassRepository        *ClassRepository
	AttendanceRepository   *AttendanceRepository
	GradeRepository        *GradeRepository
	ExamRepository         *ExamRepository
	TimetableRepository    *TimetableRepository
	EnrollmentRepository   *EnrollmentRepository
	NotificationRepository *NotificationRepository
	DashboardRepository    *DashboardRepository
	AccessRepository       *AccessRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		StudentRepository:      NewStudentRepository(db),
		ClassRepository:        NewClassRepository(db),
		AttendanceRepository:   NewAttendanceRepository(db),
		GradeRepository:        NewGradeRepository(db),
		ExamRepository:         NewExamRepository(db),
		TimetableRepository:    NewTimetableRepository(db),
		EnrollmentRepository:   NewEnrollmentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		DashboardRepository:    NewDashboardRepository(db),
		AccessRepository:       NewAccessRepository(db),
	}
}
