package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/logger"
	"github.com/okandemir/schoolhub/internal/pkg/stats"
)

// DashboardStore is the read surface the dashboard views aggregate over.
type DashboardStore interface {
	CountUsersByRole(ctx context.Context, role models.Role) (int64, error)
	CountClasses(ctx context.Context) (int64, error)
	CountSubjects(ctx context.Context) (int64, error)
	RecentUsers(ctx context.Context, since time.Time, limit int) ([]models.UserOverview, error)
	RecentEnrollments(ctx context.Context, limit int) ([]models.EnrollmentOverview, error)
	ClassesByTeacher(ctx context.Context, teacherID int64) ([]models.ClassOverview, error)
	UpcomingExams(ctx context.Context, classIDs []int64, after time.Time, limit int) ([]models.ExamOverview, error)
	RecentAttendanceByClasses(ctx context.Context, classIDs []int64, limit int) ([]models.AttendanceOverview, error)
	TeacherTimetable(ctx context.Context, teacherID int64, limit int) ([]models.TimetableOverview, error)
	ClassTimetable(ctx context.Context, classID int64) ([]models.TimetableOverview, error)
	StudentDetail(ctx context.Context, studentID int64) (*models.StudentDetail, error)
	AttendanceStatusCounts(ctx context.Context, studentID int64) (map[string]int, error)
	AttendanceStatusCountsByStudents(ctx context.Context, studentIDs []int64) ([]models.StatusCount, error)
	RecentGradesByStudents(ctx context.Context, studentIDs []int64, limit int) ([]models.GradeOverview, error)
	SubjectsByClass(ctx context.Context, classID int64) ([]models.Subject, error)
	ChildrenByParent(ctx context.Context, parentID int64) ([]models.ChildOverview, error)
}

// DashboardService composes the role-specific dashboard views. Each view
// resolves its scoping rows first, then fans out the independent reads
// concurrently and composes only after every read has finished.
type DashboardService struct {
	store DashboardStore
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{
		store: store,
	}
}

// GetDashboard dispatches on the caller's role. Every known role yields a
// view; an unknown role is a validation error.
func (s *DashboardService) GetDashboard(ctx context.Context, caller models.Caller) (interface{}, error) {
	switch caller.Role {
	case models.RoleAdmin:
		return s.adminDashboard(ctx)
	case models.RoleTeacher:
		return s.teacherDashboard(ctx, caller)
	case models.RoleStudent:
		return s.studentDashboard(ctx, caller)
	case models.RoleParent:
		return s.parentDashboard(ctx, caller)
	default:
		return nil, apperrors.NewBadRequestError("Invalid role")
	}
}

func (s *DashboardService) adminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {
	var (
		dashboard   dto.AdminDashboard
		users       []models.UserOverview
		enrollments []models.EnrollmentOverview
	)
	weekAgo := time.Now().AddDate(0, 0, -7)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dashboard.Summary.TotalStudents, err = s.store.CountUsersByRole(gctx, models.RoleStudent)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Summary.TotalTeachers, err = s.store.CountUsersByRole(gctx, models.RoleTeacher)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Summary.TotalParents, err = s.store.CountUsersByRole(gctx, models.RoleParent)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Summary.TotalClasses, err = s.store.CountClasses(gctx)
		return err
	})
	g.Go(func() (err error) {
		dashboard.Summary.TotalSubjects, err = s.store.CountSubjects(gctx)
		return err
	})
	g.Go(func() (err error) {
		users, err = s.store.RecentUsers(gctx, weekAgo, 10)
		return err
	})
	g.Go(func() (err error) {
		enrollments, err = s.store.RecentEnrollments(gctx, 10)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("operation", "adminDashboard").Msg("Dashboard aggregation failed")
		return nil, err
	}

	dashboard.RecentActivity.NewUsers = orEmpty(users)
	dashboard.RecentActivity.NewEnrollments = orEmpty(enrollments)
	return &dashboard, nil
}

func (s *DashboardService) teacherDashboard(ctx context.Context, caller models.Caller) (*dto.TeacherDashboard, error) {
	teacherID, ok := caller.TeacherProfileID()
	if !ok {
		return nil, apperrors.NewForbiddenError("Access denied. Teacher profile not found.")
	}

	classes, err := s.store.ClassesByTeacher(ctx, teacherID)
	if err != nil {
		logger.Error().Err(err).Str("operation", "teacherDashboard").Msg("Dashboard aggregation failed")
		return nil, err
	}

	classIDs := make([]int64, 0, len(classes))
	var totalStudents int64
	for _, class := range classes {
		classIDs = append(classIDs, class.ID)
		totalStudents += class.StudentCount
	}

	var (
		exams      []models.ExamOverview
		attendance []models.AttendanceOverview
		timetable  []models.TimetableOverview
	)

	g, gctx := errgroup.WithContext(ctx)
	// Class-scoped reads are skipped entirely when the teacher has no
	// classes; the timetable read is teacher-scoped and always runs.
	if len(classIDs) > 0 {
		g.Go(func() (err error) {
			exams, err = s.store.UpcomingExams(gctx, classIDs, time.Now(), 5)
			return err
		})
		g.Go(func() (err error) {
			attendance, err = s.store.RecentAttendanceByClasses(gctx, classIDs, 5)
			return err
		})
	}
	g.Go(func() (err error) {
		timetable, err = s.store.TeacherTimetable(gctx, teacherID, 10)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("operation", "teacherDashboard").Msg("Dashboard aggregation failed")
		return nil, err
	}

	return &dto.TeacherDashboard{
		Summary: dto.TeacherSummary{
			TotalClasses:  len(classes),
			TotalStudents: totalStudents,
			UpcomingExams: len(exams),
		},
		MyClasses:        orEmpty(classes),
		UpcomingExams:    orEmpty(exams),
		RecentAttendance: orEmpty(attendance),
		Timetable:        orEmpty(timetable),
	}, nil
}

func (s *DashboardService) studentDashboard(ctx context.Context, caller models.Caller) (*dto.StudentDashboard, error) {
	studentID, ok := caller.StudentProfileID()
	if !ok {
		return nil, apperrors.NewForbiddenError("Access denied. Student profile not found.")
	}

	detail, err := s.store.StudentDetail(ctx, studentID)
	if err != nil {
		return nil, err
	}
	hasClass := detail.ClassID != nil

	var (
		statusCounts map[string]int
		grades       []models.GradeOverview
		exams        []models.ExamOverview
		timetable    []models.TimetableOverview
		subjects     []models.Subject
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		statusCounts, err = s.store.AttendanceStatusCounts(gctx, studentID)
		return err
	})
	g.Go(func() (err error) {
		grades, err = s.store.RecentGradesByStudents(gctx, []int64{studentID}, 5)
		return err
	})
	if hasClass {
		classID := *detail.ClassID
		g.Go(func() (err error) {
			exams, err = s.store.UpcomingExams(gctx, []int64{classID}, time.Now(), 5)
			return err
		})
		g.Go(func() (err error) {
			timetable, err = s.store.ClassTimetable(gctx, classID)
			return err
		})
		g.Go(func() (err error) {
			subjects, err = s.store.SubjectsByClass(gctx, classID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("operation", "studentDashboard").Msg("Dashboard aggregation failed")
		return nil, err
	}

	summary := stats.FromStatusCounts(statusCounts)

	return &dto.StudentDashboard{
		StudentInfo: *detail,
		Summary: dto.StudentSummary{
			AttendancePercentage: summary.Percentage(),
			TotalSubjects:        len(subjects),
			UpcomingExams:        len(exams),
			HasClass:             hasClass,
		},
		Attendance:    summary,
		RecentGrades:  orEmpty(grades),
		UpcomingExams: orEmpty(exams),
		Timetable:     orEmpty(timetable),
		Subjects:      orEmpty(subjects),
	}, nil
}

func (s *DashboardService) parentDashboard(ctx context.Context, caller models.Caller) (*dto.ParentDashboard, error) {
	parentID, ok := caller.ParentProfileID()
	if !ok {
		return nil, apperrors.NewForbiddenError("Access denied. Parent profile not found.")
	}

	children, err := s.store.ChildrenByParent(ctx, parentID)
	if err != nil {
		logger.Error().Err(err).Str("operation", "parentDashboard").Msg("Dashboard aggregation failed")
		return nil, err
	}

	childIDs := make([]int64, 0, len(children))
	classIDSet := make(map[int64]struct{})
	var classIDs []int64
	for _, child := range children {
		childIDs = append(childIDs, child.ID)
		if child.ClassID == nil {
			continue
		}
		if _, seen := classIDSet[*child.ClassID]; seen {
			continue
		}
		classIDSet[*child.ClassID] = struct{}{}
		classIDs = append(classIDs, *child.ClassID)
	}

	var (
		statusCounts []models.StatusCount
		grades       []models.GradeOverview
		exams        []models.ExamOverview
	)

	g, gctx := errgroup.WithContext(ctx)
	if len(childIDs) > 0 {
		g.Go(func() (err error) {
			statusCounts, err = s.store.AttendanceStatusCountsByStudents(gctx, childIDs)
			return err
		})
		g.Go(func() (err error) {
			grades, err = s.store.RecentGradesByStudents(gctx, childIDs, 10)
			return err
		})
	}
	if len(classIDs) > 0 {
		g.Go(func() (err error) {
			exams, err = s.store.UpcomingExams(gctx, classIDs, time.Now(), 5)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Str("operation", "parentDashboard").Msg("Dashboard aggregation failed")
		return nil, err
	}

	countsByChild := make(map[int64]map[string]int)
	for _, c := range statusCounts {
		if countsByChild[c.StudentID] == nil {
			countsByChild[c.StudentID] = make(map[string]int)
		}
		countsByChild[c.StudentID][string(c.Status)] = c.Count
	}

	withAttendance := make([]dto.ChildWithAttendance, 0, len(children))
	for _, child := range children {
		summary := stats.FromStatusCounts(countsByChild[child.ID])
		withAttendance = append(withAttendance, dto.ChildWithAttendance{
			ChildOverview:        child,
			AttendancePercentage: summary.Percentage(),
		})
	}

	return &dto.ParentDashboard{
		ParentInfo: dto.ParentInfo{
			FullName: caller.FullName,
			Email:    caller.Email,
		},
		Summary: dto.ParentSummary{
			TotalChildren:      len(children),
			TotalUpcomingExams: len(exams),
		},
		Children:      withAttendance,
		RecentGrades:  orEmpty(grades),
		UpcomingExams: orEmpty(exams),
	}, nil
}

// orEmpty keeps list fields as JSON arrays, never null
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
