package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// fakeDashboardStore serves canned rows and records every read it is asked
// to perform, so tests can assert which queries a view issued.
type fakeDashboardStore struct {
	mu    sync.Mutex
	calls []string

	countsByRole map[models.Role]int64
	classCount   int64
	subjectCount int64
	users        []models.UserOverview
	enrollments  []models.EnrollmentOverview
	classes      []models.ClassOverview
	exams        []models.ExamOverview
	attendance   []models.AttendanceOverview
	timetable    []models.TimetableOverview
	student      *models.StudentDetail
	statusCounts map[string]int
	groupCounts  []models.StatusCount
	grades       []models.GradeOverview
	subjects     []models.Subject
	children     []models.ChildOverview

	lastExamClassIDs []int64
}

func (f *fakeDashboardStore) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeDashboardStore) called(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeDashboardStore) CountUsersByRole(_ context.Context, role models.Role) (int64, error) {
	f.record("CountUsersByRole")
	return f.countsByRole[role], nil
}
func (f *fakeDashboardStore) CountClasses(context.Context) (int64, error) {
	f.record("CountClasses")
	return f.classCount, nil
}
func (f *fakeDashboardStore) CountSubjects(context.Context) (int64, error) {
	f.record("CountSubjects")
	return f.subjectCount, nil
}
func (f *fakeDashboardStore) RecentUsers(_ context.Context, _ time.Time, _ int) ([]models.UserOverview, error) {
	f.record("RecentUsers")
	return f.users, nil
}
func (f *fakeDashboardStore) RecentEnrollments(_ context.Context, _ int) ([]models.EnrollmentOverview, error) {
	f.record("RecentEnrollments")
	return f.enrollments, nil
}
func (f *fakeDashboardStore) ClassesByTeacher(_ context.Context, _ int64) ([]models.ClassOverview, error) {
	f.record("ClassesByTeacher")
	return f.classes, nil
}
func (f *fakeDashboardStore) UpcomingExams(_ context.Context, classIDs []int64, _ time.Time, _ int) ([]models.ExamOverview, error) {
	f.record("UpcomingExams")
	f.mu.Lock()
	f.lastExamClassIDs = classIDs
	f.mu.Unlock()
	return f.exams, nil
}
func (f *fakeDashboardStore) RecentAttendanceByClasses(_ context.Context, _ []int64, _ int) ([]models.AttendanceOverview, error) {
	f.record("RecentAttendanceByClasses")
	return f.attendance, nil
}
func (f *fakeDashboardStore) TeacherTimetable(_ context.Context, _ int64, _ int) ([]models.TimetableOverview, error) {
	f.record("TeacherTimetable")
	return f.timetable, nil
}
func (f *fakeDashboardStore) ClassTimetable(_ context.Context, _ int64) ([]models.TimetableOverview, error) {
	f.record("ClassTimetable")
	return f.timetable, nil
}
func (f *fakeDashboardStore) StudentDetail(_ context.Context, _ int64) (*models.StudentDetail, error) {
	f.record("StudentDetail")
	if f.student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return f.student, nil
}
func (f *fakeDashboardStore) AttendanceStatusCounts(_ context.Context, _ int64) (map[string]int, error) {
	f.record("AttendanceStatusCounts")
	return f.statusCounts, nil
}
func (f *fakeDashboardStore) AttendanceStatusCountsByStudents(_ context.Context, _ []int64) ([]models.StatusCount, error) {
	f.record("AttendanceStatusCountsByStudents")
	return f.groupCounts, nil
}
func (f *fakeDashboardStore) RecentGradesByStudents(_ context.Context, _ []int64, _ int) ([]models.GradeOverview, error) {
	f.record("RecentGradesByStudents")
	return f.grades, nil
}
func (f *fakeDashboardStore) SubjectsByClass(_ context.Context, _ int64) ([]models.Subject, error) {
	f.record("SubjectsByClass")
	return f.subjects, nil
}
func (f *fakeDashboardStore) ChildrenByParent(_ context.Context, _ int64) ([]models.ChildOverview, error) {
	f.record("ChildrenByParent")
	return f.children, nil
}

func ptr(v int64) *int64 { return &v }

func TestGetDashboardDispatchesEveryRole(t *testing.T) {
	store := &fakeDashboardStore{
		countsByRole: map[models.Role]int64{},
		student:      &models.StudentDetail{ID: 10},
	}
	svc := NewDashboardService(store)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller models.Caller
	}{
		{"admin", models.Caller{Role: models.RoleAdmin}},
		{"teacher", models.Caller{Role: models.RoleTeacher, TeacherID: ptr(3)}},
		{"student", models.Caller{Role: models.RoleStudent, StudentID: ptr(10)}},
		{"parent", models.Caller{Role: models.RoleParent, ParentID: ptr(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.GetDashboard(ctx, tt.caller)
			require.NoError(t, err)
			assert.NotNil(t, view)
		})
	}
}

func TestGetDashboardUnknownRole(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardStore{})

	view, err := svc.GetDashboard(context.Background(), models.Caller{Role: "SUPERVISOR"})
	assert.Nil(t, view)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetDashboardMissingProfileDenied(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardStore{})
	ctx := context.Background()

	for _, role := range []models.Role{models.RoleTeacher, models.RoleStudent, models.RoleParent} {
		_, err := svc.GetDashboard(ctx, models.Caller{Role: role})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, string(role))
	}
}

func TestAdminDashboard(t *testing.T) {
	store := &fakeDashboardStore{
		countsByRole: map[models.Role]int64{
			models.RoleStudent: 120,
			models.RoleTeacher: 8,
			models.RoleParent:  90,
		},
		classCount:   6,
		subjectCount: 24,
	}
	svc := NewDashboardService(store)

	view, err := svc.GetDashboard(context.Background(), models.Caller{Role: models.RoleAdmin})
	require.NoError(t, err)

	dashboard, ok := view.(*dto.AdminDashboard)
	require.True(t, ok)
	assert.Equal(t, int64(120), dashboard.Summary.TotalStudents)
	assert.Equal(t, int64(8), dashboard.Summary.TotalTeachers)
	assert.Equal(t, int64(90), dashboard.Summary.TotalParents)
	assert.Equal(t, int64(6), dashboard.Summary.TotalClasses)
	assert.Equal(t, int64(24), dashboard.Summary.TotalSubjects)
	assert.NotNil(t, dashboard.RecentActivity.NewUsers)
	assert.NotNil(t, dashboard.RecentActivity.NewEnrollments)
}

func TestTeacherDashboardZeroClasses(t *testing.T) {
	store := &fakeDashboardStore{}
	svc := NewDashboardService(store)

	view, err := svc.GetDashboard(context.Background(),
		models.Caller{Role: models.RoleTeacher, TeacherID: ptr(3)})
	require.NoError(t, err)

	dashboard := view.(*dto.TeacherDashboard)
	assert.Equal(t, 0, dashboard.Summary.TotalClasses)
	assert.Empty(t, dashboard.UpcomingExams)
	assert.Empty(t, dashboard.RecentAttendance)
	assert.NotNil(t, dashboard.UpcomingExams)
	assert.NotNil(t, dashboard.RecentAttendance)

	// No class-scoped read may be attempted without classes.
	assert.Zero(t, store.called("UpcomingExams"))
	assert.Zero(t, store.called("RecentAttendanceByClasses"))
	assert.Equal(t, 1, store.called("TeacherTimetable"))
}

func TestTeacherDashboardAggregates(t *testing.T) {
	store := &fakeDashboardStore{
		classes: []models.ClassOverview{
			{ID: 1, Name: "5-A", StudentCount: 20},
			{ID: 2, Name: "5-B", StudentCount: 17},
		},
		exams: []models.ExamOverview{{ID: 1, Name: "Midterm"}},
	}
	svc := NewDashboardService(store)

	view, err := svc.GetDashboard(context.Background(),
		models.Caller{Role: models.RoleTeacher, TeacherID: ptr(3)})
	require.NoError(t, err)

	dashboard := view.(*dto.TeacherDashboard)
	assert.Equal(t, 2, dashboard.Summary.TotalClasses)
	assert.Equal(t, int64(37), dashboard.Summary.TotalStudents)
	assert.Equal(t, 1, dashboard.Summary.UpcomingExams)
	assert.ElementsMatch(t, []int64{1, 2}, store.lastExamClassIDs)
}

func TestStudentDashboardWithoutClass(t *testing.T) {
	store := &fakeDashboardStore{
		student:      &models.StudentDetail{ID: 10, ClassID: nil},
		statusCounts: map[string]int{},
	}
	svc := NewDashboardService(store)

	view, err := svc.GetDashboard(context.Background(),
		models.Caller{Role: models.RoleStudent, StudentID: ptr(10)})
	require.NoError(t, err)

	dashboard := view.(*dto.StudentDashboard)
	assert.False(t, dashboard.Summary.HasClass)
	assert.Equal(t, 0, dashboard.Summary.AttendancePercentage)
	assert.NotNil(t, dashboard.Subjects)
	assert.NotNil(t, dashboard.UpcomingExams)
	assert.NotNil(t, dashboard.Timetable)
	assert.Empty(t, dashboard.Subjects)
	assert.Empty(t, dashboard.UpcomingExams)
	assert.Empty(t, dashboard.Timetable)

	// Class-scoped reads are skipped entirely for classless students.
	assert.Zero(t, store.called("UpcomingExams"))
	assert.Zero(t, store.called("ClassTimetable"))
	assert.Zero(t, store.called("SubjectsByClass"))
}

func TestStudentDashboardWithClass(t *testing.T) {
	store := &fakeDashboardStore{
		student: &models.StudentDetail{ID: 10, ClassID: ptr(7)},
		statusCounts: map[string]int{
			"PRESENT": 9,
			"ABSENT":  1,
		},
		subjects: []models.Subject{{ID: 1, Name: "Mathematics"}},
		exams:    []models.ExamOverview{{ID: 1}, {ID: 2}},
	}
	svc := NewDashboardService(store)

	view, err := svc.GetDashboard(context.Background(),
		models.Caller{Role: models.RoleStudent, StudentID: ptr(10)})
	require.NoError(t, err)

	dashboard := view.(*dto.StudentDashboard)
	assert.True(t, dashboard.Summary.HasClass)
	assert.Equal(t, 90, dashboard.Summary.AttendancePercentage)
	assert.Equal(t, 1, dashboard.Summary.TotalSubjects)
	assert.Equal(t, 2, dashboard.Summary.UpcomingExams)
	assert.Equal(t, 9, dashboard.Attendance.Present)
	assert.Equal(t, 10, dashboard.Attendance.Total)
}

func TestStudentDashboardMissingRow(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardStore{})

	_, err := svc.GetDashboard(context.Background(),
		models.Caller{Role: models.RoleStudent, StudentID: ptr(10)})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestParentDashboardFiltersClassIDs(t *testing.T) {
	store := &fakeDashboardStore{
		children: []models.ChildOverview{
			{ID: 10, ClassID: ptr(7), FullName: "First Child"},
			{ID: 11, ClassID: nil, FullName: "Second Child"},
		},
		groupCounts: []models.StatusCount{
			{StudentID: 10, Status: models.AttendancePresent, Count: 3},
			{StudentID: 10, Status: models.AttendanceAbsent, Count: 1},
		},
	}
	svc := NewDashboardService(store)

	view, err := svc.GetDashboard(context.Background(),
		models.Caller{Role: models.RoleParent, ParentID: ptr(5)})
	require.NoError(t, err)

	dashboard := view.(*dto.ParentDashboard)
	assert.Equal(t, 2, dashboard.Summary.TotalChildren)

	// Nil class ids are filtered and duplicates collapsed before the exam
	// read, which runs exactly once over the remaining set.
	assert.Equal(t, 1, store.called("UpcomingExams"))
	assert.Equal(t, []int64{7}, store.lastExamClassIDs)

	// Each child's percentage derives from its own records only.
	require.Len(t, dashboard.Children, 2)
	assert.Equal(t, 75, dashboard.Children[0].AttendancePercentage)
	assert.Equal(t, 0, dashboard.Children[1].AttendancePercentage)
}

func TestParentDashboardNoChildren(t *testing.T) {
	store := &fakeDashboardStore{}
	svc := NewDashboardService(store)

	view, err := svc.GetDashboard(context.Background(),
		models.Caller{Role: models.RoleParent, ParentID: ptr(5)})
	require.NoError(t, err)

	dashboard := view.(*dto.ParentDashboard)
	assert.Equal(t, 0, dashboard.Summary.TotalChildren)
	assert.NotNil(t, dashboard.Children)
	assert.Zero(t, store.called("UpcomingExams"))
	assert.Zero(t, store.called("AttendanceStatusCountsByStudents"))
	assert.Zero(t, store.called("RecentGradesByStudents"))
}
