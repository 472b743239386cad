package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// fakePolicyStore answers probes from in-memory relation maps; anything not
// present reads as false, like a missing row would.
type fakePolicyStore struct {
	studentParents   map[[2]int64]bool // (studentID, parentID)
	attendanceOwners map[[2]int64]bool // (attendanceID, studentID)
	attendanceTeach  map[[2]int64]bool // (attendanceID, teacherID)
	gradeOwners      map[[2]int64]bool // (gradeID, studentID)
	gradeTeach       map[[2]int64]bool // (gradeID, teacherID)
	classTeachers    map[[2]int64]bool // (classID, teacherID)
	classStudents    map[[2]int64]bool // (studentID, classID)
	classParents     map[[2]int64]bool // (parentID, classID)
	err              error
}

func (f *fakePolicyStore) probe(m map[[2]int64]bool, a, b int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return m[[2]int64{a, b}], nil
}

func (f *fakePolicyStore) StudentHasParent(_ context.Context, studentID, parentID int64) (bool, error) {
	return f.probe(f.studentParents, studentID, parentID)
}
func (f *fakePolicyStore) AttendanceBelongsToStudent(_ context.Context, attendanceID, studentID int64) (bool, error) {
	return f.probe(f.attendanceOwners, attendanceID, studentID)
}
func (f *fakePolicyStore) AttendanceInTeacherClass(_ context.Context, attendanceID, teacherID int64) (bool, error) {
	return f.probe(f.attendanceTeach, attendanceID, teacherID)
}
func (f *fakePolicyStore) GradeBelongsToStudent(_ context.Context, gradeID, studentID int64) (bool, error) {
	return f.probe(f.gradeOwners, gradeID, studentID)
}
func (f *fakePolicyStore) GradeInTeacherExam(_ context.Context, gradeID, teacherID int64) (bool, error) {
	return f.probe(f.gradeTeach, gradeID, teacherID)
}
func (f *fakePolicyStore) ClassOwnedByTeacher(_ context.Context, classID, teacherID int64) (bool, error) {
	return f.probe(f.classTeachers, classID, teacherID)
}
func (f *fakePolicyStore) StudentInClass(_ context.Context, studentID, classID int64) (bool, error) {
	return f.probe(f.classStudents, studentID, classID)
}
func (f *fakePolicyStore) ParentHasChildInClass(_ context.Context, parentID, classID int64) (bool, error) {
	return f.probe(f.classParents, parentID, classID)
}

func newFakePolicyStore() *fakePolicyStore {
	return &fakePolicyStore{
		studentParents:   map[[2]int64]bool{},
		attendanceOwners: map[[2]int64]bool{},
		attendanceTeach:  map[[2]int64]bool{},
		gradeOwners:      map[[2]int64]bool{},
		gradeTeach:       map[[2]int64]bool{},
		classTeachers:    map[[2]int64]bool{},
		classStudents:    map[[2]int64]bool{},
		classParents:     map[[2]int64]bool{},
	}
}

func ptr(v int64) *int64 { return &v }

func adminCaller() models.Caller {
	return models.Caller{UserID: 1, Role: models.RoleAdmin}
}

func studentCaller(studentID int64) models.Caller {
	return models.Caller{UserID: 2, Role: models.RoleStudent, StudentID: ptr(studentID)}
}

func teacherCaller(teacherID int64) models.Caller {
	return models.Caller{UserID: 3, Role: models.RoleTeacher, TeacherID: ptr(teacherID)}
}

func parentCaller(parentID int64) models.Caller {
	return models.Caller{UserID: 4, Role: models.RoleParent, ParentID: ptr(parentID)}
}

func TestAuthorize(t *testing.T) {
	svc := NewAuthorizationService(newFakePolicyStore())

	assert.NoError(t, svc.Authorize(teacherCaller(1), models.RoleTeacher, models.RoleAdmin))
	assert.NoError(t, svc.Authorize(adminCaller(), models.RoleAdmin))

	err := svc.Authorize(studentCaller(1), models.RoleTeacher, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCheckOwnershipAdminOverride(t *testing.T) {
	// An empty store would deny everything; admin must permit regardless.
	svc := NewAuthorizationService(newFakePolicyStore())
	ctx := context.Background()

	for _, resourceType := range []string{
		ResourceStudent, ResourceParent, ResourceTeacher, ResourceAttendance, ResourceGrade,
	} {
		assert.NoError(t, svc.CheckOwnership(ctx, adminCaller(), resourceType, 99), resourceType)
	}
	assert.NoError(t, svc.CheckClassOwnership(ctx, adminCaller(), 99))
	assert.NoError(t, svc.CheckClassMembership(ctx, adminCaller(), 99))
}

func TestCheckOwnershipStudentResource(t *testing.T) {
	store := newFakePolicyStore()
	store.studentParents[[2]int64{10, 5}] = true
	svc := NewAuthorizationService(store)
	ctx := context.Background()

	// Students reach only their own profile.
	assert.NoError(t, svc.CheckOwnership(ctx, studentCaller(10), ResourceStudent, 10))
	assert.ErrorIs(t, svc.CheckOwnership(ctx, studentCaller(10), ResourceStudent, 11), apperrors.ErrPermissionDenied)

	// Parents reach linked children only.
	assert.NoError(t, svc.CheckOwnership(ctx, parentCaller(5), ResourceStudent, 10))
	assert.ErrorIs(t, svc.CheckOwnership(ctx, parentCaller(6), ResourceStudent, 10), apperrors.ErrPermissionDenied)

	// Teachers have no permit branch for student profiles.
	assert.ErrorIs(t, svc.CheckOwnership(ctx, teacherCaller(1), ResourceStudent, 10), apperrors.ErrPermissionDenied)
}

func TestCheckOwnershipProfileResources(t *testing.T) {
	svc := NewAuthorizationService(newFakePolicyStore())
	ctx := context.Background()

	assert.NoError(t, svc.CheckOwnership(ctx, parentCaller(5), ResourceParent, 5))
	assert.ErrorIs(t, svc.CheckOwnership(ctx, parentCaller(5), ResourceParent, 6), apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.CheckOwnership(ctx, teacherCaller(3), ResourceTeacher, 3))
	assert.ErrorIs(t, svc.CheckOwnership(ctx, teacherCaller(3), ResourceTeacher, 4), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CheckOwnership(ctx, studentCaller(1), ResourceTeacher, 3), apperrors.ErrPermissionDenied)
}

func TestCheckOwnershipRecords(t *testing.T) {
	store := newFakePolicyStore()
	store.attendanceOwners[[2]int64{100, 10}] = true
	store.attendanceTeach[[2]int64{100, 3}] = true
	store.gradeOwners[[2]int64{200, 10}] = true
	store.gradeTeach[[2]int64{200, 3}] = true
	svc := NewAuthorizationService(store)
	ctx := context.Background()

	assert.NoError(t, svc.CheckOwnership(ctx, studentCaller(10), ResourceAttendance, 100))
	assert.NoError(t, svc.CheckOwnership(ctx, teacherCaller(3), ResourceAttendance, 100))
	assert.ErrorIs(t, svc.CheckOwnership(ctx, studentCaller(11), ResourceAttendance, 100), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CheckOwnership(ctx, teacherCaller(4), ResourceAttendance, 100), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CheckOwnership(ctx, parentCaller(5), ResourceAttendance, 100), apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.CheckOwnership(ctx, studentCaller(10), ResourceGrade, 200))
	assert.NoError(t, svc.CheckOwnership(ctx, teacherCaller(3), ResourceGrade, 200))
	assert.ErrorIs(t, svc.CheckOwnership(ctx, studentCaller(11), ResourceGrade, 200), apperrors.ErrPermissionDenied)
}

func TestCheckOwnershipFailsClosed(t *testing.T) {
	svc := NewAuthorizationService(newFakePolicyStore())
	ctx := context.Background()

	// The resources do not exist at all; every non-admin caller is denied.
	callers := []models.Caller{
		studentCaller(10), teacherCaller(3), parentCaller(5),
	}
	for _, caller := range callers {
		for _, resourceType := range []string{
			ResourceStudent, ResourceAttendance, ResourceGrade,
		} {
			err := svc.CheckOwnership(ctx, caller, resourceType, 404)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "%s/%s", caller.Role, resourceType)
		}
	}
}

func TestCheckOwnershipMissingProfileDenies(t *testing.T) {
	svc := NewAuthorizationService(newFakePolicyStore())
	ctx := context.Background()

	noProfile := models.Caller{UserID: 9, Role: models.RoleStudent}
	assert.ErrorIs(t, svc.CheckOwnership(ctx, noProfile, ResourceStudent, 10), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CheckOwnership(ctx, noProfile, ResourceAttendance, 100), apperrors.ErrPermissionDenied)

	bareParent := models.Caller{UserID: 9, Role: models.RoleParent}
	assert.ErrorIs(t, svc.CheckOwnership(ctx, bareParent, ResourceStudent, 10), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CheckClassMembership(ctx, bareParent, 1), apperrors.ErrPermissionDenied)

	bareTeacher := models.Caller{UserID: 9, Role: models.RoleTeacher}
	assert.ErrorIs(t, svc.CheckClassOwnership(ctx, bareTeacher, 1), apperrors.ErrPermissionDenied)
}

func TestCheckOwnershipInvalidResourceType(t *testing.T) {
	svc := NewAuthorizationService(newFakePolicyStore())

	err := svc.CheckOwnership(context.Background(), studentCaller(10), "exam", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	assert.NotErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCheckOwnershipStoreError(t *testing.T) {
	store := newFakePolicyStore()
	store.err = errors.New("connection refused")
	svc := NewAuthorizationService(store)

	err := svc.CheckOwnership(context.Background(), parentCaller(5), ResourceStudent, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCheckClassOwnership(t *testing.T) {
	store := newFakePolicyStore()
	store.classTeachers[[2]int64{7, 3}] = true
	svc := NewAuthorizationService(store)
	ctx := context.Background()

	assert.NoError(t, svc.CheckClassOwnership(ctx, teacherCaller(3), 7))
	assert.ErrorIs(t, svc.CheckClassOwnership(ctx, teacherCaller(4), 7), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CheckClassOwnership(ctx, studentCaller(10), 7), apperrors.ErrPermissionDenied)
	assert.ErrorIs(t, svc.CheckClassOwnership(ctx, parentCaller(5), 7), apperrors.ErrPermissionDenied)
}

func TestCheckClassMembership(t *testing.T) {
	store := newFakePolicyStore()
	store.classStudents[[2]int64{10, 7}] = true
	store.classParents[[2]int64{5, 7}] = true
	svc := NewAuthorizationService(store)
	ctx := context.Background()

	// Teachers see any class.
	assert.NoError(t, svc.CheckClassMembership(ctx, teacherCaller(99), 7))

	assert.NoError(t, svc.CheckClassMembership(ctx, studentCaller(10), 7))
	assert.ErrorIs(t, svc.CheckClassMembership(ctx, studentCaller(11), 7), apperrors.ErrPermissionDenied)

	assert.NoError(t, svc.CheckClassMembership(ctx, parentCaller(5), 7))
	assert.ErrorIs(t, svc.CheckClassMembership(ctx, parentCaller(6), 7), apperrors.ErrPermissionDenied)
}

func TestCheckClassMembershipUsesCallerSnapshot(t *testing.T) {
	store := newFakePolicyStore()
	store.err = errors.New("store should not be reached")
	svc := NewAuthorizationService(store)
	ctx := context.Background()

	// A caller whose resolved class matches is permitted without a probe.
	caller := studentCaller(10)
	caller.StudentClassID = ptr(7)
	assert.NoError(t, svc.CheckClassMembership(ctx, caller, 7))

	// A non-matching snapshot still consults the store.
	assert.ErrorIs(t, svc.CheckClassMembership(ctx, caller, 8), store.err)
}
