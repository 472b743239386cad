package auth

import (
	"context"
	"fmt"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// Resource types accepted by CheckOwnership.
const (
	ResourceStudent    = "student"
	ResourceParent     = "parent"
	ResourceTeacher    = "teacher"
	ResourceAttendance = "attendance"
	ResourceGrade      = "grade"
)

// PolicyStore answers the existence probes the ownership and membership
// predicates need. A missing row reads as false.
type PolicyStore interface {
	StudentHasParent(ctx context.Context, studentID, parentID int64) (bool, error)
	AttendanceBelongsToStudent(ctx context.Context, attendanceID, studentID int64) (bool, error)
	AttendanceInTeacherClass(ctx context.Context, attendanceID, teacherID int64) (bool, error)
	GradeBelongsToStudent(ctx context.Context, gradeID, studentID int64) (bool, error)
	GradeInTeacherExam(ctx context.Context, gradeID, teacherID int64) (bool, error)
	ClassOwnedByTeacher(ctx context.Context, classID, teacherID int64) (bool, error)
	StudentInClass(ctx context.Context, studentID, classID int64) (bool, error)
	ParentHasChildInClass(ctx context.Context, parentID, classID int64) (bool, error)
}

// AuthorizationService decides per request whether the caller may access a
// named resource. Every predicate denies unless a permit branch matches:
// lookups that find nothing deny, and a caller missing the profile id its
// role needs is denied, never an error. ADMIN permits everywhere.
type AuthorizationService struct {
	store PolicyStore
}

// NewAuthorizationService creates a new authorization service
func NewAuthorizationService(store PolicyStore) *AuthorizationService {
	return &AuthorizationService{
		store: store,
	}
}

// Authorize permits iff the caller's role is among roles
func (s *AuthorizationService) Authorize(caller models.Caller, roles ...models.Role) error {
	if caller.HasRole(roles...) {
		return nil
	}
	return apperrors.NewForbiddenError("Insufficient role")
}

// CheckOwnership permits iff the caller owns the resource instance.
// Unknown resource types are a validation error, not a denial.
func (s *AuthorizationService) CheckOwnership(ctx context.Context, caller models.Caller, resourceType string, resourceID int64) error {
	if caller.Role == models.RoleAdmin {
		return nil
	}

	switch resourceType {
	case ResourceStudent:
		return s.checkStudentOwnership(ctx, caller, resourceID)
	case ResourceParent:
		if parentID, ok := caller.ParentProfileID(); ok && parentID == resourceID {
			return nil
		}
		return apperrors.ErrPermissionDenied
	case ResourceTeacher:
		if teacherID, ok := caller.TeacherProfileID(); ok && teacherID == resourceID {
			return nil
		}
		return apperrors.ErrPermissionDenied
	case ResourceAttendance:
		return s.checkRecordOwnership(ctx, caller, resourceID,
			s.store.AttendanceBelongsToStudent, s.store.AttendanceInTeacherClass)
	case ResourceGrade:
		return s.checkRecordOwnership(ctx, caller, resourceID,
			s.store.GradeBelongsToStudent, s.store.GradeInTeacherExam)
	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("Invalid resource type: %s", resourceType))
	}
}

func (s *AuthorizationService) checkStudentOwnership(ctx context.Context, caller models.Caller, studentID int64) error {
	switch caller.Role {
	case models.RoleStudent:
		if id, ok := caller.StudentProfileID(); ok && id == studentID {
			return nil
		}
	case models.RoleParent:
		parentID, ok := caller.ParentProfileID()
		if !ok {
			return apperrors.ErrPermissionDenied
		}
		linked, err := s.store.StudentHasParent(ctx, studentID, parentID)
		if err != nil {
			return err
		}
		if linked {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}

type recordProbe func(ctx context.Context, recordID, profileID int64) (bool, error)

// checkRecordOwnership covers attendance and grade records, which share the
// same shape: students own their rows, teachers own rows reached through
// what they teach.
func (s *AuthorizationService) checkRecordOwnership(ctx context.Context, caller models.Caller, recordID int64, byStudent, byTeacher recordProbe) error {
	switch caller.Role {
	case models.RoleStudent:
		studentID, ok := caller.StudentProfileID()
		if !ok {
			return apperrors.ErrPermissionDenied
		}
		owned, err := byStudent(ctx, recordID, studentID)
		if err != nil {
			return err
		}
		if owned {
			return nil
		}
	case models.RoleTeacher:
		teacherID, ok := caller.TeacherProfileID()
		if !ok {
			return apperrors.ErrPermissionDenied
		}
		owned, err := byTeacher(ctx, recordID, teacherID)
		if err != nil {
			return err
		}
		if owned {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}

// CheckClassOwnership permits ADMIN unconditionally and TEACHER iff the
// class is theirs; every other role denies.
func (s *AuthorizationService) CheckClassOwnership(ctx context.Context, caller models.Caller, classID int64) error {
	switch caller.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleTeacher:
		teacherID, ok := caller.TeacherProfileID()
		if !ok {
			return apperrors.ErrPermissionDenied
		}
		owned, err := s.store.ClassOwnedByTeacher(ctx, classID, teacherID)
		if err != nil {
			return err
		}
		if owned {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}

// CheckClassMembership permits ADMIN and TEACHER unconditionally, STUDENT
// iff enrolled in the class, PARENT iff any child is.
func (s *AuthorizationService) CheckClassMembership(ctx context.Context, caller models.Caller, classID int64) error {
	switch caller.Role {
	case models.RoleAdmin, models.RoleTeacher:
		return nil
	case models.RoleStudent:
		studentID, ok := caller.StudentProfileID()
		if !ok {
			return apperrors.ErrPermissionDenied
		}
		// The caller snapshot already carries the student's class id; a
		// match permits without a store probe.
		if caller.StudentClassID != nil && *caller.StudentClassID == classID {
			return nil
		}
		member, err := s.store.StudentInClass(ctx, studentID, classID)
		if err != nil {
			return err
		}
		if member {
			return nil
		}
	case models.RoleParent:
		parentID, ok := caller.ParentProfileID()
		if !ok {
			return apperrors.ErrPermissionDenied
		}
		member, err := s.store.ParentHasChildInClass(ctx, parentID, classID)
		if err != nil {
			return err
		}
		if member {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}
