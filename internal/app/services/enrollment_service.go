package services

import (
	"context"
	"fmt"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/dberrors"
)

// EnrollmentService handles class enrollment. Creating an enrollment also
// points the student profile at the class; the repository runs both writes
// in one transaction. Afterwards the student, the linked parent and every
// admin are notified; notification failures never fail the request.
type EnrollmentService struct {
	enrollmentRepo *repositories.EnrollmentRepository
	studentRepo    *repositories.StudentRepository
	classRepo      *repositories.ClassRepository
	notifications  *NotificationService
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo *repositories.EnrollmentRepository,
	studentRepo *repositories.StudentRepository,
	classRepo *repositories.ClassRepository,
	notifications *NotificationService,
) *EnrollmentService {
	return &EnrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		classRepo:      classRepo,
		notifications:  notifications,
	}
}

// List retrieves enrollments newest first
func (s *EnrollmentService) List(ctx context.Context, filter repositories.EnrollmentFilter) ([]models.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	return orEmpty(enrollments), nil
}

// Create enrolls a student in a class
func (s *EnrollmentService) Create(ctx context.Context, studentID, classID int64) (*models.Enrollment, error) {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID: studentID,
		ClassID:   classID,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrInvalidReference
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	s.notifyEnrollment(ctx, studentID, class)

	return s.enrollmentRepo.GetByID(ctx, enrollment.ID)
}

// AssignByEmail enrolls the student whose account uses the given email
func (s *EnrollmentService) AssignByEmail(ctx context.Context, studentEmail string, classID int64) (*models.Enrollment, error) {
	student, err := s.studentRepo.GetByUserEmail(ctx, studentEmail)
	if err != nil {
		return nil, err
	}

	return s.Create(ctx, student.ID, classID)
}

// Delete removes an enrollment and detaches the student from the class
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	return s.enrollmentRepo.Delete(ctx, id)
}

func (s *EnrollmentService) notifyEnrollment(ctx context.Context, studentID int64, class *models.Class) {
	title := "Class enrollment"
	message := fmt.Sprintf("Enrolled in class %s (%s)", class.Name, class.Level)

	if userID, err := s.studentRepo.GetUserID(ctx, studentID); err == nil {
		s.notifications.Notify(ctx, userID, title, message, models.NotificationEnrollment)
	}

	// students without a linked parent simply skip the parent notification
	if parentUserID, err := s.studentRepo.GetParentUserID(ctx, studentID); err == nil {
		s.notifications.Notify(ctx, parentUserID, title,
			fmt.Sprintf("Your child was enrolled in class %s (%s)", class.Name, class.Level),
			models.NotificationEnrollment)
	}

	s.notifications.NotifyAdmins(ctx, title,
		fmt.Sprintf("A student was enrolled in class %s", class.Name),
		models.NotificationEnrollment)
}
