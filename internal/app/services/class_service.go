package services

import (
	"context"
	"fmt"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

// ClassService handles class listing and detail reads
type ClassService struct {
	classRepo   *repositories.ClassRepository
	studentRepo *repositories.StudentRepository
}

// NewClassService creates a new class service instance
func NewClassService(classRepo *repositories.ClassRepository, studentRepo *repositories.StudentRepository) *ClassService {
	return &ClassService{
		classRepo:   classRepo,
		studentRepo: studentRepo,
	}
}

// List retrieves every class with teacher and student count
func (s *ClassService) List(ctx context.Context) ([]models.Class, error) {
	classes, err := s.classRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing classes: %w", err)
	}
	return orEmpty(classes), nil
}

// Get retrieves a class with its students and subjects
func (s *ClassService) Get(ctx context.Context, id int64) (*models.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	students, err := s.studentRepo.GetByClassID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class students: %w", err)
	}
	subjects, err := s.classRepo.GetSubjectsByClassID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class subjects: %w", err)
	}

	class.Students = orEmpty(students)
	class.Subjects = orEmpty(subjects)
	count := int64(len(students))
	class.StudentCount = &count

	return class, nil
}

// GetStudents retrieves the students of a class
func (s *ClassService) GetStudents(ctx context.Context, classID int64) ([]models.Student, error) {
	exists, err := s.classRepo.Exists(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error checking class: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	students, err := s.studentRepo.GetByClassID(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class students: %w", err)
	}
	return orEmpty(students), nil
}
