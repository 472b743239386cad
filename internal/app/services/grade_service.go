package services

import (
	"context"
	"fmt"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/dberrors"
	"github.com/okandemir/schoolhub/internal/pkg/helpers"
	"github.com/okandemir/schoolhub/internal/pkg/stats"
)

// GradeStore is the persistence surface of the grade service.
// *repositories.GradeRepository implements it.
type GradeStore interface {
	List(ctx context.Context, filter repositories.GradeFilter, offset, limit int) ([]models.Grade, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]models.Grade, error)
	GetByExamID(ctx context.Context, examID int64) ([]models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	UpdateMarks(ctx context.Context, id int64, marks int) error
	Delete(ctx context.Context, id int64) error
}

// ExamStore answers exam existence checks.
type ExamStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// GradeService handles grade listing, creation and derivation of grade
// statistics
type GradeService struct {
	gradeRepo GradeStore
	examRepo  ExamStore
}

// NewGradeService creates a new grade service instance
func NewGradeService(gradeRepo GradeStore, examRepo ExamStore) *GradeService {
	return &GradeService{
		gradeRepo: gradeRepo,
		examRepo:  examRepo,
	}
}

// List retrieves grades by exam date descending with pagination
func (s *GradeService) List(ctx context.Context, filter repositories.GradeFilter, page, limit int) (*dto.GradeListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	grades, total, err := s.gradeRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}

	return &dto.GradeListResponse{
		Grades:     orEmpty(grades),
		Pagination: helpers.NewPagination(total, page, limit),
	}, nil
}

// GetByID retrieves a single grade
func (s *GradeService) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	return s.gradeRepo.GetByID(ctx, id)
}

// GetStudentGrades retrieves a student's grades with their rounded average
func (s *GradeService) GetStudentGrades(ctx context.Context, studentID int64) (*dto.StudentGradesResponse, error) {
	grades, err := s.gradeRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student grades: %w", err)
	}

	marks := make([]int, len(grades))
	for i, grade := range grades {
		marks[i] = grade.Marks
	}

	return &dto.StudentGradesResponse{
		Grades:  orEmpty(grades),
		Average: stats.GradeAverage(marks),
		Total:   len(grades),
	}, nil
}

// GetExamGrades retrieves an exam's grades with their statistics
func (s *GradeService) GetExamGrades(ctx context.Context, examID int64) (*dto.ExamGradesResponse, error) {
	exists, err := s.examRepo.Exists(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error checking exam: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrExamNotFound
	}

	grades, err := s.gradeRepo.GetByExamID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving exam grades: %w", err)
	}

	marks := make([]int, len(grades))
	for i, grade := range grades {
		marks[i] = grade.Marks
	}

	return &dto.ExamGradesResponse{
		Grades:     orEmpty(grades),
		Statistics: stats.ComputeExamStatistics(marks),
	}, nil
}

// Create records a grade. A second grade for the same (exam, student,
// subject) is a conflict; unknown references are a validation error.
func (s *GradeService) Create(ctx context.Context, req dto.CreateGradeRequest) (*models.Grade, error) {
	grade := &models.Grade{
		ExamID:    req.ExamID,
		StudentID: req.StudentID,
		SubjectID: req.SubjectID,
		Marks:     *req.Marks,
	}
	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrGradeExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrInvalidReference
		}
		return nil, fmt.Errorf("error creating grade: %w", err)
	}

	return s.gradeRepo.GetByID(ctx, grade.ID)
}

// UpdateMarks changes the marks of an existing grade
func (s *GradeService) UpdateMarks(ctx context.Context, id int64, marks int) (*models.Grade, error) {
	if err := s.gradeRepo.UpdateMarks(ctx, id, marks); err != nil {
		return nil, err
	}

	return s.gradeRepo.GetByID(ctx, id)
}

// Delete removes a grade
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	return s.gradeRepo.Delete(ctx, id)
}
