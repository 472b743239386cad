package services

import (
	"context"
	"fmt"
	"time"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
	"github.com/okandemir/schoolhub/internal/pkg/dberrors"
	"github.com/okandemir/schoolhub/internal/pkg/helpers"
	"github.com/okandemir/schoolhub/internal/pkg/stats"
)

const attendanceDateLayout = "2006-01-02"

// AttendanceStore is the persistence surface of the attendance service.
// *repositories.AttendanceRepository implements it.
type AttendanceStore interface {
	List(ctx context.Context, filter repositories.AttendanceFilter, offset, limit int) ([]models.Attendance, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Attendance, error)
	GetByStudentID(ctx context.Context, studentID int64, from, to *time.Time) ([]models.Attendance, error)
	GetByClassID(ctx context.Context, classID int64, date *time.Time) ([]models.Attendance, error)
	ExistsForStudentOnDate(ctx context.Context, studentID int64, date time.Time) (bool, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus) error
}

// ClassStore answers class existence checks for class-scoped reads.
type ClassStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// AttendanceService handles attendance listing, marking and updates
type AttendanceService struct {
	attendanceRepo AttendanceStore
	classRepo      ClassStore
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(attendanceRepo AttendanceStore, classRepo ClassStore) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		classRepo:      classRepo,
	}
}

// List retrieves attendance records newest first with pagination
func (s *AttendanceService) List(ctx context.Context, filter repositories.AttendanceFilter, page, limit int) (*dto.AttendanceListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, limit)

	records, total, err := s.attendanceRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}

	return &dto.AttendanceListResponse{
		Attendance: orEmpty(records),
		Pagination: helpers.NewPagination(total, page, limit),
	}, nil
}

// GetByID retrieves a single attendance record
func (s *AttendanceService) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	return s.attendanceRepo.GetByID(ctx, id)
}

// GetStudentAttendance retrieves a student's records, optionally bounded to
// a date range, together with their status summary.
func (s *AttendanceService) GetStudentAttendance(ctx context.Context, studentID int64, from, to *time.Time) (*dto.StudentAttendanceResponse, error) {
	records, err := s.attendanceRepo.GetByStudentID(ctx, studentID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student attendance: %w", err)
	}

	statuses := make([]string, len(records))
	for i, record := range records {
		statuses[i] = string(record.Status)
	}

	return &dto.StudentAttendanceResponse{
		Attendance: orEmpty(records),
		Summary:    stats.SummarizeAttendance(statuses),
	}, nil
}

// GetClassAttendance retrieves a class's records, optionally for one day
func (s *AttendanceService) GetClassAttendance(ctx context.Context, classID int64, date *time.Time) (*dto.ClassAttendanceResponse, error) {
	exists, err := s.classRepo.Exists(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("error checking class: %w", err)
	}
	if !exists {
		return nil, apperrors.ErrClassNotFound
	}

	records, err := s.attendanceRepo.GetByClassID(ctx, classID, date)
	if err != nil {
		return nil, fmt.Errorf("error retrieving class attendance: %w", err)
	}

	return &dto.ClassAttendanceResponse{Attendance: orEmpty(records)}, nil
}

// Mark records a student's attendance for a day. A second record for the
// same (student, date) is a conflict.
func (s *AttendanceService) Mark(ctx context.Context, req dto.MarkAttendanceRequest) (*models.Attendance, error) {
	date, err := time.Parse(attendanceDateLayout, req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date format, expected YYYY-MM-DD")
	}

	exists, err := s.attendanceRepo.ExistsForStudentOnDate(ctx, req.StudentID, date)
	if err != nil {
		return nil, fmt.Errorf("error checking attendance: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAttendanceExists
	}

	attendance := &models.Attendance{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Date:      date,
		Status:    models.AttendanceStatus(req.Status),
	}
	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAttendanceExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrInvalidReference
		}
		return nil, fmt.Errorf("error creating attendance: %w", err)
	}

	return attendance, nil
}

// UpdateStatus changes the status of an existing record
func (s *AttendanceService) UpdateStatus(ctx context.Context, id int64, status models.AttendanceStatus) (*models.Attendance, error) {
	if !status.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid attendance status")
	}

	if err := s.attendanceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return s.attendanceRepo.GetByID(ctx, id)
}
