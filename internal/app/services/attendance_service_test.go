package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

type fakeAttendanceStore struct {
	records   []models.Attendance
	total     int64
	hasRecord bool
	createErr error
	created   *models.Attendance
}

func (f *fakeAttendanceStore) List(_ context.Context, _ repositories.AttendanceFilter, _, _ int) ([]models.Attendance, int64, error) {
	return f.records, f.total, nil
}
func (f *fakeAttendanceStore) GetByID(_ context.Context, id int64) (*models.Attendance, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	if f.created != nil {
		return f.created, nil
	}
	return nil, apperrors.ErrAttendanceNotFound
}
func (f *fakeAttendanceStore) GetByStudentID(_ context.Context, _ int64, _, _ *time.Time) ([]models.Attendance, error) {
	return f.records, nil
}
func (f *fakeAttendanceStore) GetByClassID(_ context.Context, _ int64, _ *time.Time) ([]models.Attendance, error) {
	return f.records, nil
}
func (f *fakeAttendanceStore) ExistsForStudentOnDate(_ context.Context, _ int64, _ time.Time) (bool, error) {
	return f.hasRecord, nil
}
func (f *fakeAttendanceStore) Create(_ context.Context, attendance *models.Attendance) error {
	if f.createErr != nil {
		return f.createErr
	}
	attendance.ID = 1
	f.created = attendance
	return nil
}
func (f *fakeAttendanceStore) UpdateStatus(_ context.Context, id int64, status models.AttendanceStatus) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Status = status
			return nil
		}
	}
	return apperrors.ErrAttendanceNotFound
}

type fakeClassStore struct {
	classes map[int64]bool
}

func (f *fakeClassStore) Exists(_ context.Context, id int64) (bool, error) {
	return f.classes[id], nil
}

func TestGetStudentAttendanceSummary(t *testing.T) {
	store := &fakeAttendanceStore{
		records: []models.Attendance{
			{ID: 1, Status: models.AttendancePresent},
			{ID: 2, Status: models.AttendancePresent},
			{ID: 3, Status: models.AttendanceAbsent},
			{ID: 4, Status: models.AttendanceLate},
		},
	}
	svc := NewAttendanceService(store, &fakeClassStore{})

	resp, err := svc.GetStudentAttendance(context.Background(), 10, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Summary.Present)
	assert.Equal(t, 1, resp.Summary.Absent)
	assert.Equal(t, 1, resp.Summary.Late)
	assert.Equal(t, 0, resp.Summary.Excused)
	assert.Equal(t, 4, resp.Summary.Total)
	assert.Equal(t, 50, resp.Summary.Percentage())
	assert.Len(t, resp.Attendance, 4)
}

func TestGetStudentAttendanceEmpty(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeClassStore{})

	resp, err := svc.GetStudentAttendance(context.Background(), 10, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Summary.Total)
	assert.Equal(t, 0, resp.Summary.Percentage())
	assert.NotNil(t, resp.Attendance)
	assert.Empty(t, resp.Attendance)
}

func TestGetClassAttendanceUnknownClass(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeClassStore{classes: map[int64]bool{}})

	_, err := svc.GetClassAttendance(context.Background(), 7, nil)
	assert.ErrorIs(t, err, apperrors.ErrClassNotFound)
}

func TestMarkAttendance(t *testing.T) {
	store := &fakeAttendanceStore{}
	svc := NewAttendanceService(store, &fakeClassStore{})

	attendance, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
		StudentID: 10,
		ClassID:   7,
		Date:      "2026-03-02",
		Status:    "PRESENT",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, attendance.Status)
	assert.Equal(t, 2026, attendance.Date.Year())
}

func TestMarkAttendanceDuplicateDay(t *testing.T) {
	store := &fakeAttendanceStore{hasRecord: true}
	svc := NewAttendanceService(store, &fakeClassStore{})

	_, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
		StudentID: 10, ClassID: 7, Date: "2026-03-02", Status: "PRESENT",
	})
	assert.ErrorIs(t, err, apperrors.ErrAttendanceExists)
}

func TestMarkAttendanceConstraintMapping(t *testing.T) {
	tests := []struct {
		name    string
		pgCode  string
		wantErr error
	}{
		{"unique violation", "23505", apperrors.ErrAttendanceExists},
		{"fk violation", "23503", apperrors.ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeAttendanceStore{createErr: &pgconn.PgError{Code: tt.pgCode}}
			svc := NewAttendanceService(store, &fakeClassStore{})

			_, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
				StudentID: 10, ClassID: 7, Date: "2026-03-02", Status: "ABSENT",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMarkAttendanceBadDate(t *testing.T) {
	svc := NewAttendanceService(&fakeAttendanceStore{}, &fakeClassStore{})

	_, err := svc.Mark(context.Background(), dto.MarkAttendanceRequest{
		StudentID: 10, ClassID: 7, Date: "02/03/2026", Status: "PRESENT",
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateAttendanceStatus(t *testing.T) {
	store := &fakeAttendanceStore{
		records: []models.Attendance{{ID: 1, Status: models.AttendanceAbsent}},
	}
	svc := NewAttendanceService(store, &fakeClassStore{})

	updated, err := svc.UpdateStatus(context.Background(), 1, models.AttendanceExcused)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceExcused, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), 99, models.AttendanceLate)
	assert.ErrorIs(t, err, apperrors.ErrAttendanceNotFound)
}
