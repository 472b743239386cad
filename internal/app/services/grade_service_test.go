package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/app/models/dto"
	"github.com/okandemir/schoolhub/internal/app/repositories"
	"github.com/okandemir/schoolhub/internal/pkg/apperrors"
)

type fakeGradeStore struct {
	grades    []models.Grade
	createErr error
	created   *models.Grade
}

func (f *fakeGradeStore) List(_ context.Context, _ repositories.GradeFilter, _, _ int) ([]models.Grade, int64, error) {
	return f.grades, int64(len(f.grades)), nil
}
func (f *fakeGradeStore) GetByID(_ context.Context, id int64) (*models.Grade, error) {
	for i := range f.grades {
		if f.grades[i].ID == id {
			return &f.grades[i], nil
		}
	}
	if f.created != nil && f.created.ID == id {
		return f.created, nil
	}
	return nil, apperrors.ErrGradeNotFound
}
func (f *fakeGradeStore) GetByStudentID(_ context.Context, _ int64) ([]models.Grade, error) {
	return f.grades, nil
}
func (f *fakeGradeStore) GetByExamID(_ context.Context, _ int64) ([]models.Grade, error) {
	return f.grades, nil
}
func (f *fakeGradeStore) Create(_ context.Context, grade *models.Grade) error {
	if f.createErr != nil {
		return f.createErr
	}
	grade.ID = 1
	f.created = grade
	return nil
}
func (f *fakeGradeStore) UpdateMarks(_ context.Context, id int64, marks int) error {
	for i := range f.grades {
		if f.grades[i].ID == id {
			f.grades[i].Marks = marks
			return nil
		}
	}
	return apperrors.ErrGradeNotFound
}
func (f *fakeGradeStore) Delete(_ context.Context, id int64) error {
	for _, g := range f.grades {
		if g.ID == id {
			return nil
		}
	}
	return apperrors.ErrGradeNotFound
}

type fakeExamStore struct {
	exams map[int64]bool
}

func (f *fakeExamStore) Exists(_ context.Context, id int64) (bool, error) {
	return f.exams[id], nil
}

func TestGetStudentGradesAverage(t *testing.T) {
	store := &fakeGradeStore{
		grades: []models.Grade{
			{ID: 1, Marks: 70},
			{ID: 2, Marks: 85},
			{ID: 3, Marks: 90},
		},
	}
	svc := NewGradeService(store, &fakeExamStore{})

	resp, err := svc.GetStudentGrades(context.Background(), 10)
	require.NoError(t, err)

	// mean 81.666... rounds to 2 decimal places here
	assert.Equal(t, 81.67, resp.Average)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Grades, 3)
}

func TestGetStudentGradesEmpty(t *testing.T) {
	svc := NewGradeService(&fakeGradeStore{}, &fakeExamStore{})

	resp, err := svc.GetStudentGrades(context.Background(), 10)
	require.NoError(t, err)

	assert.Zero(t, resp.Average)
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Grades)
}

func TestGetExamGradesStatistics(t *testing.T) {
	store := &fakeGradeStore{
		grades: []models.Grade{
			{ID: 1, Marks: 70},
			{ID: 2, Marks: 85},
			{ID: 3, Marks: 90},
		},
	}
	svc := NewGradeService(store, &fakeExamStore{exams: map[int64]bool{5: true}})

	resp, err := svc.GetExamGrades(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Statistics.TotalStudents)
	// this average stays unrounded, unlike the per-student one
	assert.InDelta(t, 81.666666, resp.Statistics.Average, 0.0001)
	assert.Equal(t, 90, resp.Statistics.Highest)
	assert.Equal(t, 70, resp.Statistics.Lowest)
}

func TestGetExamGradesUnknownExam(t *testing.T) {
	svc := NewGradeService(&fakeGradeStore{}, &fakeExamStore{exams: map[int64]bool{}})

	_, err := svc.GetExamGrades(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)
}

func TestGetExamGradesZeroGrades(t *testing.T) {
	svc := NewGradeService(&fakeGradeStore{}, &fakeExamStore{exams: map[int64]bool{5: true}})

	resp, err := svc.GetExamGrades(context.Background(), 5)
	require.NoError(t, err)

	assert.Zero(t, resp.Statistics.TotalStudents)
	assert.Zero(t, resp.Statistics.Average)
	assert.Zero(t, resp.Statistics.Highest)
	assert.Zero(t, resp.Statistics.Lowest)
}

func marksPtr(v int) *int { return &v }

func TestCreateGradeConstraintMapping(t *testing.T) {
	tests := []struct {
		name    string
		pgCode  string
		wantErr error
	}{
		{"duplicate natural key", "23505", apperrors.ErrGradeExists},
		{"unknown reference", "23503", apperrors.ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeGradeStore{createErr: &pgconn.PgError{Code: tt.pgCode}}
			svc := NewGradeService(store, &fakeExamStore{})

			_, err := svc.Create(context.Background(), dto.CreateGradeRequest{
				ExamID: 5, StudentID: 10, SubjectID: 2, Marks: marksPtr(88),
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateGrade(t *testing.T) {
	store := &fakeGradeStore{}
	svc := NewGradeService(store, &fakeExamStore{})

	grade, err := svc.Create(context.Background(), dto.CreateGradeRequest{
		ExamID: 5, StudentID: 10, SubjectID: 2, Marks: marksPtr(88),
	})
	require.NoError(t, err)
	assert.Equal(t, 88, grade.Marks)
}
