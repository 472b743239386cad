package dto

import (
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/helpers"
	"github.com/okandemir/schoolhub/internal/pkg/stats"
)

// CreateGradeRequest is the payload of POST /grades.
type CreateGradeRequest struct {
	ExamID    int64 `json:"examId" binding:"required"`
	StudentID int64 `json:"studentId" binding:"required"`
	SubjectID int64 `json:"subjectId" binding:"required"`
	Marks     *int  `json:"marks" binding:"required,min=0"`
}

// UpdateGradeRequest is the payload of PUT /grades/:id.
type UpdateGradeRequest struct {
	Marks *int `json:"marks" binding:"required,min=0"`
}

// GradeListResponse is the paginated list of GET /grades.
type GradeListResponse struct {
	Grades     []models.Grade     `json:"grades"`
	Pagination helpers.Pagination `json:"pagination"`
}

// StudentGradesResponse is the payload of GET /grades/student/:studentId.
// Average is the 2dp-rounded mean over the listed grades.
type StudentGradesResponse struct {
	Grades  []models.Grade `json:"grades"`
	Average float64        `json:"average"`
	Total   int            `json:"total"`
}

// ExamGradesResponse is the payload of GET /grades/exam/:examId.
type ExamGradesResponse struct {
	Grades     []models.Grade       `json:"grades"`
	Statistics stats.ExamStatistics `json:"statistics"`
}

// GradeResponse wraps a single grade.
type GradeResponse struct {
	Message string       `json:"message,omitempty"`
	Grade   models.Grade `json:"grade"`
}
