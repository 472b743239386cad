package dto

import (
	"github.com/okandemir/schoolhub/internal/app/models"
	"github.com/okandemir/schoolhub/internal/pkg/helpers"
	"github.com/okandemir/schoolhub/internal/pkg/stats"
)

// MarkAttendanceRequest is the payload of POST /attendance.
type MarkAttendanceRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	ClassID   int64  `json:"classId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
}

// UpdateAttendanceRequest is the payload of PUT /attendance/:id.
type UpdateAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
}

// AttendanceListResponse is the paginated list of GET /attendance.
type AttendanceListResponse struct {
	Attendance []models.Attendance `json:"attendance"`
	Pagination helpers.Pagination  `json:"pagination"`
}

// StudentAttendanceResponse is the payload of GET /attendance/student/:studentId.
type StudentAttendanceResponse struct {
	Attendance []models.Attendance     `json:"attendance"`
	Summary    stats.AttendanceSummary `json:"summary"`
}

// ClassAttendanceResponse is the payload of GET /attendance/class/:classId.
type ClassAttendanceResponse struct {
	Attendance []models.Attendance `json:"attendance"`
}

// AttendanceResponse wraps a single attendance record.
type AttendanceResponse struct {
	Message    string            `json:"message,omitempty"`
	Attendance models.Attendance `json:"attendance"`
}
