package dto

import "github.com/okandemir/schoolhub/internal/app/models"

// CreateEnrollmentRequest is the payload of POST /enrollments.
type CreateEnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	ClassID   int64 `json:"classId" binding:"required"`
}

// AssignStudentRequest is the payload of POST /enrollments/assign: admins
// assign a student to a class by the student's email address.
type AssignStudentRequest struct {
	StudentEmail string `json:"studentEmail" binding:"required,email"`
	ClassID      int64  `json:"classId" binding:"required"`
}

// EnrollmentListResponse is the payload of GET /enrollments.
type EnrollmentListResponse struct {
	Enrollments []models.Enrollment `json:"enrollments"`
}

// EnrollmentResponse wraps a single enrollment.
type EnrollmentResponse struct {
	Message    string            `json:"message,omitempty"`
	Enrollment models.Enrollment `json:"enrollment"`
}

// NotificationListResponse is the payload of GET /notifications.
type NotificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unreadCount"`
}
