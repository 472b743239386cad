package models

import "time"

// Notification types emitted by the application.
const (
	NotificationGeneral        = "GENERAL"
	NotificationEnrollment     = "ENROLLMENT"
	NotificationClassAssigned  = "CLASS_ASSIGNED"
	NotificationParentAssigned = "PARENT_ASSIGNED"
)

// Notification defines a notification based on the 'notifications' table
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Message   string    `json:"message" db:"message"`
	Type      string    `json:"type" db:"type"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
